package engine_test

import (
	"testing"

	"github.com/plus3/warpcore/engine"
	"github.com/stretchr/testify/assert"
)

func drainKeys(bus *engine.Bus) []string {
	var keys []string
	bus.Drain(func(in engine.Intent) {
		keys = append(keys, in.(engine.InsertData).Key)
	})
	return keys
}

func TestBusDrainsInOrder(t *testing.T) {
	bus := engine.NewBus(4)

	for _, k := range []string{"a", "b", "c"} {
		if err := bus.Send(engine.InsertData{Key: k}); err != nil {
			t.Fatalf("send %s: %v", k, err)
		}
	}

	assert.Equal(t, 3, bus.Len())
	assert.Equal(t, []string{"a", "b", "c"}, drainKeys(bus))
	assert.Equal(t, 0, bus.Len())
}

func TestBusOverflowParksForOneDrain(t *testing.T) {
	bus := engine.NewBus(2)

	for _, k := range []string{"a", "b", "c", "d"} {
		assert.NoError(t, bus.Send(engine.InsertData{Key: k}))
	}
	assert.Equal(t, 2, bus.Len())
	assert.Equal(t, 2, bus.Parked())

	assert.Equal(t, []string{"a", "b"}, drainKeys(bus))
	assert.Equal(t, 0, bus.Parked(), "parked intents move into the ring after a drain")

	// New sends queue behind the promoted ones.
	assert.NoError(t, bus.Send(engine.InsertData{Key: "e"}))
	assert.Equal(t, 1, bus.Parked())

	assert.Equal(t, []string{"c", "d"}, drainKeys(bus))
	assert.Equal(t, []string{"e"}, drainKeys(bus))
}

func TestBusSendsDuringDrainWait(t *testing.T) {
	bus := engine.NewBus(4)
	assert.NoError(t, bus.Send(engine.InsertData{Key: "first"}))

	var seen []string
	n := bus.Drain(func(in engine.Intent) {
		seen = append(seen, in.(engine.InsertData).Key)
		assert.NoError(t, bus.Send(engine.InsertData{Key: "second"}))
	})

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"first"}, seen)
	assert.Equal(t, []string{"second"}, drainKeys(bus))
}

func TestBusWrapsAround(t *testing.T) {
	bus := engine.NewBus(3)

	for round := 0; round < 5; round++ {
		assert.NoError(t, bus.Send(engine.InsertData{Key: "x"}))
		assert.NoError(t, bus.Send(engine.InsertData{Key: "y"}))
		assert.Equal(t, []string{"x", "y"}, drainKeys(bus))
	}
}

func TestBusClosed(t *testing.T) {
	bus := engine.NewBus(1)
	bus.Close()

	err := bus.Send(engine.RemoveData{Key: "a"})
	assert.ErrorIs(t, err, engine.ErrChannelClosed)
	assert.True(t, bus.Closed())
	assert.Equal(t, 0, bus.Len())
}
