package input_test

import (
	"testing"

	"github.com/plus3/warpcore/input"
	"github.com/stretchr/testify/assert"
)

func TestKeyPressedOncePerHeldInterval(t *testing.T) {
	// Each entry is the held state of the key during one tick.
	sequences := map[string][]bool{
		"single tap":        {true, false, false},
		"long hold":         {true, true, true, true, true, true},
		"two holds":         {true, true, false, true, true, false},
		"alternating":       {true, false, true, false, true, false},
		"starts released":   {false, false, true, true, false},
		"hold until end":    {false, true, true, true},
		"never pressed":     {false, false, false},
		"release then hold": {true, false, false, true, true, true, false},
	}

	for name, seq := range sequences {
		t.Run(name, func(t *testing.T) {
			tracker := input.NewTracker()

			intervals := 0
			prev := false
			for _, held := range seq {
				if held && !prev {
					intervals++
				}
				prev = held
			}

			edges := 0
			prev = false
			for tick, held := range seq {
				if held {
					tracker.Press(input.KeyW)
				} else {
					tracker.Release(input.KeyW)
				}

				assert.Equal(t, held, tracker.IsKeyDown(input.KeyW))

				pressed := tracker.IsKeyPressed(input.KeyW)
				if pressed {
					edges++
					assert.True(t, held && !prev, "edge reported mid-interval at tick %d", tick)
				}
				prev = held
			}

			assert.Equal(t, intervals, edges)
		})
	}
}

func TestKeyPressedIndependentKeys(t *testing.T) {
	tracker := input.NewTracker()

	tracker.Press(input.KeyW)
	tracker.Press(input.KeyS)

	assert.True(t, tracker.IsKeyPressed(input.KeyW))
	assert.True(t, tracker.IsKeyPressed(input.KeyS))
	assert.False(t, tracker.IsKeyPressed(input.KeyW))
	assert.Equal(t, 2, tracker.HeldCount())

	tracker.Release(input.KeyS)
	assert.True(t, tracker.IsKeyDown(input.KeyW))
	assert.False(t, tracker.IsKeyDown(input.KeyS))
}

func TestReleaseDoesNotClearLock(t *testing.T) {
	tracker := input.NewTracker()

	tracker.Press(input.KeySpace)
	assert.True(t, tracker.IsKeyPressed(input.KeySpace))

	// Released and pressed again without a query in between.
	tracker.Release(input.KeySpace)
	tracker.Press(input.KeySpace)
	assert.False(t, tracker.IsKeyPressed(input.KeySpace))

	tracker.Release(input.KeySpace)
	assert.False(t, tracker.IsKeyPressed(input.KeySpace))
	tracker.Press(input.KeySpace)
	assert.True(t, tracker.IsKeyPressed(input.KeySpace))
}

func TestMouseEdges(t *testing.T) {
	tracker := input.NewTracker()

	tracker.SetMousePosition(10, 20)
	tracker.PressMouse(input.MouseLeft)

	m := tracker.Mouse()
	assert.Equal(t, float32(10), m.X)
	assert.Equal(t, float32(20), m.Y)
	assert.True(t, m.Pressed(input.MouseLeft))
	assert.True(t, m.Held[input.MouseLeft])

	tracker.EndFrame()
	tracker.PressMouse(input.MouseLeft)
	assert.False(t, tracker.Mouse().Pressed(input.MouseLeft), "held button is not a new press")

	tracker.ReleaseMouse(input.MouseLeft)
	tracker.EndFrame()
	tracker.PressMouse(input.MouseLeft)
	assert.True(t, tracker.Mouse().Pressed(input.MouseLeft))
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want input.Key
	}{
		{"w", input.KeyW},
		{"W", input.KeyW},
		{"space", input.KeySpace},
		{"ArrowUp", input.KeyArrowUp},
		{"up", input.KeyArrowUp},
		{"7", input.Key7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := input.ParseKey(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}

	_, err := input.ParseKey("hyper")
	assert.Error(t, err)
}
