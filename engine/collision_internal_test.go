package engine

import (
	"testing"

	"github.com/plus3/warpcore/physics"
	"github.com/stretchr/testify/assert"
)

func TestCollisionOnceReportsOncePerOverlap(t *testing.T) {
	sequences := map[string][]bool{
		"single":      {false, true, true, true, false},
		"two touches": {true, true, false, false, true, false},
		"flicker":     {true, false, true, false, true},
		"never":       {false, false},
		"constant":    {true, true, true, true},
	}

	a := physics.ColliderHandle(11)
	b := physics.ColliderHandle(22)

	for name, seq := range sequences {
		t.Run(name, func(t *testing.T) {
			locks := newCollisionLocks()

			overlaps := 0
			prev := false
			reports := 0
			for _, active := range seq {
				if active && !prev {
					overlaps++
				}
				prev = active

				other, ok := locks.once(lockSensor, active, a, b)
				if ok {
					reports++
					assert.Equal(t, b, other)
				}
			}

			assert.Equal(t, overlaps, reports)
		})
	}
}

func TestCollisionLocksArePerPairAndKind(t *testing.T) {
	locks := newCollisionLocks()

	a := physics.ColliderHandle(1)
	b := physics.ColliderHandle(2)
	c := physics.ColliderHandle(3)

	_, ok := locks.once(lockContact, true, a, b)
	assert.True(t, ok)
	_, ok = locks.once(lockContact, true, a, c)
	assert.True(t, ok, "a second partner gets its own edge")
	_, ok = locks.once(lockSensor, true, a, b)
	assert.True(t, ok, "sensor and contact latches are separate")
	_, ok = locks.once(lockContact, true, a, b)
	assert.False(t, ok)

	assert.Equal(t, 3, locks.len())
	locks.reset()
	assert.Equal(t, 0, locks.len())
}
