package engine

import "github.com/plus3/warpcore/physics"

type lockKind uint8

const (
	lockContact lockKind = iota
	lockSensor
)

type lockKey struct {
	kind lockKind
	a, b physics.ColliderHandle
}

// collisionLocks latches collider pairs for the edge-triggered collision
// queries. Only those queries mutate it.
type collisionLocks struct {
	latched map[lockKey]struct{}
}

func newCollisionLocks() *collisionLocks {
	return &collisionLocks{latched: make(map[lockKey]struct{})}
}

// once reports (b, true) the first time it sees the pair active and latches
// it; the latch is released the first time it sees the pair inactive.
func (l *collisionLocks) once(kind lockKind, active bool, a, b physics.ColliderHandle) (physics.ColliderHandle, bool) {
	key := lockKey{kind: kind, a: a, b: b}
	_, latched := l.latched[key]

	if !active {
		if latched {
			delete(l.latched, key)
		}
		return 0, false
	}

	if latched {
		return 0, false
	}

	l.latched[key] = struct{}{}
	return b, true
}

func (l *collisionLocks) len() int {
	return len(l.latched)
}

func (l *collisionLocks) reset() {
	clear(l.latched)
}
