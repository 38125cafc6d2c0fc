// Package input tracks held keys and turns them into level and edge queries.
//
// The platform layer feeds Press and Release as window events arrive.
// Behaviors ask IsKeyDown for the level and IsKeyPressed for the edge: the
// edge query reports true once per held interval and latches the key until it
// observes the key released.
package input

import "github.com/kamstrup/intmap"

// Tracker holds the input state for one engine.
type Tracker struct {
	held  *intmap.Map[Key, struct{}]
	locks *intmap.Map[Key, struct{}]
	mouse Mouse
}

func NewTracker() *Tracker {
	return &Tracker{
		held:  intmap.New[Key, struct{}](32),
		locks: intmap.New[Key, struct{}](32),
	}
}

// Press records k as held.
func (t *Tracker) Press(k Key) {
	t.held.Put(k, struct{}{})
}

// Release records k as released. The edge lock is left for IsKeyPressed to
// clear.
func (t *Tracker) Release(k Key) {
	t.held.Del(k)
}

// IsKeyDown reports whether k is currently held.
func (t *Tracker) IsKeyDown(k Key) bool {
	_, ok := t.held.Get(k)
	return ok
}

// IsKeyPressed reports true on the first query of a held interval and false
// for every later query until the key is seen released.
func (t *Tracker) IsKeyPressed(k Key) bool {
	_, locked := t.locks.Get(k)

	if !t.IsKeyDown(k) {
		if locked {
			t.locks.Del(k)
		}
		return false
	}

	if locked {
		return false
	}

	t.locks.Put(k, struct{}{})
	return true
}

// HeldCount returns the number of keys currently held.
func (t *Tracker) HeldCount() int {
	return t.held.Len()
}

// SetMousePosition records the pointer position in screen units.
func (t *Tracker) SetMousePosition(x, y float32) {
	t.mouse.X = x
	t.mouse.Y = y
}

// PressMouse records b as held and flags the press for this frame.
func (t *Tracker) PressMouse(b MouseButton) {
	if b < 0 || b >= mouseButtonCount {
		return
	}
	if !t.mouse.Held[b] {
		t.mouse.JustPressed[b] = true
	}
	t.mouse.Held[b] = true
}

func (t *Tracker) ReleaseMouse(b MouseButton) {
	if b < 0 || b >= mouseButtonCount {
		return
	}
	t.mouse.Held[b] = false
}

// Mouse returns the current pointer snapshot.
func (t *Tracker) Mouse() Mouse {
	return t.mouse
}

// EndFrame clears per-frame mouse edges.
func (t *Tracker) EndFrame() {
	t.mouse.JustPressed = [mouseButtonCount]bool{}
}
