package physics

import "fmt"

// handle encodes the owning world tag (upper 16 bits), the slot generation
// (next 16 bits) and the slot index (lower 32 bits).
type handle uint64

func newHandle(tag uint16, generation uint16, index uint32) handle {
	return handle(uint64(tag)<<48 | uint64(generation)<<32 | uint64(index))
}

func (h handle) tag() uint16 {
	return uint16(h >> 48)
}

func (h handle) generation() uint16 {
	return uint16(h >> 32)
}

func (h handle) index() uint32 {
	return uint32(h & 0xFFFFFFFF)
}

// BodyHandle is an opaque reference to a rigid body owned by a World.
// The zero value refers to nothing.
type BodyHandle uint64

// IsValid reports whether the handle was ever issued. It does not check
// that the body is still alive; use World.Body for that.
func (h BodyHandle) IsValid() bool {
	return h != 0
}

func (h BodyHandle) String() string {
	if h == 0 {
		return "body(nil)"
	}
	raw := handle(h)
	return fmt.Sprintf("body(%d:%d@%d)", raw.index(), raw.generation(), raw.tag())
}

// ColliderHandle is an opaque reference to a collider owned by a World.
// The zero value refers to nothing.
type ColliderHandle uint64

// IsValid reports whether the handle was ever issued.
func (h ColliderHandle) IsValid() bool {
	return h != 0
}

func (h ColliderHandle) String() string {
	if h == 0 {
		return "collider(nil)"
	}
	raw := handle(h)
	return fmt.Sprintf("collider(%d:%d@%d)", raw.index(), raw.generation(), raw.tag())
}
