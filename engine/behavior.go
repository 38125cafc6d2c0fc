package engine

import "reflect"

// Behavior is attached to an entity and ticked once per frame.
//
// Clone returns an independent copy; a scene clones its behaviors every time
// it becomes active, so per-visit state lives in the clone. Stateless
// behaviors may return themselves.
type Behavior interface {
	OnTick(obj *EntityView, ctx *Context)
	Clone() Behavior
}

// Loader is implemented by behaviors that react to their scene becoming
// active.
type Loader interface {
	OnLoad(obj *EntityView, ctx *Context)
}

// Unloader is implemented by behaviors that react to their scene being
// replaced.
type Unloader interface {
	OnUnload(obj *EntityView, ctx *Context)
}

// ForeignEventHandler is implemented by behaviors that receive broadcast
// user events.
type ForeignEventHandler interface {
	OnForeignEvent(obj *EntityView, ctx *Context, payload []byte)
}

// TickFunc adapts a stateless function to Behavior.
type TickFunc func(obj *EntityView, ctx *Context)

func (f TickFunc) OnTick(obj *EntityView, ctx *Context) {
	f(obj, ctx)
}

func (f TickFunc) Clone() Behavior {
	return f
}

type namedBehavior interface {
	Name() string
}

func behaviorName(b Behavior) string {
	if named, ok := b.(namedBehavior); ok {
		return named.Name()
	}

	t := reflect.TypeOf(b)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
