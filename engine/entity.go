package engine

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/physics"
	"github.com/plus3/warpcore/render"
)

// EntityID identifies an entity within its scene. Ids are assigned from 0 in
// registration order.
type EntityID uint64

// Entity is a game object owned by a scene.
type Entity struct {
	id        EntityID
	position  mgl32.Vec2
	collider  physics.ColliderHandle
	body      physics.BodyHandle
	graphics  render.Graphics
	behaviors []Behavior
}

func (e *Entity) ID() EntityID {
	return e.id
}

// Position returns the entity position in screen units.
func (e *Entity) Position() mgl32.Vec2 {
	return e.position
}

func (e *Entity) Collider() physics.ColliderHandle {
	return e.collider
}

func (e *Entity) Body() physics.BodyHandle {
	return e.body
}

func (e *Entity) Graphics() render.Graphics {
	return e.graphics
}

// BehaviorNames lists the attached behaviors in dispatch order.
func (e *Entity) BehaviorNames() []string {
	names := make([]string, len(e.behaviors))
	for i, b := range e.behaviors {
		names[i] = behaviorName(b)
	}
	return names
}

// Builder collects the parts of an entity before it is registered with a
// scene.
type Builder struct {
	position  mgl32.Vec2
	body      *physics.BodyDesc
	collider  *physics.ColliderDesc
	graphics  render.Graphics
	behaviors []Behavior
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Position sets the starting position in screen units. A rigid body without
// an explicit translation starts here too.
func (b *Builder) Position(pos mgl32.Vec2) *Builder {
	b.position = pos
	return b
}

func (b *Builder) RigidBody(desc physics.BodyDesc) *Builder {
	b.body = &desc
	return b
}

func (b *Builder) Collider(desc physics.ColliderDesc) *Builder {
	b.collider = &desc
	return b
}

func (b *Builder) Graphics(g render.Graphics) *Builder {
	b.graphics = g
	return b
}

func (b *Builder) Behavior(behaviors ...Behavior) *Builder {
	b.behaviors = append(b.behaviors, behaviors...)
	return b
}

// snapshot copies the builder so later edits by the caller do not leak into
// the scene's registration log.
func (b *Builder) snapshot() *Builder {
	c := *b
	if b.body != nil {
		body := *b.body
		c.body = &body
	}
	if b.collider != nil {
		collider := *b.collider
		c.collider = &collider
	}
	c.behaviors = slices.Clone(b.behaviors)
	return &c
}

// instance returns a copy with every behavior cloned.
func (b *Builder) instance() *Builder {
	c := b.snapshot()
	for i, behavior := range c.behaviors {
		c.behaviors[i] = behavior.Clone()
	}
	return c
}
