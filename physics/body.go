package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// Body is a short-lived accessor for a live rigid body. Values are in
// physics units.
type Body struct {
	handle BodyHandle
	entry  *bodyEntry
}

func (b *Body) Handle() BodyHandle {
	return b.handle
}

func (b *Body) Type() BodyType {
	return b.entry.desc.Type
}

func (b *Body) Translation() mgl32.Vec2 {
	return fromVec(b.entry.body.Position())
}

// SetTranslation teleports the body. Raycasts see the new position after
// the next Step for moving bodies and after World.RefreshQueries for static
// ones.
func (b *Body) SetTranslation(v mgl32.Vec2) {
	b.entry.body.SetPosition(vec(v))
	if b.entry.desc.Type == Static {
		b.entry.moved = true
	}
}

func (b *Body) LinearVelocity() mgl32.Vec2 {
	return fromVec(b.entry.body.Velocity())
}

func (b *Body) SetLinearVelocity(v mgl32.Vec2) {
	if b.entry.desc.Type == Static {
		return
	}
	b.entry.body.SetVelocity(float64(v.X()), float64(v.Y()))
}

// ApplyImpulse applies an impulse at the body's center of gravity.
func (b *Body) ApplyImpulse(impulse mgl32.Vec2) {
	if b.entry.desc.Type != Dynamic {
		return
	}
	body := b.entry.body
	body.ApplyImpulseAtWorldPoint(vec(impulse), body.Position())
}

// ResetForces clears accumulated force and torque.
func (b *Body) ResetForces() {
	b.entry.body.SetForce(cp.Vector{})
	b.entry.body.SetTorque(0)
}

func (b *Body) Angle() float32 {
	return float32(b.entry.body.Angle())
}

func (b *Body) SetAngle(angle float32) {
	b.entry.body.SetAngle(float64(angle))
	if b.entry.desc.Type == Static {
		b.entry.moved = true
	}
}

// Colliders returns the handles of colliders parented to the body.
func (b *Body) Colliders() []ColliderHandle {
	return append([]ColliderHandle(nil), b.entry.colliders...)
}

// Collider is a short-lived accessor for a live collider.
type Collider struct {
	handle ColliderHandle
	entry  *colliderEntry
}

func (c *Collider) Handle() ColliderHandle {
	return c.handle
}

// Parent returns the body the collider is attached to. Free-standing
// colliders report false.
func (c *Collider) Parent() (BodyHandle, bool) {
	return c.entry.parent, c.entry.hasParent
}

func (c *Collider) IsSensor() bool {
	return c.entry.shape.Sensor()
}

// UserData returns the value stored at insertion; the engine stores the
// owning entity id.
func (c *Collider) UserData() uint64 {
	return c.entry.userData
}

func (c *Collider) Friction() float32 {
	return float32(c.entry.shape.Friction())
}

func (c *Collider) Restitution() float32 {
	return float32(c.entry.shape.Elasticity())
}
