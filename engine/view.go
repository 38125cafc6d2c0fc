package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/audio"
	"github.com/plus3/warpcore/input"
	"github.com/plus3/warpcore/physics"
	"go.uber.org/zap"
)

// EntityView gives a behavior access to its own entity: position and the
// physics handle pair. A fresh view is built for every call; do not keep it.
type EntityView struct {
	entity *Entity
}

func (v *EntityView) ID() EntityID {
	return v.entity.id
}

// Position returns the position in screen units. For entities with a rigid
// body it is overwritten from the body after every behavior pass.
func (v *EntityView) Position() mgl32.Vec2 {
	return v.entity.position
}

func (v *EntityView) SetPosition(pos mgl32.Vec2) {
	v.entity.position = pos
}

func (v *EntityView) Collider() physics.ColliderHandle {
	return v.entity.collider
}

func (v *EntityView) Body() physics.BodyHandle {
	return v.entity.body
}

func (v *EntityView) SetCollider(h physics.ColliderHandle) {
	v.entity.collider = h
}

func (v *EntityView) SetBody(h physics.BodyHandle) {
	v.entity.body = h
}

// Context is the scene capability view handed to behaviors and callbacks:
// physics accessors and queries, input, collision edges and the event sender.
// It cannot enumerate entities. A fresh Context is built for every call.
type Context struct {
	// DeltaTime is the frame delta in seconds.
	DeltaTime float64

	engine *Engine
	scene  *Scene
}

func (e *Engine) newContext(scene *Scene, dt float64) *Context {
	return &Context{DeltaTime: dt, engine: e, scene: scene}
}

// SceneName returns the name of the scene the context is bound to.
func (c *Context) SceneName() string {
	return c.scene.name
}

func (c *Context) Logger() *zap.Logger {
	return c.engine.log
}

// Body resolves a body handle in the bound scene.
func (c *Context) Body(h physics.BodyHandle) (*physics.Body, error) {
	return c.scene.world.Body(h)
}

// Collider resolves a collider handle in the bound scene.
func (c *Context) Collider(h physics.ColliderHandle) (*physics.Collider, error) {
	return c.scene.world.Collider(h)
}

// MustBody is Body for behaviors that treat a stale handle as a bug. The
// panic is recovered by the dispatcher: fatal in debug mode, otherwise the
// entity is skipped for the rest of the frame.
func (c *Context) MustBody(h physics.BodyHandle) *physics.Body {
	body, err := c.Body(h)
	if err != nil {
		panic(err)
	}
	return body
}

func (c *Context) MustCollider(h physics.ColliderHandle) *physics.Collider {
	collider, err := c.Collider(h)
	if err != nil {
		panic(err)
	}
	return collider
}

// RemoveCollider removes a collider from the bound scene's world.
func (c *Context) RemoveCollider(h physics.ColliderHandle) error {
	return c.scene.world.RemoveCollider(h)
}

// ToPhysics converts screen units to physics units.
func (c *Context) ToPhysics(v mgl32.Vec2) mgl32.Vec2 {
	return c.scene.world.ToPhysics(v)
}

// ToScreen converts physics units to screen units.
func (c *Context) ToScreen(v mgl32.Vec2) mgl32.Vec2 {
	return c.scene.world.ToScreen(v)
}

// CastRay casts from origin (screen units) along dir for maxLength physics
// units.
func (c *Context) CastRay(dir, origin mgl32.Vec2, maxLength float32) (physics.RayHit, bool) {
	return c.scene.world.CastRay(c.scene.world.ToPhysics(origin), dir, maxLength, 0)
}

// CastRayExcluding is CastRay ignoring one collider, typically the caster's
// own.
func (c *Context) CastRayExcluding(dir, origin mgl32.Vec2, maxLength float32, exclude physics.ColliderHandle) (physics.RayHit, bool) {
	return c.scene.world.CastRay(c.scene.world.ToPhysics(origin), dir, maxLength, exclude)
}

func (c *Context) IsKeyDown(k input.Key) bool {
	return c.engine.input.IsKeyDown(k)
}

// IsKeyPressed is the edge query: true once per held interval.
func (c *Context) IsKeyPressed(k input.Key) bool {
	return c.engine.input.IsKeyPressed(k)
}

func (c *Context) Mouse() input.Mouse {
	return c.engine.input.Mouse()
}

// IsColliding reports an active non-sensor contact between a and b.
func (c *Context) IsColliding(a, b physics.ColliderHandle) bool {
	return c.scene.world.Contacting(a, b)
}

// IsCollidingOnce returns b only on the first query that sees the contact.
func (c *Context) IsCollidingOnce(a, b physics.ColliderHandle) (physics.ColliderHandle, bool) {
	return c.engine.locks.once(lockContact, c.scene.world.Contacting(a, b), a, b)
}

// IsCollidingWithSensor reports an intersection between a and b where at
// least one is a sensor.
func (c *Context) IsCollidingWithSensor(a, b physics.ColliderHandle) bool {
	return c.scene.world.Intersecting(a, b)
}

// IsCollidingWithSensorOnce returns b only on the first query that sees the
// intersection.
func (c *Context) IsCollidingWithSensorOnce(a, b physics.ColliderHandle) (physics.ColliderHandle, bool) {
	return c.engine.locks.once(lockSensor, c.scene.world.Intersecting(a, b), a, b)
}

// Data reads the bound scene's data map. Writes go through SetData and
// friends.
func (c *Context) Data(key string) (string, bool) {
	v, ok := c.scene.data[key]
	return v, ok
}

// Send queues an intent for the end-of-frame drain.
func (c *Context) Send(in Intent) error {
	return c.engine.bus.Send(in)
}

func (c *Context) LoadScene(name string) error {
	return c.Send(SwitchScene{Name: name})
}

func (c *Context) SetData(key, value string) error {
	return c.Send(SetData{Key: key, Value: value})
}

func (c *Context) InsertData(key, value string) error {
	return c.Send(InsertData{Key: key, Value: value})
}

func (c *Context) RemoveData(key string) error {
	return c.Send(RemoveData{Key: key})
}

func (c *Context) PlaySound(src audio.Source) error {
	return c.Send(PlaySound{Source: src})
}

// PullEntityByCollider runs fn against the entity owning collider once the
// current behavior pass has finished.
func (c *Context) PullEntityByCollider(collider physics.ColliderHandle, fn func(obj *EntityView, ctx *Context)) error {
	return c.Send(PullEntityByCollider{Collider: collider, Fn: fn})
}

// Broadcast delivers payload to every OnForeignEvent handler in the scene.
func (c *Context) Broadcast(payload []byte) error {
	return c.Send(BroadcastUserEvent{Payload: payload})
}

// BroadcastValue encodes v with EncodeUserEvent and broadcasts it.
func (c *Context) BroadcastValue(v any) error {
	payload, err := EncodeUserEvent(v)
	if err != nil {
		return fmt.Errorf("encode user event: %w", err)
	}
	return c.Broadcast(payload)
}
