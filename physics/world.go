// Package physics wraps a Chipmunk2D space behind generation-tagged handles.
//
// A World owns every body and collider inserted into it. Callers only ever
// hold BodyHandle and ColliderHandle values; handles carry the tag of the world
// that issued them so a handle from one world never resolves in another, and a
// slot generation so a handle to a removed object reports ErrMissingHandle
// instead of aliasing whatever reused the slot.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

const colliderType cp.CollisionType = 1

// Settings configures a World.
type Settings struct {
	Gravity mgl32.Vec2
	// PixelsPerUnit converts collider sizes and screen positions into
	// physics units.
	PixelsPerUnit float32
	Iterations    int
}

// DefaultSettings returns zero gravity, 50 pixels per unit and 10 solver
// iterations.
func DefaultSettings() Settings {
	return Settings{
		PixelsPerUnit: 50,
		Iterations:    10,
	}
}

type bodyEntry struct {
	body      *cp.Body
	desc      BodyDesc
	colliders []ColliderHandle
	// moved marks a teleported static body awaiting RefreshQueries.
	moved bool
}

type colliderEntry struct {
	shape     *cp.Shape
	parent    BodyHandle
	hasParent bool
	userData  uint64
}

type pairKey struct {
	a, b ColliderHandle
}

func newPairKey(a, b ColliderHandle) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// World is the physics facade: body set, collider set and the solver space.
type World struct {
	tag      uint16
	settings Settings
	space    *cp.Space

	bodies    *arena[bodyEntry]
	colliders *arena[colliderEntry]

	contacts      map[pairKey]struct{}
	intersections map[pairKey]struct{}
}

// New creates an empty world. Handles issued by the world carry tag.
func New(tag uint16, settings Settings) *World {
	if settings.PixelsPerUnit <= 0 {
		settings.PixelsPerUnit = DefaultSettings().PixelsPerUnit
	}
	if settings.Iterations <= 0 {
		settings.Iterations = DefaultSettings().Iterations
	}

	space := cp.NewSpace()
	space.SetGravity(vec(settings.Gravity))
	space.Iterations = uint(settings.Iterations)

	w := &World{
		tag:           tag,
		settings:      settings,
		space:         space,
		bodies:        newArena[bodyEntry](tag),
		colliders:     newArena[colliderEntry](tag),
		contacts:      make(map[pairKey]struct{}),
		intersections: make(map[pairKey]struct{}),
	}

	handler := space.NewCollisionHandler(colliderType, colliderType)
	handler.BeginFunc = w.beginPair
	handler.SeparateFunc = w.separatePair

	return w
}

// Tag returns the tag stamped into every handle this world issues.
func (w *World) Tag() uint16 {
	return w.tag
}

// Settings returns the settings the world was created with.
func (w *World) Settings() Settings {
	return w.settings
}

// ToPhysics converts a screen-space vector to physics units.
func (w *World) ToPhysics(v mgl32.Vec2) mgl32.Vec2 {
	return v.Mul(1 / w.settings.PixelsPerUnit)
}

// ToScreen converts a physics-space vector to screen units.
func (w *World) ToScreen(v mgl32.Vec2) mgl32.Vec2 {
	return v.Mul(w.settings.PixelsPerUnit)
}

// InsertBody adds a rigid body and returns its handle.
func (w *World) InsertBody(desc BodyDesc) BodyHandle {
	var body *cp.Body
	switch desc.Type {
	case Kinematic:
		body = cp.NewKinematicBody()
	case Static:
		body = cp.NewStaticBody()
	default:
		body = cp.NewBody(0, 0)
	}

	body.SetPosition(vec(desc.Translation))
	if desc.Type != Static {
		body.SetVelocity(float64(desc.LinearVelocity.X()), float64(desc.LinearVelocity.Y()))
	}

	if desc.Type == Dynamic && (desc.LinearDamping > 0 || desc.AngularDamping > 0) {
		linear := float64(desc.LinearDamping)
		angular := float64(desc.AngularDamping)
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(b, gravity, damping, dt)
			if linear > 0 {
				v := b.Velocity().Mult(1 / (1 + dt*linear))
				b.SetVelocity(v.X, v.Y)
			}
			if angular > 0 {
				b.SetAngularVelocity(b.AngularVelocity() / (1 + dt*angular))
			}
		})
	}

	w.space.AddBody(body)

	h := BodyHandle(w.bodies.insert(bodyEntry{body: body, desc: desc}))
	body.UserData = h
	return h
}

// InsertCollider adds a free-standing collider attached to the world's static
// body. userData is stored verbatim and returned by Collider.UserData.
func (w *World) InsertCollider(desc ColliderDesc, userData uint64) ColliderHandle {
	shape := desc.buildShape(w.space.StaticBody, w.settings.PixelsPerUnit, desc.Translation)
	return w.addShape(shape, colliderEntry{shape: shape, userData: userData})
}

// InsertColliderWithParent adds a collider attached to parent.
func (w *World) InsertColliderWithParent(desc ColliderDesc, userData uint64, parent BodyHandle) (ColliderHandle, error) {
	entry, ok := w.bodies.get(handle(parent))
	if !ok {
		return 0, missingBody(parent)
	}

	shape := desc.buildShape(entry.body, w.settings.PixelsPerUnit, mgl32.Vec2{})
	h := w.addShape(shape, colliderEntry{
		shape:     shape,
		parent:    parent,
		hasParent: true,
		userData:  userData,
	})
	entry.colliders = append(entry.colliders, h)

	if entry.desc.FixedRotation && entry.desc.Type == Dynamic {
		entry.body.SetMoment(cp.INFINITY)
	}

	return h, nil
}

func (w *World) addShape(shape *cp.Shape, entry colliderEntry) ColliderHandle {
	h := ColliderHandle(w.colliders.insert(entry))

	// Every collider gets its own group so a query filter can exclude exactly
	// one collider.
	shape.SetFilter(cp.NewShapeFilter(uint(handle(h).index())+1, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	shape.SetCollisionType(colliderType)
	shape.UserData = h

	w.space.AddShape(shape)
	return h
}

// RemoveCollider removes a collider and forgets every pair it took part in.
func (w *World) RemoveCollider(h ColliderHandle) error {
	entry, ok := w.colliders.get(handle(h))
	if !ok {
		return missingCollider(h)
	}

	w.space.RemoveShape(entry.shape)

	if entry.hasParent {
		if parent, ok := w.bodies.get(handle(entry.parent)); ok {
			for i, child := range parent.colliders {
				if child == h {
					parent.colliders = append(parent.colliders[:i], parent.colliders[i+1:]...)
					break
				}
			}
		}
	}

	w.forgetPairs(h)
	w.colliders.remove(handle(h))
	return nil
}

// RemoveBody removes a body. Colliders attached to it are removed first.
func (w *World) RemoveBody(h BodyHandle) error {
	entry, ok := w.bodies.get(handle(h))
	if !ok {
		return missingBody(h)
	}

	children := append([]ColliderHandle(nil), entry.colliders...)
	for _, child := range children {
		if err := w.RemoveCollider(child); err != nil {
			return err
		}
	}

	w.space.RemoveBody(entry.body)
	w.bodies.remove(handle(h))
	return nil
}

// Body resolves a body handle.
func (w *World) Body(h BodyHandle) (*Body, error) {
	entry, ok := w.bodies.get(handle(h))
	if !ok {
		return nil, missingBody(h)
	}
	return &Body{handle: h, entry: entry}, nil
}

// Collider resolves a collider handle.
func (w *World) Collider(h ColliderHandle) (*Collider, error) {
	entry, ok := w.colliders.get(handle(h))
	if !ok {
		return nil, missingCollider(h)
	}
	return &Collider{handle: h, entry: entry}, nil
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return w.bodies.len()
}

// ColliderCount returns the number of live colliders.
func (w *World) ColliderCount() int {
	return w.colliders.len()
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// RefreshQueries re-synchronizes the spatial index with body positions so
// raycasts observe teleported bodies. Moving bodies are reindexed by every
// Step; static bodies moved since the last refresh get their shapes
// re-inserted.
func (w *World) RefreshQueries() {
	for _, entry := range w.bodies.all() {
		if !entry.moved {
			continue
		}
		entry.moved = false

		for _, h := range entry.colliders {
			collider, ok := w.colliders.get(handle(h))
			if !ok {
				continue
			}
			w.space.RemoveShape(collider.shape)
			w.space.AddShape(collider.shape)
		}
	}
}

func (w *World) beginPair(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Shapes()
	ha, okA := a.UserData.(ColliderHandle)
	hb, okB := b.UserData.(ColliderHandle)
	if !okA || !okB {
		return true
	}

	if a.Sensor() || b.Sensor() {
		w.intersections[newPairKey(ha, hb)] = struct{}{}
	} else {
		w.contacts[newPairKey(ha, hb)] = struct{}{}
	}
	return true
}

func (w *World) separatePair(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	a, b := arb.Shapes()
	ha, okA := a.UserData.(ColliderHandle)
	hb, okB := b.UserData.(ColliderHandle)
	if !okA || !okB {
		return
	}

	key := newPairKey(ha, hb)
	delete(w.contacts, key)
	delete(w.intersections, key)
}

func (w *World) forgetPairs(h ColliderHandle) {
	for key := range w.contacts {
		if key.a == h || key.b == h {
			delete(w.contacts, key)
		}
	}
	for key := range w.intersections {
		if key.a == h || key.b == h {
			delete(w.intersections, key)
		}
	}
}
