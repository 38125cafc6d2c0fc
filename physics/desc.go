package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// BodyType selects how the solver treats a rigid body.
type BodyType int

const (
	Dynamic BodyType = iota
	Kinematic
	Static
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// BodyDesc describes a rigid body to insert. Translation is in physics units.
type BodyDesc struct {
	Type           BodyType
	Translation    mgl32.Vec2
	LinearVelocity mgl32.Vec2
	LinearDamping  float32
	AngularDamping float32
	FixedRotation  bool

	// CCD and CanSleep are accepted for API parity. The solver has no
	// per-body continuous collision detection and sleeping is disabled for
	// every world.
	CCD      bool
	CanSleep bool
}

// DynamicBody returns a dynamic body description at translation.
func DynamicBody(translation mgl32.Vec2) BodyDesc {
	return BodyDesc{Type: Dynamic, Translation: translation}
}

// KinematicBody returns a kinematic body description at translation.
func KinematicBody(translation mgl32.Vec2) BodyDesc {
	return BodyDesc{Type: Kinematic, Translation: translation}
}

// StaticBody returns a static body description at translation.
func StaticBody(translation mgl32.Vec2) BodyDesc {
	return BodyDesc{Type: Static, Translation: translation}
}

// ShapeKind enumerates the supported collider shapes.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
)

// ColliderDesc describes a collider to insert. Sizes are given in screen
// units and converted to physics units by the owning world.
type ColliderDesc struct {
	Shape       ShapeKind
	Width       float32
	Height      float32
	Radius      float32
	Sensor      bool
	Friction    float32
	Restitution float32
	// Density defaults to 1 when left at zero so dynamic bodies get mass.
	Density float32
	// Translation offsets a free-standing collider, in physics units. It is
	// ignored for colliders parented to a body.
	Translation mgl32.Vec2
}

// Rectangle returns a rectangle collider description of the given screen size.
func Rectangle(width, height float32) ColliderDesc {
	return ColliderDesc{Shape: ShapeRectangle, Width: width, Height: height}
}

// Circle returns a circle collider description of the given screen radius.
func Circle(radius float32) ColliderDesc {
	return ColliderDesc{Shape: ShapeCircle, Radius: radius}
}

// WithSensor marks the collider as a sensor: it reports intersections but
// produces no contact response.
func (d ColliderDesc) WithSensor(sensor bool) ColliderDesc {
	d.Sensor = sensor
	return d
}

func (d ColliderDesc) WithFriction(friction float32) ColliderDesc {
	d.Friction = friction
	return d
}

func (d ColliderDesc) WithRestitution(restitution float32) ColliderDesc {
	d.Restitution = restitution
	return d
}

func (d ColliderDesc) WithDensity(density float32) ColliderDesc {
	d.Density = density
	return d
}

func (d ColliderDesc) WithTranslation(translation mgl32.Vec2) ColliderDesc {
	d.Translation = translation
	return d
}

// buildShape creates the solver shape for d on body. offset shifts the shape
// relative to the body origin, in physics units.
func (d ColliderDesc) buildShape(body *cp.Body, pixelsPerUnit float32, offset mgl32.Vec2) *cp.Shape {
	var shape *cp.Shape

	switch d.Shape {
	case ShapeCircle:
		radius := float64(d.Radius / pixelsPerUnit)
		shape = cp.NewCircle(body, radius, vec(offset))
	default:
		// Rectangles keep the engine's historical sizing: half extents shrunk
		// by 1.75 and the shape lifted by half its height.
		hx := float64(d.Width / pixelsPerUnit / 1.75)
		hy := float64(d.Height / pixelsPerUnit / 1.75)
		ox := float64(offset.X())
		oy := float64(offset.Y() + d.Height/pixelsPerUnit/2)
		shape = cp.NewBox2(body, cp.BB{L: ox - hx, B: oy - hy, R: ox + hx, T: oy + hy}, 0)
	}

	density := d.Density
	if density == 0 {
		density = 1
	}

	shape.SetSensor(d.Sensor)
	shape.SetFriction(float64(d.Friction))
	shape.SetElasticity(float64(d.Restitution))
	shape.SetDensity(float64(density))
	return shape
}

func vec(v mgl32.Vec2) cp.Vector {
	return cp.Vector{X: float64(v.X()), Y: float64(v.Y())}
}

func fromVec(v cp.Vector) mgl32.Vec2 {
	return mgl32.Vec2{float32(v.X), float32(v.Y)}
}
