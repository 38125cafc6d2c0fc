package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// RayHit describes the first collider hit by a ray.
type RayHit struct {
	Collider ColliderHandle
	// TimeOfImpact is the distance travelled along the normalized ray
	// direction, in physics units.
	TimeOfImpact float32
	Point        mgl32.Vec2
	Normal       mgl32.Vec2
}

// CastRay casts a ray from origin along dir for at most maxLength physics
// units and returns the closest hit. A valid exclude handle is skipped.
func (w *World) CastRay(origin, dir mgl32.Vec2, maxLength float32, exclude ColliderHandle) (RayHit, bool) {
	if dir.Len() == 0 || maxLength <= 0 {
		return RayHit{}, false
	}

	filter := cp.SHAPE_FILTER_ALL
	if exclude.IsValid() {
		if _, ok := w.colliders.get(handle(exclude)); ok {
			filter = cp.NewShapeFilter(uint(handle(exclude).index())+1, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
		}
	}

	end := origin.Add(dir.Normalize().Mul(maxLength))
	info := w.space.SegmentQueryFirst(vec(origin), vec(end), 0, filter)
	if info.Shape == nil {
		return RayHit{}, false
	}

	h, ok := info.Shape.UserData.(ColliderHandle)
	if !ok {
		return RayHit{}, false
	}

	return RayHit{
		Collider:     h,
		TimeOfImpact: float32(info.Alpha) * maxLength,
		Point:        fromVec(info.Point),
		Normal:       fromVec(info.Normal),
	}, true
}

// Contacting reports whether a and b currently have an active contact.
// Sensor pairs never count as contacts.
func (w *World) Contacting(a, b ColliderHandle) bool {
	_, ok := w.contacts[newPairKey(a, b)]
	return ok
}

// Intersecting reports whether a and b currently overlap with at least one
// of them being a sensor.
func (w *World) Intersecting(a, b ColliderHandle) bool {
	_, ok := w.intersections[newPairKey(a, b)]
	return ok
}

// ContactCount returns the number of colliding pairs, sensors included.
func (w *World) ContactCount() int {
	return len(w.contacts) + len(w.intersections)
}
