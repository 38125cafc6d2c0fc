package physics_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(tag uint16) *physics.World {
	return physics.New(tag, physics.DefaultSettings())
}

func TestColliderParentRoundTrip(t *testing.T) {
	world := newWorld(1)

	body := world.InsertBody(physics.DynamicBody(mgl32.Vec2{1, 2}))
	collider, err := world.InsertColliderWithParent(physics.Circle(10), 42, body)
	require.NoError(t, err)

	c, err := world.Collider(collider)
	require.NoError(t, err)

	parent, ok := c.Parent()
	assert.True(t, ok)
	assert.Equal(t, body, parent)
	assert.Equal(t, uint64(42), c.UserData())

	b, err := world.Body(body)
	require.NoError(t, err)
	assert.Equal(t, []physics.ColliderHandle{collider}, b.Colliders())
	assert.Equal(t, mgl32.Vec2{1, 2}, b.Translation())
}

func TestFreeStandingColliderHasNoParent(t *testing.T) {
	world := newWorld(1)

	collider := world.InsertCollider(physics.Rectangle(100, 20).WithSensor(true), 7)

	c, err := world.Collider(collider)
	require.NoError(t, err)

	_, ok := c.Parent()
	assert.False(t, ok)
	assert.True(t, c.IsSensor())
}

func TestInsertColliderWithMissingParent(t *testing.T) {
	world := newWorld(1)

	body := world.InsertBody(physics.StaticBody(mgl32.Vec2{}))
	require.NoError(t, world.RemoveBody(body))

	_, err := world.InsertColliderWithParent(physics.Circle(5), 0, body)
	assert.True(t, errors.Is(err, physics.ErrMissingHandle))
}

func TestRemoveBodyCascadesColliders(t *testing.T) {
	world := newWorld(1)

	body := world.InsertBody(physics.DynamicBody(mgl32.Vec2{}))
	collider, err := world.InsertColliderWithParent(physics.Circle(10), 0, body)
	require.NoError(t, err)

	require.NoError(t, world.RemoveBody(body))

	_, err = world.Collider(collider)
	assert.ErrorIs(t, err, physics.ErrMissingHandle)
	_, err = world.Body(body)
	assert.ErrorIs(t, err, physics.ErrMissingHandle)
	assert.Equal(t, 0, world.BodyCount())
	assert.Equal(t, 0, world.ColliderCount())
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	world := newWorld(1)

	old := world.InsertBody(physics.StaticBody(mgl32.Vec2{}))
	require.NoError(t, world.RemoveBody(old))
	fresh := world.InsertBody(physics.StaticBody(mgl32.Vec2{3, 3}))

	assert.NotEqual(t, old, fresh)
	_, err := world.Body(old)
	assert.ErrorIs(t, err, physics.ErrMissingHandle)
	assert.ErrorIs(t, world.RemoveBody(old), physics.ErrMissingHandle)
}

func TestForeignHandleRejected(t *testing.T) {
	a := newWorld(1)
	b := newWorld(2)

	body := a.InsertBody(physics.StaticBody(mgl32.Vec2{}))
	b.InsertBody(physics.StaticBody(mgl32.Vec2{}))

	_, err := b.Body(body)
	assert.ErrorIs(t, err, physics.ErrMissingHandle)
}

func TestSameTagWorldsIssueSameHandles(t *testing.T) {
	build := func() (physics.BodyHandle, physics.ColliderHandle) {
		world := newWorld(9)
		body := world.InsertBody(physics.DynamicBody(mgl32.Vec2{}))
		collider, err := world.InsertColliderWithParent(physics.Circle(4), 0, body)
		require.NoError(t, err)
		return body, collider
	}

	b1, c1 := build()
	b2, c2 := build()
	assert.Equal(t, b1, b2)
	assert.Equal(t, c1, c2)
}

func TestCastRayHitsCircle(t *testing.T) {
	world := newWorld(1)

	body := world.InsertBody(physics.StaticBody(mgl32.Vec2{5, 0}))
	target, err := world.InsertColliderWithParent(physics.Circle(50), 0, body)
	require.NoError(t, err)
	world.RefreshQueries()

	hit, ok := world.CastRay(mgl32.Vec2{}, mgl32.Vec2{2, 0}, 10, 0)
	require.True(t, ok)
	assert.Equal(t, target, hit.Collider)
	assert.InDelta(t, 4.0, hit.TimeOfImpact, 1e-3)
	assert.InDelta(t, -1.0, hit.Normal.X(), 1e-3)
}

func TestCastRayExcludesCollider(t *testing.T) {
	world := newWorld(1)

	near := world.InsertBody(physics.StaticBody(mgl32.Vec2{5, 0}))
	nearCollider, err := world.InsertColliderWithParent(physics.Circle(50), 0, near)
	require.NoError(t, err)
	far := world.InsertBody(physics.StaticBody(mgl32.Vec2{8, 0}))
	farCollider, err := world.InsertColliderWithParent(physics.Circle(50), 0, far)
	require.NoError(t, err)
	world.RefreshQueries()

	hit, ok := world.CastRay(mgl32.Vec2{}, mgl32.Vec2{1, 0}, 20, nearCollider)
	require.True(t, ok)
	assert.Equal(t, farCollider, hit.Collider)
	assert.InDelta(t, 7.0, hit.TimeOfImpact, 1e-3)
}

func TestCastRaySeesTeleportedStaticBody(t *testing.T) {
	world := newWorld(1)

	body := world.InsertBody(physics.StaticBody(mgl32.Vec2{5, 0}))
	target, err := world.InsertColliderWithParent(physics.Circle(50), 0, body)
	require.NoError(t, err)
	world.RefreshQueries()

	b, err := world.Body(body)
	require.NoError(t, err)
	b.SetTranslation(mgl32.Vec2{0, 5})
	world.RefreshQueries()

	_, ok := world.CastRay(mgl32.Vec2{}, mgl32.Vec2{1, 0}, 10, 0)
	assert.False(t, ok, "old position no longer hit")

	hit, ok := world.CastRay(mgl32.Vec2{}, mgl32.Vec2{0, 1}, 10, 0)
	require.True(t, ok)
	assert.Equal(t, target, hit.Collider)
	assert.InDelta(t, 4.0, hit.TimeOfImpact, 1e-3)
}

func TestCastRaySeesTeleportedDynamicBodyAfterStep(t *testing.T) {
	world := newWorld(1)

	body := world.InsertBody(physics.DynamicBody(mgl32.Vec2{5, 0}))
	target, err := world.InsertColliderWithParent(physics.Circle(50), 0, body)
	require.NoError(t, err)

	b, err := world.Body(body)
	require.NoError(t, err)
	b.SetTranslation(mgl32.Vec2{0, 5})
	world.Step(1.0 / 60)
	world.RefreshQueries()

	hit, ok := world.CastRay(mgl32.Vec2{}, mgl32.Vec2{0, 1}, 10, 0)
	require.True(t, ok)
	assert.Equal(t, target, hit.Collider)
	assert.InDelta(t, 4.0, hit.TimeOfImpact, 1e-3)
}

func TestCastRayMiss(t *testing.T) {
	world := newWorld(1)

	body := world.InsertBody(physics.StaticBody(mgl32.Vec2{5, 0}))
	_, err := world.InsertColliderWithParent(physics.Circle(50), 0, body)
	require.NoError(t, err)

	_, ok := world.CastRay(mgl32.Vec2{}, mgl32.Vec2{0, 1}, 10, 0)
	assert.False(t, ok)

	_, ok = world.CastRay(mgl32.Vec2{}, mgl32.Vec2{}, 10, 0)
	assert.False(t, ok, "zero direction never hits")
}

func TestSensorIntersectionLifecycle(t *testing.T) {
	world := newWorld(1)

	sensor := world.InsertCollider(physics.Rectangle(100, 100).WithSensor(true), 0)
	ballBody := world.InsertBody(physics.DynamicBody(mgl32.Vec2{-10, 1}))
	ball, err := world.InsertColliderWithParent(physics.Circle(10), 1, ballBody)
	require.NoError(t, err)

	step := func() { world.Step(1.0 / 60.0) }

	step()
	assert.False(t, world.Intersecting(sensor, ball))

	b, err := world.Body(ballBody)
	require.NoError(t, err)
	b.SetTranslation(mgl32.Vec2{0, 1})
	step()
	assert.True(t, world.Intersecting(sensor, ball))
	assert.True(t, world.Intersecting(ball, sensor), "pairs are unordered")
	assert.False(t, world.Contacting(sensor, ball), "sensor overlaps are not contacts")

	step()
	assert.True(t, world.Intersecting(sensor, ball))

	b.SetTranslation(mgl32.Vec2{-10, 1})
	step()
	assert.False(t, world.Intersecting(sensor, ball))
}

func TestRemoveColliderForgetsPairs(t *testing.T) {
	world := newWorld(1)

	sensor := world.InsertCollider(physics.Rectangle(100, 100).WithSensor(true), 0)
	ballBody := world.InsertBody(physics.DynamicBody(mgl32.Vec2{0, 1}))
	ball, err := world.InsertColliderWithParent(physics.Circle(10), 1, ballBody)
	require.NoError(t, err)

	world.Step(1.0 / 60.0)
	require.True(t, world.Intersecting(sensor, ball))

	require.NoError(t, world.RemoveCollider(ball))
	assert.False(t, world.Intersecting(sensor, ball))
	assert.Equal(t, 0, world.ContactCount())
}

func TestUnitConversion(t *testing.T) {
	world := newWorld(1)

	assert.Equal(t, mgl32.Vec2{2, -1}, world.ToPhysics(mgl32.Vec2{100, -50}))
	assert.Equal(t, mgl32.Vec2{100, -50}, world.ToScreen(mgl32.Vec2{2, -1}))
}
