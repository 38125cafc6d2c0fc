package debugui

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paddle struct{}

func (paddle) OnTick(*engine.EntityView, *engine.Context) {}
func (p paddle) Clone() engine.Behavior                   { return p }

func TestCollectAndFilterEntities(t *testing.T) {
	e := engine.New(nil)
	scene := e.RegisterScene("main")
	scene.RegisterGameObject(engine.NewBuilder().Position(mgl32.Vec2{1, 2}))
	scene.RegisterGameObject(engine.NewBuilder().
		RigidBody(physics.BodyDesc{Type: physics.Dynamic}).
		Collider(physics.Circle(4)).
		Behavior(paddle{}))
	require.NoError(t, e.SetCurrentScene("main"))

	infos := collectEntities(e.ActiveScene())
	require.Len(t, infos, 2)

	assert.Equal(t, engine.EntityID(0), infos[0].ID)
	assert.Equal(t, float32(1), infos[0].X)
	assert.Equal(t, "-", infos[0].Body)
	assert.NotEqual(t, "-", infos[1].Body)
	assert.NotEqual(t, "-", infos[1].Collider)
	assert.Equal(t, []string{"paddle"}, infos[1].Behaviors)

	assert.Len(t, filterEntities(infos, ""), 2)
	filtered := filterEntities(infos, "PADDLE")
	require.Len(t, filtered, 1)
	assert.Equal(t, engine.EntityID(1), filtered[0].ID)
}

func TestSortBehaviors(t *testing.T) {
	rows := []engine.BehaviorStats{
		{Name: "b", ExecutionCount: 3, AvgDuration: time.Millisecond},
		{Name: "a", ExecutionCount: 1, AvgDuration: 3 * time.Millisecond},
		{Name: "c", ExecutionCount: 2, AvgDuration: 2 * time.Millisecond},
	}

	sortBehaviors(rows, 0, false)
	assert.Equal(t, "a", rows[0].Name)

	sortBehaviors(rows, 1, true)
	assert.Equal(t, int64(3), rows[0].ExecutionCount)

	sortBehaviors(rows, 2, false)
	assert.Equal(t, "b", rows[0].Name)
}

func TestPerformanceStatsAverage(t *testing.T) {
	ps := NewPerformanceStats(4)
	for i := 0; i < 4; i++ {
		ps.push(0.016)
	}
	assert.InDelta(t, 16.0, ps.AverageFrameTime(), 1e-3)

	ps.push(0.032)
	assert.InDelta(t, 20.0, ps.AverageFrameTime(), 1e-3)
}
