package script_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/config"
	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/input"
	"github.com/plus3/warpcore/physics"
	"github.com/plus3/warpcore/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const frame = time.Second / 60

func mustScript(t *testing.T, name, src string, opts script.Options) *script.Behavior {
	t.Helper()
	b, err := script.New(name, src, opts)
	require.NoError(t, err)
	return b
}

func TestNewRejectsBrokenSource(t *testing.T) {
	_, err := script.New("broken", "function on_tick(", script.Options{})
	assert.Error(t, err)
}

func TestLoadNamesBehaviorAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paddle.lua")
	require.NoError(t, os.WriteFile(path, []byte("function on_tick(dt) end"), 0o644))

	b, err := script.Load(path, script.Options{})
	require.NoError(t, err)
	assert.Equal(t, "paddle", b.Name())

	_, err = script.Load(filepath.Join(t.TempDir(), "missing.lua"), script.Options{})
	assert.Error(t, err)
}

func TestScriptDataAndInput(t *testing.T) {
	e := engine.New(nil)
	scene := e.RegisterScene("main")
	scene.SetInitialData("jumps", "0")

	b := mustScript(t, "jumper", `
		jumps = 0
		function on_tick(dt)
			if engine.key_pressed("space") then
				jumps = jumps + 1
				engine.set_data("jumps", tostring(jumps))
			end
		end
	`, script.Options{})
	scene.RegisterGameObject(engine.NewBuilder().Behavior(b))

	require.NoError(t, e.SetCurrentScene("main"))

	e.Input().Press(input.KeySpace)
	e.Tick(frame)
	e.Tick(frame)
	e.Input().Release(input.KeySpace)
	e.Tick(frame)
	e.Input().Press(input.KeySpace)
	e.Tick(frame)

	v, _ := e.ActiveScene().Data("jumps")
	assert.Equal(t, "2", v)
}

func TestScriptStateResetsPerVisit(t *testing.T) {
	e := engine.New(nil)
	main := e.RegisterScene("main")
	e.RegisterScene("menu")

	main.RegisterGameObject(engine.NewBuilder().Behavior(mustScript(t, "counter", `
		n = 0
		function on_tick(dt)
			n = n + 1
			engine.insert_data("n", tostring(n))
		end
	`, script.Options{})))

	require.NoError(t, e.SetCurrentScene("main"))
	e.Tick(frame)
	e.Tick(frame)
	v, _ := e.ActiveScene().Data("n")
	assert.Equal(t, "2", v)

	require.NoError(t, e.SetCurrentScene("menu"))
	require.NoError(t, e.SetCurrentScene("main"))
	e.Tick(frame)
	v, _ = e.ActiveScene().Data("n")
	assert.Equal(t, "1", v)
}

func TestScriptMovesItsBody(t *testing.T) {
	e := engine.New(nil)
	scene := e.RegisterScene("main")

	paddle := scene.RegisterGameObject(engine.NewBuilder().
		Position(mgl32.Vec2{0, 0}).
		RigidBody(physics.BodyDesc{Type: physics.Kinematic}).
		Collider(physics.Rectangle(20, 80)).
		Behavior(mustScript(t, "paddle", `
			function on_load()
				self.set_velocity(0, 60)
			end
			function on_tick(dt)
				local vx, vy = self.velocity()
				engine.insert_data("vy", tostring(vy))
			end
		`, script.Options{})))

	require.NoError(t, e.SetCurrentScene("main"))
	e.Tick(frame)

	v, _ := e.ActiveScene().Data("vy")
	assert.Equal(t, "60", v)

	entity, _ := e.ActiveScene().Entity(paddle.ID())
	assert.InDelta(t, 50.0, entity.Position().Y(), 1e-3)
}

func TestScriptSeesNamedColliders(t *testing.T) {
	e := engine.New(nil)
	scene := e.RegisterScene("main")

	ball := scene.RegisterGameObject(engine.NewBuilder().
		Position(mgl32.Vec2{0, 50}).
		RigidBody(physics.BodyDesc{Type: physics.Dynamic}).
		Collider(physics.Circle(10)))

	scene.RegisterGameObject(engine.NewBuilder().
		Collider(physics.Rectangle(100, 100).WithSensor(true)).
		Behavior(mustScript(t, "goal", `
			hits = 0
			function on_tick(dt)
				if engine.sensor_once(self.collider(), ball) then
					hits = hits + 1
					engine.insert_data("hits", tostring(hits))
					engine.switch_scene("fail")
				end
			end
		`, script.Options{Handles: map[string]physics.ColliderHandle{"ball": ball.Collider()}})))
	e.RegisterScene("fail")

	require.NoError(t, e.SetCurrentScene("main"))
	e.Tick(frame)

	assert.Equal(t, "fail", e.ActiveScene().Name())
}

func TestScriptForeignEvents(t *testing.T) {
	e := engine.New(nil)
	scene := e.RegisterScene("main")

	scene.RegisterGameObject(engine.NewBuilder().Behavior(mustScript(t, "listener", `
		function on_foreign_event(payload)
			engine.insert_data("got", payload)
		end
	`, script.Options{})))
	scene.RegisterGameObject(engine.NewBuilder().Behavior(mustScript(t, "sender", `
		sent = false
		function on_tick(dt)
			if not sent then
				sent = true
				engine.broadcast("goal")
			end
		end
	`, script.Options{})))

	require.NoError(t, e.SetCurrentScene("main"))
	e.Tick(frame)
	e.Tick(frame)

	v, _ := e.ActiveScene().Data("got")
	assert.Equal(t, "goal", v)
}

func TestScriptErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	e := engine.New(nil)
	scene := e.RegisterScene("main")
	scene.RegisterGameObject(engine.NewBuilder().Behavior(mustScript(t, "buggy", `
		function on_tick(dt)
			error("boom")
		end
	`, script.Options{Logger: log})))

	require.NoError(t, e.SetCurrentScene("main"))
	assert.NotPanics(t, func() { e.Tick(frame) })

	entries := logs.FilterMessage("lua callback failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "buggy", entries[0].ContextMap()["script"])
}

func TestScriptStaleBody(t *testing.T) {
	src := `
		function on_tick(dt)
			self.set_velocity(1, 0)
			engine.insert_data("reached", "yes")
		end
	`

	t.Run("release skips", func(t *testing.T) {
		e := engine.New(nil)
		scene := e.RegisterScene("main")
		scene.RegisterGameObject(engine.NewBuilder().Behavior(mustScript(t, "bodyless", src, script.Options{})))

		require.NoError(t, e.SetCurrentScene("main"))
		assert.NotPanics(t, func() { e.Tick(frame) })

		_, ok := e.ActiveScene().Data("reached")
		assert.False(t, ok)
		assert.Equal(t, uint64(1), e.Stats().SkippedEntities)
	})

	t.Run("debug panics", func(t *testing.T) {
		cfg := config.Default()
		cfg.Debug = true
		e := engine.New(cfg)
		scene := e.RegisterScene("main")
		scene.RegisterGameObject(engine.NewBuilder().Behavior(mustScript(t, "bodyless", src, script.Options{})))

		require.NoError(t, e.SetCurrentScene("main"))
		assert.Panics(t, func() { e.Tick(frame) })
	})
}

func TestScriptStatsUseScriptName(t *testing.T) {
	e := engine.New(nil)
	scene := e.RegisterScene("main")
	scene.RegisterGameObject(engine.NewBuilder().Behavior(mustScript(t, "idle", "", script.Options{})))

	require.NoError(t, e.SetCurrentScene("main"))
	e.Tick(frame)

	stats := e.Stats()
	require.Len(t, stats.Behaviors, 1)
	assert.Equal(t, "idle", stats.Behaviors[0].Name)
}
