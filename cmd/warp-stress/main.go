// Command warp-stress drives a headless engine full of bouncing bodies and
// sensor zones as fast as it can and prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"
	"github.com/plus3/warpcore/config"
	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/physics"
	"go.uber.org/zap"
)

var arenas = [2]string{"ArenaA", "ArenaB"}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	bodyCount := flag.Int("bodies", 500, "The number of dynamic bodies per scene.")
	sensorCount := flag.Int("sensors", 16, "The number of sensor zones per scene.")
	switchEvery := flag.Duration("switch", 2*time.Second, "How often to swap scenes. Zero disables switching.")
	fixed := flag.Bool("fixed", false, "Tick with a fixed 1/tick_rate delta instead of wall time.")
	capacity := flag.Int("capacity", 0, "Override the event bus capacity.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	log.Println("Starting engine stress test...")

	cfg := config.Default()
	cfg.Physics.GravityY = -9.8
	if *capacity > 0 {
		cfg.Events.Capacity = *capacity
	}
	e := engine.New(cfg, engine.WithLogger(zap.NewNop()))
	defer e.Close()

	log.Printf("Populating %d scenes with %d bodies and %d sensors...\n", len(arenas), *bodyCount, *sensorCount)
	for _, name := range arenas {
		populate(e, name, *bodyCount, *sensorCount)
	}
	if err := e.SetCurrentScene(arenas[0]); err != nil {
		log.Fatalf("Failed to activate %s: %v", arenas[0], err)
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Bodies:         *bodyCount,
		Sensors:        *sensorCount,
		TickRate:       cfg.Physics.TickRate,
		Capacity:       cfg.Events.Capacity,
		FixedStep:      *fixed,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	step := time.Second / time.Duration(cfg.Physics.TickRate)
	startTime := time.Now()
	lastFrameTime := startTime
	lastSwitch := startTime
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := step
			if !*fixed {
				deltaTime = time.Since(lastFrameTime)
			}
			lastFrameTime = time.Now()

			if *switchEvery > 0 && time.Since(lastSwitch) >= *switchEvery {
				lastSwitch = time.Now()
				next := arenas[0]
				if e.ActiveScene().Name() == next {
					next = arenas[1]
				}
				if err := e.Bus().Send(engine.SwitchScene{Name: next}); err != nil {
					log.Printf("scene switch dropped: %v", err)
				} else {
					report.SceneSwitches++
				}
			}

			updateStart := time.Now()
			e.Tick(deltaTime)
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := e.Stats()
	report.PhysicsSteps = stats.PhysicsSteps
	report.IntentsSent = stats.IntentsSent
	report.IntentsApplied = stats.IntentsApplied
	report.IntentsDeferred = stats.IntentsDeferred
	report.SkippedEntities = stats.SkippedEntities

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// populate registers a walled box with sensors scattered inside and bodies
// raining onto them.
func populate(e *engine.Engine, name string, bodies, sensors int) {
	scene := e.RegisterScene(name)
	scene.SetInitialData("Hits", "0")

	width, height := e.Size()
	halfW, halfH := float32(width)/2, float32(height)/2

	walls := []struct {
		pos  mgl32.Vec2
		w, h float32
	}{
		{mgl32.Vec2{0, -halfH}, float32(width), 10},
		{mgl32.Vec2{-halfW, -halfH}, 10, float32(height) * 2},
		{mgl32.Vec2{halfW, -halfH}, 10, float32(height) * 2},
	}
	for _, w := range walls {
		scene.RegisterGameObject(engine.NewBuilder().
			Position(w.pos).
			RigidBody(physics.BodyDesc{Type: physics.Static}).
			Collider(physics.Rectangle(w.w, w.h).WithRestitution(0.8)))
	}

	zones := make([]physics.ColliderHandle, 0, sensors)
	for i := 0; i < sensors; i++ {
		zone := scene.RegisterGameObject(engine.NewBuilder().
			Position(mgl32.Vec2{randRange(-halfW, halfW), randRange(-halfH, halfH)}).
			RigidBody(physics.BodyDesc{Type: physics.Static}).
			Collider(physics.Rectangle(60, 60).WithSensor(true)))
		zones = append(zones, zone.Collider())
	}

	for i := 0; i < bodies; i++ {
		scene.RegisterGameObject(engine.NewBuilder().
			Position(mgl32.Vec2{randRange(-halfW+20, halfW-20), randRange(0, halfH*4)}).
			RigidBody(physics.BodyDesc{
				Type:           physics.Dynamic,
				LinearVelocity: mgl32.Vec2{randRange(-3, 3), 0},
			}).
			Collider(physics.Circle(4).WithRestitution(0.8)).
			Behavior(&zoneCounter{Zones: zones}))
	}
}

// zoneCounter bumps the scene's Hits counter each time its body enters a
// zone.
type zoneCounter struct {
	Zones []physics.ColliderHandle
}

func (z *zoneCounter) OnTick(obj *engine.EntityView, ctx *engine.Context) {
	for _, zone := range z.Zones {
		if _, entered := ctx.IsCollidingWithSensorOnce(zone, obj.Collider()); !entered {
			continue
		}
		hits, _ := ctx.Data("Hits")
		n, _ := strconv.Atoi(hits)
		if err := ctx.SetData("Hits", strconv.Itoa(n+1)); err != nil {
			ctx.Logger().Debug("hit dropped", zap.Error(err))
		}
	}
}

func (z *zoneCounter) Clone() engine.Behavior {
	return z
}

func randRange(lo, hi float32) float32 {
	return lo + rand.Float32()*(hi-lo)
}
