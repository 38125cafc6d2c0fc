// Package engine is the runtime core: scenes of entities with behaviors, a
// physics world per scene, and the single-threaded frame loop that ties them
// together.
//
// Each Tick runs, in order: fixed-step physics, the behavior pass, position
// sync from rigid bodies followed by drawing, the drain of the intent bus and
// submission of the frame to the renderer. Behaviors never touch other
// entities directly; they receive an EntityView of their own entity and a
// Context that can query the world and send intents, which are applied when
// the bus drains.
package engine

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/audio"
	"github.com/plus3/warpcore/config"
	"github.com/plus3/warpcore/input"
	"github.com/plus3/warpcore/physics"
	"github.com/plus3/warpcore/render"
	"github.com/plus3/warpcore/ui"
	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

func WithAudio(p audio.Player) Option {
	return func(e *Engine) {
		e.audio = p
	}
}

func WithUIParser(p ui.Parser) Option {
	return func(e *Engine) {
		e.parser = p
	}
}

// Engine owns the scene registry, the active scene, input and collision
// trackers and the intent bus.
type Engine struct {
	cfg      config.Config
	log      *zap.Logger
	renderer Renderer
	audio    audio.Player
	parser   ui.Parser

	scenes  map[string]*Scene
	nextTag uint16
	active  *Scene

	input   *input.Tracker
	locks   *collisionLocks
	bus     *Bus
	stepper *physics.Stepper
	buffer  *render.DrawBuffer
	stats   *statsRecorder

	width, height int
}

// New creates an engine. A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}

	e := &Engine{
		cfg:     *cfg,
		log:     zap.NewNop(),
		audio:   audio.Discard,
		parser:  ui.YAMLParser{},
		scenes:  make(map[string]*Scene),
		input:   input.NewTracker(),
		locks:   newCollisionLocks(),
		bus:     NewBus(cfg.Events.Capacity),
		stepper: physics.NewStepper(cfg.Physics.TickRate, cfg.Physics.MaxCatchUpSteps),
		buffer:  render.NewDrawBuffer(256),
		stats:   newStatsRecorder(),
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}

	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("engine")

	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

func (e *Engine) physicsSettings() physics.Settings {
	p := e.cfg.Physics
	return physics.Settings{
		Gravity:       mgl32.Vec2{p.GravityX, p.GravityY},
		PixelsPerUnit: p.PixelsPerUnit,
		Iterations:    p.Iterations,
	}
}

// RegisterScene creates an empty scene template under name, replacing any
// previous registration.
func (e *Engine) RegisterScene(name string) *Scene {
	e.nextTag++
	scene := newScene(name, e.nextTag, e.physicsSettings(), e.parser)
	e.scenes[name] = scene
	return scene
}

// Scene returns the registered template for name.
func (e *Engine) Scene(name string) (*Scene, bool) {
	s, ok := e.scenes[name]
	return s, ok
}

// ActiveScene returns the running instance, or nil before the first switch.
func (e *Engine) ActiveScene() *Scene {
	return e.active
}

// Input exposes the tracker the platform feeds.
func (e *Engine) Input() *input.Tracker {
	return e.input
}

// Bus exposes the intent bus.
func (e *Engine) Bus() *Bus {
	return e.bus
}

// SetCurrentScene unloads the active scene, instantiates name and loads it.
// OnUnload runs for every outgoing entity before any OnLoad of the incoming
// scene.
func (e *Engine) SetCurrentScene(name string) error {
	tmpl, ok := e.scenes[name]
	if !ok {
		return &MissingSceneError{Name: name}
	}

	if old := e.active; old != nil {
		for _, entity := range old.entities {
			e.dispatch(old, entity, 0, func(b Behavior, view *EntityView, ctx *Context) {
				if u, ok := b.(Unloader); ok {
					u.OnUnload(view, ctx)
				}
			})
		}
	}

	scene := tmpl.instantiate()
	e.active = scene
	e.locks.reset()
	e.stepper.Reset()

	for _, entity := range scene.entities {
		e.dispatch(scene, entity, 0, func(b Behavior, view *EntityView, ctx *Context) {
			if l, ok := b.(Loader); ok {
				l.OnLoad(view, ctx)
			}
		})
	}

	e.log.Info("scene activated", zap.String("scene", name), zap.Int("entities", scene.Len()))
	return nil
}

// Tick runs one frame of dt wall time.
func (e *Engine) Tick(dt time.Duration) {
	start := time.Now()
	e.buffer.Reset()

	if scene := e.active; scene != nil {
		steps := e.stepper.Advance(dt, scene.world.Step)
		scene.world.RefreshQueries()
		e.stats.physicsSteps += uint64(steps)

		seconds := dt.Seconds()
		for _, entity := range scene.entities {
			e.dispatch(scene, entity, seconds, func(b Behavior, view *EntityView, ctx *Context) {
				b.OnTick(view, ctx)
			})
		}

		e.syncPositions(scene)

		for _, entity := range scene.entities {
			if entity.graphics != nil {
				entity.graphics.Draw(e.buffer, entity.position)
			}
		}
	}

	e.drain()
	e.submit()
	e.input.EndFrame()

	e.stats.frames++
	e.stats.lastFrame = time.Since(start)
}

// dispatch calls fn for each behavior of entity with fresh views. A panic
// carrying ErrMissingHandle is fatal in debug mode; otherwise it is logged
// and the entity's remaining behaviors are skipped.
func (e *Engine) dispatch(scene *Scene, entity *Entity, dt float64, fn func(b Behavior, view *EntityView, ctx *Context)) {
	defer e.recoverStaleHandle(scene, entity)

	for _, b := range entity.behaviors {
		view := &EntityView{entity: entity}
		ctx := e.newContext(scene, dt)

		start := time.Now()
		fn(b, view, ctx)
		e.stats.record(behaviorName(b), time.Since(start))
	}
}

func (e *Engine) recoverStaleHandle(scene *Scene, entity *Entity) {
	r := recover()
	if r == nil {
		return
	}

	err, ok := r.(error)
	if !ok || !errors.Is(err, ErrMissingHandle) || e.cfg.Debug {
		panic(r)
	}

	fields := []zap.Field{zap.String("scene", scene.name), zap.Error(err)}
	if entity != nil {
		fields = append(fields, zap.Uint64("entity", uint64(entity.id)))
	}
	e.log.Error("stale handle in behavior, skipping", fields...)
	e.stats.skippedEntities++
}

func (e *Engine) syncPositions(scene *Scene) {
	for _, entity := range scene.entities {
		if !entity.body.IsValid() {
			continue
		}
		body, err := scene.world.Body(entity.body)
		if err != nil {
			continue
		}
		entity.position = scene.world.ToScreen(body.Translation())
	}
}

func (e *Engine) drain() {
	pinned := e.active
	applied := e.bus.Drain(func(in Intent) {
		target := e.active
		if e.cfg.Events.SnapshotDrainScene {
			target = pinned
		}
		e.apply(target, in)
	})
	e.stats.intentsApplied += uint64(applied)

	if parked := e.bus.Parked(); parked > 0 {
		e.log.Warn("event bus full, intents deferred to next frame", zap.Int("parked", parked))
	}
}

func (e *Engine) apply(scene *Scene, in Intent) {
	if sw, ok := in.(SwitchScene); ok {
		if err := e.SetCurrentScene(sw.Name); err != nil {
			e.log.Error("scene switch failed", zap.Error(err))
		}
		return
	}

	if p, ok := in.(PlaySound); ok {
		if err := e.audio.Play(p.Source); err != nil {
			e.log.Warn("play sound failed", zap.String("path", p.Source.Path), zap.Error(err))
		}
		return
	}

	if scene == nil {
		e.log.Warn("intent dropped, no active scene", zap.String("intent", intentName(in)))
		return
	}

	switch v := in.(type) {
	case SetData:
		if _, ok := scene.data[v.Key]; !ok {
			e.log.Warn("set of unknown data key", zap.String("scene", scene.name), zap.String("key", v.Key))
		}
		scene.data[v.Key] = v.Value
	case InsertData:
		scene.data[v.Key] = v.Value
	case RemoveData:
		delete(scene.data, v.Key)
	case PullEntityByCollider:
		e.pull(scene, v)
	case BroadcastUserEvent:
		for _, entity := range scene.entities {
			e.dispatch(scene, entity, 0, func(b Behavior, view *EntityView, ctx *Context) {
				if h, ok := b.(ForeignEventHandler); ok {
					h.OnForeignEvent(view, ctx, v.Payload)
				}
			})
		}
	default:
		e.log.Warn("unknown intent", zap.String("intent", intentName(in)))
	}
}

func (e *Engine) pull(scene *Scene, in PullEntityByCollider) {
	entity, err := scene.EntityByCollider(in.Collider)
	if err != nil {
		e.log.Warn("pull by collider failed", zap.String("scene", scene.name), zap.Error(err))
		return
	}
	if in.Fn == nil {
		return
	}

	defer e.recoverStaleHandle(scene, entity)
	in.Fn(&EntityView{entity: entity}, e.newContext(scene, 0))
}

func (e *Engine) submit() {
	if e.renderer == nil {
		return
	}

	frame := Frame{
		Buffer:    e.buffer,
		Mouse:     e.input.Mouse(),
		Callbacks: e,
	}
	if scene := e.active; scene != nil {
		frame.Scene = scene.name
		frame.UI = scene.ui
		frame.Data = maps.Clone(scene.data)
	}
	e.renderer.Submit(frame)
}

// InvokeCallback runs a callback of the active scene with a fresh Context.
func (e *Engine) InvokeCallback(name string) error {
	scene := e.active
	if scene == nil {
		return fmt.Errorf("invoke %q: %w", name, ErrMissingScene)
	}

	cb, ok := scene.callbacks[name]
	if !ok {
		return fmt.Errorf("%w: %q in scene %q", ErrMissingCallback, name, scene.name)
	}

	defer e.recoverStaleHandle(scene, nil)
	cb(e.newContext(scene, 0))
	return nil
}

// Resize forwards a window size change to the renderer.
func (e *Engine) Resize(width, height int) {
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
}

// Size returns the last known window size.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// Close shuts the bus; later sends fail with ErrChannelClosed.
func (e *Engine) Close() {
	e.bus.Close()
	e.log.Info("engine closed")
}
