// Package platform runs an engine inside an ebiten window: it polls input
// into the engine's tracker, ticks the engine once per ebiten update, draws
// submitted frames and plays sounds.
package platform

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/warpcore/config"
	"github.com/plus3/warpcore/engine"
)

// Overlay is drawn on top of the game, typically a debug UI.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

type Option func(*Game)

// WithOverlay draws o above every frame.
func WithOverlay(o Overlay) Option {
	return func(g *Game) {
		g.overlay = o
	}
}

// WithQuitKey ends the game loop when k is pressed.
func WithQuitKey(k ebiten.Key) Option {
	return func(g *Game) {
		g.quitKey = &k
	}
}

// Game implements ebiten.Game for an engine.
type Game struct {
	engine   *engine.Engine
	renderer *Renderer
	poller   poller

	overlay Overlay
	quitKey *ebiten.Key
	clock   frameClock
}

// frameClock measures wall time between updates. The first update has no
// predecessor and uses the nominal tick length.
type frameClock struct {
	now  func() time.Time
	last time.Time
}

func (c *frameClock) delta(nominal time.Duration) time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return nominal
	}
	dt := now.Sub(c.last)
	c.last = now
	return dt
}

func NewGame(e *engine.Engine, r *Renderer, opts ...Option) *Game {
	g := &Game{engine: e, renderer: r, clock: frameClock{now: time.Now}}
	r.Resize(e.Size())
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Update() error {
	if g.engine.Bus().Closed() {
		return ebiten.Termination
	}
	if g.quitKey != nil && ebiten.IsKeyPressed(*g.quitKey) {
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.overlay.BeginFrame()
	}

	g.poller.poll(g.engine.Input())
	g.engine.Tick(g.clock.delta(time.Second / time.Duration(ebiten.TPS())))

	if g.overlay != nil {
		g.overlay.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.engine.Resize(outsideWidth, outsideHeight)
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// ConfigureWindow applies the window section of the configuration.
func ConfigureWindow(cfg config.WindowConfig) {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
}

// Run opens the window and blocks until the game ends. The engine is closed
// on return.
func Run(g *Game, cfg config.WindowConfig) error {
	ConfigureWindow(cfg)
	defer g.engine.Close()
	return ebiten.RunGame(g)
}
