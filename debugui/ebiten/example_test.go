package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/warpcore/config"
	"github.com/plus3/warpcore/debugui"
	debugui_ebiten "github.com/plus3/warpcore/debugui/ebiten"
	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/platform"
)

type watch struct{}

func (w *watch) Render(e *engine.Engine, stats *engine.Stats) {
	imgui.Begin("Watch")
	imgui.Text(e.ActiveScene().Name())
	imgui.End()
}

func Example() {
	cfg := config.Default()

	renderer := platform.NewRenderer(nil)
	e := engine.New(cfg, engine.WithRenderer(renderer))
	e.RegisterScene("main")
	if err := e.SetCurrentScene("main"); err != nil {
		panic(err)
	}

	// Panels render between the backend's BeginFrame and EndFrame.
	ui := debugui.New(e)
	ui.Add(&watch{})
	overlay := debugui_ebiten.NewOverlay(ui, cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)

	game := platform.NewGame(e, renderer, platform.WithOverlay(overlay))
	if err := platform.Run(game, cfg.Window); err != nil {
		panic(err)
	}
}
