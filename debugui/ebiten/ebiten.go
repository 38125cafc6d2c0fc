// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/warpcore/debugui"
)

// Overlay draws a debugui.UI on top of a platform.Game. It satisfies
// platform.Overlay.
type Overlay struct {
	*ebitenbackend.EbitenBackend
	UI *debugui.UI
}

// NewOverlay creates the ImGui backend and its window. Call it before
// platform.Run.
func NewOverlay(ui *debugui.UI, title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{EbitenBackend: backend, UI: ui}
}

func (o *Overlay) BeginFrame() {
	o.EbitenBackend.BeginFrame()
}

// EndFrame renders the panels and closes the ImGui frame.
func (o *Overlay) EndFrame() {
	o.UI.Render()
	o.EbitenBackend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.EbitenBackend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.EbitenBackend.Layout(width, height)
}
