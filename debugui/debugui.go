// Package debugui draws Dear ImGui debug panels for a running engine:
// frame and physics counters, per-behavior timings and an inspector for the
// active scene's entities and data map.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/warpcore/engine"
)

// Panel is one debug window.
type Panel interface {
	Render(e *engine.Engine, stats *engine.Stats)
}

// UI renders a set of panels. Call Render between the backend's BeginFrame
// and EndFrame.
type UI struct {
	engine *engine.Engine
	panels []Panel
	timer  *FrameTimer

	// Hidden skips every panel while true.
	Hidden bool
}

// New returns a UI with the default panels.
func New(e *engine.Engine) *UI {
	return &UI{
		engine: e,
		timer:  NewFrameTimer(),
		panels: []Panel{
			NewPerformanceStats(120),
			&BehaviorStats{},
			NewSceneInspector(100),
		},
	}
}

// Add appends a custom panel.
func (u *UI) Add(p Panel) {
	u.panels = append(u.panels, p)
}

func (u *UI) Render() {
	dt := u.timer.GetDeltaTime()
	if u.Hidden {
		return
	}

	stats := u.engine.Stats()
	for _, p := range u.panels {
		if ps, ok := p.(*PerformanceStats); ok {
			ps.push(dt)
		}
		p.Render(u.engine, stats)
	}
}

// WantsInput reports whether ImGui is consuming mouse or keyboard input this
// frame.
func WantsInput() (mouse, keyboard bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
