package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/warpcore/engine"
)

// PerformanceStats shows frame timings and engine counters.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) push(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var avg float32
	for _, ft := range ps.frameHistory {
		avg += ft
	}
	return avg / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(e *engine.Engine, stats *engine.Stats) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avgFrameTime := ps.AverageFrameTime()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	imgui.Text(fmt.Sprintf("Last Tick: %.3f ms", float64(stats.LastFrame.Microseconds())/1000.0))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Engine Counters") {
		imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
		imgui.Text(fmt.Sprintf("Physics Steps: %d", stats.PhysicsSteps))
		imgui.Text(fmt.Sprintf("Entities: %d", stats.Entities))
		imgui.Text(fmt.Sprintf("Bodies: %d | Colliders: %d", stats.Bodies, stats.Colliders))
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Intents Sent: %d", stats.IntentsSent))
		imgui.Text(fmt.Sprintf("Intents Applied: %d", stats.IntentsApplied))
		imgui.Text(fmt.Sprintf("Intents Deferred: %d", stats.IntentsDeferred))
		imgui.Text(fmt.Sprintf("Bus: %d queued, %d parked", e.Bus().Len(), e.Bus().Parked()))
		imgui.Text(fmt.Sprintf("Skipped Entities: %d", stats.SkippedEntities))
		imgui.TreePop()
	}

	imgui.End()
}
