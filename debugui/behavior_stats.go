package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/warpcore/engine"
)

// BehaviorStats is a sortable table of per-behavior timings.
type BehaviorStats struct{}

func (bs *BehaviorStats) Render(e *engine.Engine, stats *engine.Stats) {
	imgui.SetNextWindowSizeV(imgui.NewVec2(400, 300), imgui.CondOnce)
	if !imgui.BeginV("Behavior Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Behavior Types: %d", len(stats.Behaviors)))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("Behaviors", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Calls")
		imgui.TableSetupColumn("Avg (ms)")
		imgui.TableSetupColumn("Min (ms)")
		imgui.TableSetupColumn("Max (ms)")
		imgui.TableHeadersRow()

		behaviors := stats.Behaviors
		if sortSpecs := imgui.TableGetSortSpecs(); sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sortBehaviors(behaviors, int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionDescending)
		}

		for _, b := range behaviors {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(b.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", b.ExecutionCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", float64(b.AvgDuration.Microseconds())/1000.0))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", float64(b.MinDuration.Microseconds())/1000.0))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", float64(b.MaxDuration.Microseconds())/1000.0))
		}
		imgui.EndTable()
	}

	imgui.End()
}

// sortBehaviors orders rows by table column.
func sortBehaviors(behaviors []engine.BehaviorStats, column int, descending bool) {
	sort.SliceStable(behaviors, func(i, j int) bool {
		left := behaviors[i]
		right := behaviors[j]

		var less bool
		switch column {
		case 0:
			less = left.Name < right.Name
		case 1:
			less = left.ExecutionCount < right.ExecutionCount
		case 2:
			less = left.AvgDuration < right.AvgDuration
		case 3:
			less = left.MinDuration < right.MinDuration
		case 4:
			less = left.MaxDuration < right.MaxDuration
		}

		if descending {
			return !less
		}
		return less
	})
}
