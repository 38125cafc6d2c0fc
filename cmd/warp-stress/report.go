package main

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"slices"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Bodies    int
	Sensors   int
	TickRate  int
	Capacity  int
	FixedStep bool

	// Results
	TotalUpdates    int64
	TotalTime       time.Duration
	UpdateTime      Stats
	PhysicsSteps    uint64
	IntentsSent     uint64
	IntentsApplied  uint64
	IntentsDeferred uint64
	SkippedEntities uint64
	SceneSwitches   int
	GCPauseMetrics  bool
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
	s.P99 = percentile(s.Samples, 0.99)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Engine Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Dynamic Bodies:** {{.Bodies}}
- **Sensor Zones:** {{.Sensors}}
- **Tick Rate:** {{.TickRate}} Hz{{if .FixedStep}} (fixed frame delta){{end}}
- **Bus Capacity:** {{.Capacity}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Physics Steps:** {{.PhysicsSteps}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Event Bus
- Intents Sent:     {{.IntentsSent}}
- Intents Applied:  {{.IntentsApplied}}
- Intents Deferred: {{.IntentsDeferred}}
- Scene Switches:   {{.SceneSwitches}}
- Skipped Entities: {{.SkippedEntities}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

// percentile returns the nearest-rank percentile of samples without
// reordering them.
func percentile(samples []time.Duration, p float64) time.Duration {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
