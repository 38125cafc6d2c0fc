package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
	assert.Equal(t, 3*time.Millisecond, s.P99)
}

func TestStatsFinalizeEmpty(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:        time.Second,
		Bodies:          10,
		Sensors:         2,
		TickRate:        60,
		Capacity:        60,
		TotalUpdates:    42,
		PhysicsSteps:    60,
		IntentsSent:     5,
		IntentsApplied:  4,
		IntentsDeferred: 1,
		GCPauseMetrics:  true,
	}
	r.MemStatsStart.HeapAlloc = 1 << 20
	r.MemStatsEnd.HeapAlloc = 3 << 20

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Dynamic Bodies:** 10")
	assert.Contains(t, out, "**Physics Steps:** 60")
	assert.Contains(t, out, "Intents Deferred: 1")
	assert.Contains(t, out, "delta: 2.00")
	assert.Contains(t, out, "GC Pause Durations")
}
