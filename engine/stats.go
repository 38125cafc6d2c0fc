package engine

import "time"

// Stats summarizes engine execution.
type Stats struct {
	Frames          uint64
	PhysicsSteps    uint64
	IntentsSent     uint64
	IntentsApplied  uint64
	IntentsDeferred uint64
	SkippedEntities uint64
	Entities        int
	Bodies          int
	Colliders       int
	LastFrame       time.Duration
	Behaviors       []BehaviorStats
}

// BehaviorStats provides execution statistics for one behavior type.
type BehaviorStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type behaviorStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type statsRecorder struct {
	frames          uint64
	physicsSteps    uint64
	intentsApplied  uint64
	skippedEntities uint64
	lastFrame       time.Duration

	byName    map[string]*behaviorStatsInternal
	behaviors []*behaviorStatsInternal
}

func newStatsRecorder() *statsRecorder {
	return &statsRecorder{byName: make(map[string]*behaviorStatsInternal)}
}

func (s *statsRecorder) record(name string, duration time.Duration) {
	stats, ok := s.byName[name]
	if !ok {
		stats = &behaviorStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		}
		s.byName[name] = stats
		s.behaviors = append(s.behaviors, stats)
	}

	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Stats returns execution statistics. Behavior entries are in first-seen
// order.
func (e *Engine) Stats() *Stats {
	rec := e.stats
	stats := &Stats{
		Frames:          rec.frames,
		PhysicsSteps:    rec.physicsSteps,
		IntentsSent:     e.bus.sent,
		IntentsApplied:  rec.intentsApplied,
		IntentsDeferred: e.bus.deferred,
		SkippedEntities: rec.skippedEntities,
		LastFrame:       rec.lastFrame,
		Behaviors:       make([]BehaviorStats, len(rec.behaviors)),
	}

	if scene := e.active; scene != nil {
		stats.Entities = scene.Len()
		stats.Bodies = scene.world.BodyCount()
		stats.Colliders = scene.world.ColliderCount()
	}

	for i, internal := range rec.behaviors {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Behaviors[i] = BehaviorStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
