package ecs

import "time"

// SceneStats is a snapshot of a scene's structure.
type SceneStats struct {
	Ticks             uint64
	LiveEntities      int
	FreeHandles       int
	HandleCounter     uint32
	PendingEntities   int
	PendingComponents int
	ComponentCount    int
	Types             []TypeStats
	Phases            []PhaseStats
}

// TypeStats counts the stored instances of one identity.
type TypeStats struct {
	ID    TypeID
	Name  string
	Count int
}

// PhaseStats provides timing statistics for one phase. PhaseEnd covers the destruction
// flush at the start of a tick, and is only recorded when something was flushed.
type PhaseStats struct {
	Phase          Phase
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseTimer struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (t *phaseTimer) record(d time.Duration) {
	if t.executionCount == 0 || d < t.minDuration {
		t.minDuration = d
	}
	if d > t.maxDuration {
		t.maxDuration = d
	}
	t.executionCount++
	t.lastDuration = d
	t.totalDuration += d
}

// CollectStats returns a snapshot of entity, component and phase counters.
func (s *Scene) CollectStats() SceneStats {
	stats := SceneStats{
		Ticks:             s.ticks,
		LiveEntities:      s.live,
		FreeHandles:       len(s.free),
		HandleCounter:     s.counter,
		PendingEntities:   len(s.pending.entities),
		PendingComponents: len(s.pending.components),
	}

	for id, list := range s.components {
		if len(list) == 0 {
			continue
		}
		stats.ComponentCount += len(list)
		stats.Types = append(stats.Types, TypeStats{
			ID:    TypeID(id),
			Name:  s.registry.Info(TypeID(id)).Name,
			Count: len(list),
		})
	}

	stats.Phases = s.PhaseStats()
	return stats
}

// PhaseStats returns timing statistics for the phases run by Tick.
func (s *Scene) PhaseStats() []PhaseStats {
	out := make([]PhaseStats, 0, numPhases-1)
	for p := PhaseTick; p <= PhaseEnd; p++ {
		t := s.timings[p]
		var avg time.Duration
		if t.executionCount > 0 {
			avg = t.totalDuration / time.Duration(t.executionCount)
		}
		out = append(out, PhaseStats{
			Phase:          p,
			ExecutionCount: t.executionCount,
			MinDuration:    t.minDuration,
			MaxDuration:    t.maxDuration,
			AvgDuration:    avg,
			LastDuration:   t.lastDuration,
			TotalDuration:  t.totalDuration,
		})
	}
	return out
}
