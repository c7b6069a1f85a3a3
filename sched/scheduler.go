// Package sched runs fixed-step simulations: an ordered list of systems executed once per tick,
// deferred commands flushed after each tick, a wall-clock accumulator and a queue of one-shot
// timers keyed to the simulation clock.
package sched

import (
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	SimTime         float64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	s.minDuration = min(s.minDuration, d)
	s.maxDuration = max(s.maxDuration, d)
}

func (s *systemStatsInternal) reset() {
	*s = systemStatsInternal{name: s.name, minDuration: time.Duration(1<<63 - 1)}
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands

	now  float64
	tick uint64
}

// NewScheduler creates a scheduler with no systems.
func NewScheduler() *Scheduler {
	return &Scheduler{
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// Register appends a system. Its stats are reported under the system's type name.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	stats := &systemStatsInternal{name: systemType.Name()}
	stats.reset()
	s.systemStats = append(s.systemStats, stats)
}

// Now returns the simulation clock: the sum of all deltas passed to Once.
func (s *Scheduler) Now() float64 { return s.now }

// Ticks returns how many times Once has run.
func (s *Scheduler) Ticks() uint64 { return s.tick }

// Once executes all registered systems once with the given delta time, then flushes the
// commands they deferred.
func (s *Scheduler) Once(dt float64) {
	s.now += dt
	s.tick++
	frame := newFrame(dt, s.now, s.tick, s.commands)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.systemStats[i].record(time.Since(start))
	}

	frame.Commands.Flush()
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		SimTime:     s.now,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

// ResetStats zeroes the per-system counters. The clock keeps running.
func (s *Scheduler) ResetStats() {
	for _, st := range s.systemStats {
		st.reset()
	}
}
