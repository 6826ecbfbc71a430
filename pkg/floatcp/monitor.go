package floatcp

// monitor.go: monitoring and statistics for boundary propagation.

import (
	"fmt"
	"sync"
	"time"
)

// PropagationStats holds statistics about boundary propagation activity.
type PropagationStats struct {
	PropagationCalls int           // Number of Propagate invocations
	BoundsApplied    int           // Number of individual tighten operations
	Contradictions   int           // Failures surfaced to the host
	AdjustmentNotes  int           // Bounds that moved during adjustment
	PropagationTime  time.Duration // Time spent inside Propagate
}

// PropagationMonitor collects statistics for a boundary propagator.
// Install one with BoundaryPropagator.SetMonitor; propagation runs fine
// without it.
type PropagationMonitor struct {
	mu        sync.Mutex
	stats     PropagationStats
	propStart time.Time
}

// NewPropagationMonitor creates an empty monitor.
func NewPropagationMonitor() *PropagationMonitor {
	return &PropagationMonitor{}
}

// GetStats returns a copy of the current statistics.
func (m *PropagationMonitor) GetStats() PropagationStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// StartPropagation marks the beginning of a Propagate call.
func (m *PropagationMonitor) StartPropagation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.propStart = time.Now()
}

// EndPropagation marks the end of a Propagate call.
func (m *PropagationMonitor) EndPropagation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.propStart.IsZero() {
		m.stats.PropagationTime += time.Since(m.propStart)
		m.stats.PropagationCalls++
		m.propStart = time.Time{}
	}
}

// RecordBoundApplied records one successful tighten operation.
func (m *PropagationMonitor) RecordBoundApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.BoundsApplied++
}

// RecordContradiction records a propagation failure.
func (m *PropagationMonitor) RecordContradiction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Contradictions++
}

// RecordAdjustmentNote records a bound whose applied value differs from the
// analyzed original.
func (m *PropagationMonitor) RecordAdjustmentNote() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.AdjustmentNotes++
}

// String returns a formatted summary of the statistics.
func (s PropagationStats) String() string {
	return fmt.Sprintf(
		"Boundary Propagation Statistics:\n"+
			"  Calls: %d, bounds applied: %d, contradictions: %d\n"+
			"  Adjusted bounds: %d\n"+
			"  Time: %v",
		s.PropagationCalls, s.BoundsApplied, s.Contradictions,
		s.AdjustmentNotes,
		s.PropagationTime,
	)
}
