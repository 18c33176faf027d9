package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/killring/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.Mutex

	actions map[string]*ActionMetrics
	panics  uint64
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	NoOpCount     uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	LastStatus    handler.ResultStatus
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionMetrics)}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(actionName string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	am := m.actions[actionName]
	if am == nil {
		am = &ActionMetrics{Name: actionName}
		m.actions[actionName] = am
	}
	am.DispatchCount++
	am.TotalDuration += duration
	am.LastStatus = status

	switch status {
	case handler.StatusNoOp:
		am.NoOpCount++
	case handler.StatusError:
		am.ErrorCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(actionName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

// ActionStats returns a copy of the metrics for one action, or nil.
func (m *Metrics) ActionStats(actionName string) *ActionMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	am := m.actions[actionName]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalPanics     uint64
	// Actions is sorted by dispatch count, busiest first.
	Actions []ActionMetrics
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := MetricsSnapshot{TotalPanics: m.panics}
	for _, am := range m.actions {
		s.TotalDispatches += am.DispatchCount
		s.TotalErrors += am.ErrorCount
		s.Actions = append(s.Actions, *am)
	}
	sort.Slice(s.Actions, func(i, j int) bool {
		if s.Actions[i].DispatchCount != s.Actions[j].DispatchCount {
			return s.Actions[i].DispatchCount > s.Actions[j].DispatchCount
		}
		return s.Actions[i].Name < s.Actions[j].Name
	})
	return s
}

// AverageDuration returns the average duration of the action.
func (am ActionMetrics) AverageDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}
