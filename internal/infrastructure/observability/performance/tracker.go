// Package performance provides lightweight operation tracking for request
// handlers and services.
package performance

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Marker tracks a single operation from start to completion.
type Marker struct {
	ID        string        `json:"id"`
	Operation string        `json:"operation"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	completed bool
	tracker   *Tracker
}

// Complete finalizes the marker and records its duration.
func (m *Marker) Complete() {
	if m.completed {
		return
	}
	m.EndTime = time.Now().UTC()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.completed = true
	if m.tracker != nil {
		m.tracker.record(m)
	}
}

// SetSuccess marks the tracked operation's outcome.
func (m *Marker) SetSuccess(success bool) {
	m.Success = success
}

// Tracker aggregates operation markers with a bounded retention window.
type Tracker struct {
	mu         sync.RWMutex
	markers    []*Marker
	maxMarkers int
	started    time.Time
}

// NewTracker creates a performance tracker.
func NewTracker() *Tracker {
	return &Tracker{
		maxMarkers: 10000,
		started:    time.Now().UTC(),
	}
}

// StartOperation begins tracking a named operation.
func (t *Tracker) StartOperation(operation string) *Marker {
	return &Marker{
		ID:        ulid.Make().String(),
		Operation: operation,
		StartTime: time.Now().UTC(),
		tracker:   t,
	}
}

func (t *Tracker) record(m *Marker) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.markers = append(t.markers, m)
	if len(t.markers) > t.maxMarkers {
		t.markers = t.markers[len(t.markers)-t.maxMarkers:]
	}
}

// Snapshot returns aggregate stats per operation name.
type OperationStats struct {
	Count         int           `json:"count"`
	Failures      int           `json:"failures"`
	TotalDuration time.Duration `json:"totalDuration"`
	MaxDuration   time.Duration `json:"maxDuration"`
}

// Snapshot aggregates completed markers by operation name.
func (t *Tracker) Snapshot() map[string]OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := make(map[string]OperationStats)
	for _, m := range t.markers {
		s := stats[m.Operation]
		s.Count++
		if !m.Success {
			s.Failures++
		}
		s.TotalDuration += m.Duration
		if m.Duration > s.MaxDuration {
			s.MaxDuration = m.Duration
		}
		stats[m.Operation] = s
	}
	return stats
}

// Uptime reports how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
