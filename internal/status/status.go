// Package status provides a thread-safe status tracker for the timer daemon.
// It is read by the heartbeat and shutdown logs and by the simulator footer.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/matrix-timer/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	Backend     string
	PollMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	ToneHz      int
}

// Snapshot is a point-in-time view of daemon state.
// It is a copy and stays valid after the lock is released.
type Snapshot struct {
	State     logic.TimerState
	Counts    logic.EventCounts
	ToneOn    bool
	Recent    []logic.Event // oldest first
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Clock returns the remaining time as MM:SS for the current mode.
func (s Snapshot) Clock() string {
	if s.State.Mode == logic.ModeSetting {
		return logic.FormatClock(s.State.Count * logic.QuantumSeconds)
	}
	return logic.FormatClock(s.State.Remaining)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu     sync.RWMutex
	snap   Snapshot
	recent *eventRing
	now    func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.TimerState{Mode: logic.ModeSplash},
			StartTime: startTime,
			Config:    cfg,
		},
		recent: newEventRing(DefaultHistory),
		now:    time.Now,
	}
}

// Update sets the timer state and event counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(state logic.TimerState, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetTone records whether the buzzer is sounding.
func (t *Tracker) SetTone(on bool) {
	t.mu.Lock()
	t.snap.ToneOn = on
	t.mu.Unlock()
}

// Record appends events to the recent-event history.
func (t *Tracker) Record(events ...logic.Event) {
	if len(events) == 0 {
		return
	}
	t.mu.Lock()
	for _, ev := range events {
		t.recent.push(ev)
	}
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.Recent = t.recent.items()
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
