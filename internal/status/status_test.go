package status

import (
	"sync"
	"testing"
	"time"

	"github.com/sweeney/matrix-timer/internal/logic"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{Backend: "terminal", PollMs: 10, DebounceMs: 200, ToneHz: 1000}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config != cfg {
		t.Errorf("Config: got %+v, want %+v", snap.Config, cfg)
	}
	if snap.State.Mode != logic.ModeSplash {
		t.Errorf("expected SPLASH initially, got %s", snap.State.Mode)
	}
	if snap.ToneOn {
		t.Error("expected ToneOn=false initially")
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	state := logic.TimerState{Mode: logic.ModeCounting, Count: 3, Remaining: 25, AlarmActive: true}
	tr.Update(state, logic.EventCounts{Started: 2, Expired: 1})

	snap := tr.Snapshot()
	if snap.State != state {
		t.Errorf("State: got %+v, want %+v", snap.State, state)
	}
	if snap.Counts.Started != 2 || snap.Counts.Expired != 1 {
		t.Errorf("Counts: got %+v", snap.Counts)
	}
	if snap.Clock() != "00:25" {
		t.Errorf("Clock: got %q, want 00:25", snap.Clock())
	}
}

func TestSnapshotClockInSetting(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.Update(logic.TimerState{Mode: logic.ModeSetting, Count: 7, Remaining: 70}, logic.EventCounts{})

	if got := tr.Snapshot().Clock(); got != "01:10" {
		t.Errorf("Clock: got %q, want 01:10", got)
	}
}

func TestSetTone(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetTone(true)
	if !tr.Snapshot().ToneOn {
		t.Error("expected ToneOn=true")
	}

	tr.SetTone(false)
	if tr.Snapshot().ToneOn {
		t.Error("expected ToneOn=false")
	}
}

func TestRecordHistory(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	if tr.Snapshot().Recent != nil {
		t.Fatal("expected no recent events initially")
	}

	tr.Record()
	for i := 0; i < DefaultHistory+2; i++ {
		tr.Record(logic.Event{Type: logic.EventAdjusted, Count: i})
	}

	recent := tr.Snapshot().Recent
	if len(recent) != DefaultHistory {
		t.Fatalf("expected %d recent events, got %d", DefaultHistory, len(recent))
	}
	if recent[0].Count != 2 {
		t.Errorf("oldest kept event: got count %d, want 2", recent[0].Count)
	}
	if last := recent[len(recent)-1]; last.Count != DefaultHistory+1 {
		t.Errorf("newest event: got count %d, want %d", last.Count, DefaultHistory+1)
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{})
	tr.now = func() time.Time { return start.Add(90 * time.Second) }

	snap := tr.Snapshot()
	if snap.Uptime() != 90*time.Second {
		t.Errorf("Uptime: got %v, want 90s", snap.Uptime())
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			tr.Update(logic.TimerState{Mode: logic.ModeCounting, Remaining: n}, logic.EventCounts{Started: n})
			tr.SetTone(n%2 == 0)
			tr.Record(logic.Event{Type: logic.EventStarted})
		}(i)
		go func() {
			defer wg.Done()
			_ = tr.Snapshot()
		}()
	}
	wg.Wait()
}
