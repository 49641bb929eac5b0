package sim

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/matrix-timer/internal/display"
	"github.com/sweeney/matrix-timer/internal/gpio"
	"github.com/sweeney/matrix-timer/internal/logic"
	"github.com/sweeney/matrix-timer/internal/status"
)

type fixture struct {
	term   *Terminal
	screen tcell.SimulationScreen
	quit   chan os.Signal
	now    time.Time
}

func newFixture(t *testing.T, tracker *status.Tracker) *fixture {
	t.Helper()

	f := &fixture{
		screen: tcell.NewSimulationScreen("UTF-8"),
		quit:   make(chan os.Signal, 1),
		now:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	term, err := newTerminal(f.screen, f.quit, tracker, func() time.Time { return f.now })
	require.NoError(t, err)
	f.screen.SetSize(100, 20)
	t.Cleanup(func() { _ = term.Close() })
	f.term = term
	return f
}

func (f *fixture) row(y int) string {
	cells, width, _ := f.screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		runes := cells[y*width+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

func TestKeysBecomeHeldButtons(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		key  tcell.Key
		r    rune
		want gpio.Sample
	}{
		{tcell.KeyRune, '+', gpio.Sample{Increment: true}},
		{tcell.KeyUp, 0, gpio.Sample{Increment: true}},
		{tcell.KeyRune, '-', gpio.Sample{Decrement: true}},
		{tcell.KeyDown, 0, gpio.Sample{Decrement: true}},
		{tcell.KeyEnter, 0, gpio.Sample{Start: true}},
		{tcell.KeyRune, 's', gpio.Sample{Start: true}},
		{tcell.KeyTab, 0, gpio.Sample{Mode: true}},
		{tcell.KeyRune, 'm', gpio.Sample{Mode: true}},
	}
	for _, tt := range tests {
		f.screen.InjectKey(tt.key, tt.r, tcell.ModNone)
		got, err := f.term.Read()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "key %v rune %q", tt.key, tt.r)

		// Without repeats the key is released after the timeout.
		f.now = f.now.Add(keyTimeout)
		got, err = f.term.Read()
		require.NoError(t, err)
		assert.Equal(t, gpio.Sample{}, got)
	}
}

func TestQuitKeySendsInterrupt(t *testing.T) {
	f := newFixture(t, nil)

	f.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	_, err := f.term.Read()
	require.NoError(t, err)

	select {
	case sig := <-f.quit:
		assert.Equal(t, os.Interrupt, sig)
	default:
		t.Fatal("expected interrupt on quit channel")
	}
}

func TestPresentDrawsMatrixAndFooter(t *testing.T) {
	tracker := status.NewTracker(time.Now(), status.Config{})
	tracker.Update(logic.TimerState{Mode: logic.ModeCounting, Remaining: 65}, logic.EventCounts{Started: 1})
	tracker.Record(logic.Event{Type: logic.EventStarted, Timestamp: time.Date(2026, 1, 1, 12, 0, 5, 0, time.UTC)})
	f := newFixture(t, tracker)

	p := display.NewPixels(4, 2)
	p.Data[1] = logic.ColorBlue // (1,0)
	require.NoError(t, f.term.Present(p))

	assert.Equal(t, '│', []rune(f.row(1))[0])
	assert.Equal(t, "··██····", string([]rune(f.row(1))[1:9]))
	assert.Contains(t, f.row(4), "mode=COUNTING")
	assert.Contains(t, f.row(4), "clock=01:05")
	assert.Contains(t, f.row(5), "last=STARTED at 12:00:05")
	assert.Equal(t, p, f.term.LastFrame())
}

func TestToneIndicator(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.term.StartTone(1000))
	assert.True(t, f.term.ToneOn())
	require.NoError(t, f.term.Present(display.NewPixels(2, 1)))
	assert.Contains(t, f.row(3), "ALARM 1000 Hz")

	require.NoError(t, f.term.StopTone())
	assert.False(t, f.term.ToneOn())
	require.NoError(t, f.term.Present(display.NewPixels(2, 1)))
	assert.NotContains(t, f.row(3), "ALARM")
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.term.Close())
	require.NoError(t, f.term.Close())
}
