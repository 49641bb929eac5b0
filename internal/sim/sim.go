// Package sim runs the appliance in a terminal. A single tcell screen plays
// the LED matrix, the four buttons (keyboard) and the buzzer (bell plus an
// on-screen indicator), so the daemon can be exercised without hardware.
package sim

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sweeney/matrix-timer/internal/display"
	"github.com/sweeney/matrix-timer/internal/gpio"
	"github.com/sweeney/matrix-timer/internal/logic"
	"github.com/sweeney/matrix-timer/internal/status"
)

// keyTimeout synthesizes a release: terminals report key presses and
// auto-repeats but never releases.
const keyTimeout = 100 * time.Millisecond

const helpText = "+/up: increment  -/down: decrement  enter/s: start  tab/m: mode  q: quit"

var (
	styleFrame = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOff   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(40, 40, 40))
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleAlarm = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Terminal is a display.Sink, gpio.Reader and gpio.Buzzer on one screen.
type Terminal struct {
	screen  tcell.Screen
	tracker *status.Tracker
	quit    chan<- os.Signal
	now     func() time.Time

	mu       sync.Mutex
	lastKey  map[logic.Button]time.Time
	toneOn   bool
	toneHz   int
	last     display.Pixels
	once     sync.Once
}

var (
	_ display.Sink = (*Terminal)(nil)
	_ gpio.Reader  = (*Terminal)(nil)
	_ gpio.Buzzer  = (*Terminal)(nil)
)

// New opens the terminal. Pressing q or Esc sends os.Interrupt on quit.
// tracker may be nil.
func New(quit chan<- os.Signal, tracker *status.Tracker) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	return newTerminal(screen, quit, tracker, time.Now)
}

func newTerminal(screen tcell.Screen, quit chan<- os.Signal, tracker *status.Tracker, now func() time.Time) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.HideCursor()
	screen.Clear()

	return &Terminal{
		screen:  screen,
		tracker: tracker,
		quit:    quit,
		now:     now,
		lastKey: make(map[logic.Button]time.Time),
	}, nil
}

// Read drains pending key events and reports which buttons count as held.
func (t *Terminal) Read() (gpio.Sample, error) {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.handleKey(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	held := func(b logic.Button) bool {
		at, ok := t.lastKey[b]
		return ok && now.Sub(at) < keyTimeout
	}
	return gpio.Sample{
		Increment: held(logic.ButtonIncrement),
		Decrement: held(logic.ButtonDecrement),
		Start:     held(logic.ButtonStart),
		Mode:      held(logic.ButtonMode),
	}, nil
}

func (t *Terminal) handleKey(ev *tcell.EventKey, now time.Time) {
	b, ok := buttonForKey(ev)
	if ok {
		t.mu.Lock()
		t.lastKey[b] = now
		t.mu.Unlock()
		return
	}

	if isQuitKey(ev) && t.quit != nil {
		select {
		case t.quit <- os.Interrupt:
		default:
		}
	}
}

func buttonForKey(ev *tcell.EventKey) (logic.Button, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return logic.ButtonIncrement, true
	case tcell.KeyDown:
		return logic.ButtonDecrement, true
	case tcell.KeyEnter:
		return logic.ButtonStart, true
	case tcell.KeyTab:
		return logic.ButtonMode, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case '+', '=':
			return logic.ButtonIncrement, true
		case '-', '_':
			return logic.ButtonDecrement, true
		case 's', 'S', ' ':
			return logic.ButtonStart, true
		case 'm', 'M':
			return logic.ButtonMode, true
		}
	}
	return 0, false
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Present draws the matrix, each LED two cells wide, plus a status footer.
func (t *Terminal) Present(p display.Pixels) error {
	t.mu.Lock()
	t.last = p
	toneOn, hz := t.toneOn, t.toneHz
	t.mu.Unlock()

	t.screen.Clear()

	width := p.Width*2 + 2
	drawText(t.screen, 0, 0, styleFrame, "┌"+strings.Repeat("─", width-2)+"┐")
	for y := 0; y < p.Height; y++ {
		t.screen.SetContent(0, y+1, '│', nil, styleFrame)
		for x := 0; x < p.Width; x++ {
			r, style := '·', styleOff
			if p.Lit(x, y) {
				c := p.At(x, y)
				r, style = '█', tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			}
			t.screen.SetContent(1+x*2, y+1, r, nil, style)
			t.screen.SetContent(2+x*2, y+1, r, nil, style)
		}
		t.screen.SetContent(width-1, y+1, '│', nil, styleFrame)
	}
	drawText(t.screen, 0, p.Height+1, styleFrame, "└"+strings.Repeat("─", width-2)+"┘")

	row := p.Height + 2
	if t.tracker != nil {
		snap := t.tracker.Snapshot()
		line := fmt.Sprintf("mode=%s clock=%s started=%d expired=%d uptime=%s",
			snap.State.Mode, snap.Clock(), snap.Counts.Started, snap.Counts.Expired,
			snap.Uptime().Truncate(time.Second))
		drawText(t.screen, 0, row, styleText, line)
		row++
		if n := len(snap.Recent); n > 0 {
			ev := snap.Recent[n-1]
			drawText(t.screen, 0, row, styleText, fmt.Sprintf("last=%s at %s", ev.Type, ev.Timestamp.Format("15:04:05")))
			row++
		}
	}
	if toneOn {
		drawText(t.screen, 0, row, styleAlarm, fmt.Sprintf("♪ ALARM %d Hz ♪", hz))
	}
	drawText(t.screen, 0, row+1, styleFrame, helpText)

	t.screen.Show()
	return nil
}

// StartTone rings the terminal bell and shows the alarm indicator.
func (t *Terminal) StartTone(hz int) error {
	t.mu.Lock()
	t.toneOn, t.toneHz = true, hz
	t.mu.Unlock()
	return t.screen.Beep()
}

// StopTone clears the alarm indicator.
func (t *Terminal) StopTone() error {
	t.mu.Lock()
	t.toneOn = false
	t.mu.Unlock()
	return nil
}

// ToneOn reports whether the simulated buzzer is sounding.
func (t *Terminal) ToneOn() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.toneOn
}

// LastFrame returns the most recently presented image.
func (t *Terminal) LastFrame() display.Pixels {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Close restores the terminal. The Terminal is closed once for each role
// it plays, so only the first call has an effect.
func (t *Terminal) Close() error {
	t.once.Do(t.screen.Fini)
	return nil
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
