// Package logic contains the pure countdown-timer core: debouncing, the
// Setting/Counting/Expired state machine and render-frame derivation.
// This package has NO external dependencies (no GPIO, display, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"time"
)

// QuantumSeconds is the duration added by each Increment press.
const QuantumSeconds = 10

// Mode is the controller state.
type Mode string

const (
	ModeSplash   Mode = "SPLASH"
	ModeSetting  Mode = "SETTING"
	ModeCounting Mode = "COUNTING"
	ModeExpired  Mode = "EXPIRED"
)

// Button identifies one of the four front-panel buttons.
type Button int

const (
	ButtonIncrement Button = iota
	ButtonDecrement
	ButtonStart
	ButtonMode

	buttonCount
)

// Buttons lists every button in the order events are emitted and applied.
var Buttons = [buttonCount]Button{ButtonIncrement, ButtonDecrement, ButtonStart, ButtonMode}

func (b Button) String() string {
	switch b {
	case ButtonIncrement:
		return "INCREMENT"
	case ButtonDecrement:
		return "DECREMENT"
	case ButtonStart:
		return "START"
	case ButtonMode:
		return "MODE"
	}
	return fmt.Sprintf("BUTTON(%d)", int(b))
}

// ButtonEvent is a single debounced press.
type ButtonEvent struct {
	Button  Button
	Pressed bool
	Time    time.Time
}

// Input represents a single sample of logical button levels.
type Input struct {
	Increment bool // true = pressed (already inverted from raw GPIO)
	Decrement bool
	Start     bool
	Mode      bool
	Time      time.Time
}

func (in Input) pressed(b Button) bool {
	switch b {
	case ButtonIncrement:
		return in.Increment
	case ButtonDecrement:
		return in.Decrement
	case ButtonStart:
		return in.Start
	case ButtonMode:
		return in.Mode
	}
	return false
}

// TimerState is the complete timer state. It is an owned value: transition
// functions take one and return the next.
type TimerState struct {
	Mode        Mode
	Count       int // increment presses since (re-)entering Setting
	Remaining   int // whole seconds, never negative
	AlarmActive bool
}

// InitialState is the state entered after the splash screen.
func InitialState() TimerState {
	return TimerState{Mode: ModeSetting, AlarmActive: true}
}

// Color is a 24-bit RGB colour.
type Color struct {
	R, G, B uint8
}

var (
	ColorBlack     = Color{}
	ColorWhite     = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	ColorLightPink = Color{R: 0xFF, G: 0xB6, B: 0xC1}
	ColorBlue      = Color{B: 0xFF}
	ColorGreen     = Color{G: 0x80}
)

// Frame is one complete visible display update.
type Frame struct {
	Text  string
	X, Y  int
	Color Color
}

// Tone is the buzzer command emitted by a tick.
type Tone int

const (
	ToneNone Tone = iota
	ToneStart
	ToneStop
)

func (t Tone) String() string {
	switch t {
	case ToneStart:
		return "START"
	case ToneStop:
		return "STOP"
	}
	return "NONE"
}

// EventType represents an observable timer transition.
type EventType string

const (
	EventStarted  EventType = "STARTED"
	EventExpired  EventType = "EXPIRED"
	EventSilenced EventType = "SILENCED"
	EventReset    EventType = "RESET"
	EventAdjusted EventType = "ADJUSTED"
)

// Event represents a transition to be logged.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Mode      Mode
	Remaining int
	Count     int
}

// Output is everything one Process call asks the outside world to do.
type Output struct {
	Frame  Frame
	Tone   Tone
	Events []Event
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Started  int
	Expired  int
	Silenced int
	Reset    int
}

// HeartbeatData contains information for a heartbeat log line.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
	State     TimerState
}
