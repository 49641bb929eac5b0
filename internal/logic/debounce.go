package logic

import "time"

// DefaultSettle is the mask applied to a button after a detected press.
const DefaultSettle = 200 * time.Millisecond

// buttonState tracks edge detection for a single button.
type buttonState struct {
	// Armed is set once the button has been seen released; a press only
	// fires while armed.
	Armed bool
	// MaskedUntil suppresses all sampling of this button until it passes.
	MaskedUntil time.Time
}

// Debouncer turns raw button levels into single-shot press events.
type Debouncer struct {
	settle  time.Duration
	buttons [buttonCount]buttonState
}

// NewDebouncer creates a debouncer with the given settle interval.
func NewDebouncer(settle time.Duration) *Debouncer {
	return &Debouncer{settle: settle}
}

// Poll samples the input and returns press events in button order.
// A button fires at most once per press-and-release cycle no matter how many
// times it is polled while held. Buttons held at startup do not fire until
// they have been released once.
func (d *Debouncer) Poll(in Input) []ButtonEvent {
	var events []ButtonEvent
	for _, b := range Buttons {
		st := &d.buttons[b]
		if in.Time.Before(st.MaskedUntil) {
			continue
		}
		if !in.pressed(b) {
			st.Armed = true
			continue
		}
		if !st.Armed {
			continue
		}
		st.Armed = false
		st.MaskedUntil = in.Time.Add(d.settle)
		events = append(events, ButtonEvent{Button: b, Pressed: true, Time: in.Time})
	}
	return events
}

// Masked reports whether b is inside its settle interval at now.
func (d *Debouncer) Masked(b Button, now time.Time) bool {
	return now.Before(d.buttons[b].MaskedUntil)
}
