package logic

import "fmt"

// Apply returns the state after a single button event, the tone command it
// causes, and the event type to report (nil if nothing observable changed).
func Apply(s TimerState, ev ButtonEvent) (TimerState, Tone, *EventType) {
	if !ev.Pressed {
		return s, ToneNone, nil
	}

	switch s.Mode {
	case ModeSetting:
		switch ev.Button {
		case ButtonIncrement:
			s.Count++
			s.Remaining = s.Count * QuantumSeconds
			return s, ToneNone, eventType(EventAdjusted)
		case ButtonDecrement:
			if s.Count > 0 {
				s.Count--
			}
			s.Remaining = s.Count * QuantumSeconds
			return s, ToneNone, eventType(EventAdjusted)
		case ButtonStart:
			s.Remaining = s.Count * QuantumSeconds
			s.Mode = ModeCounting
			return s, ToneNone, eventType(EventStarted)
		}

	case ModeCounting:
		if ev.Button == ButtonMode {
			return reset(s), ToneNone, eventType(EventReset)
		}

	case ModeExpired:
		if ev.Button == ButtonMode {
			tone := ToneNone
			if s.AlarmActive {
				tone = ToneStop
			}
			return reset(s), tone, eventType(EventReset)
		}
		if s.AlarmActive {
			s.AlarmActive = false
			return s, ToneStop, eventType(EventSilenced)
		}
	}

	return s, ToneNone, nil
}

// reset re-enters Setting. The alarm is re-armed even when it was never
// silenced during Counting.
func reset(s TimerState) TimerState {
	s.Mode = ModeSetting
	s.Count = 0
	s.Remaining = 0
	s.AlarmActive = true
	return s
}

// Countdown advances a Counting state by one second. Reaching zero enters
// Expired, arms the alarm and starts the tone exactly once.
func Countdown(s TimerState) (TimerState, Tone) {
	if s.Mode != ModeCounting {
		return s, ToneNone
	}
	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.Remaining > 0 {
		return s, ToneNone
	}
	s.Remaining = 0
	s.Mode = ModeExpired
	s.AlarmActive = true
	return s, ToneStart
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// SplashFrame is shown while the device powers up.
func SplashFrame() Frame {
	return Frame{Text: "TIMER", X: 1, Y: 0, Color: ColorWhite}
}

// Render derives the frame for a state. phase selects the half of the
// two-part expiry message (0 = "READY", 1 = "UP").
func Render(s TimerState, phase int) Frame {
	switch s.Mode {
	case ModeSplash:
		return SplashFrame()
	case ModeCounting:
		return Frame{Text: FormatClock(s.Remaining), X: 2, Y: 0, Color: ColorBlue}
	case ModeExpired:
		if phase%2 == 0 {
			return Frame{Text: "READY", X: 0, Y: 0, Color: ColorGreen}
		}
		return Frame{Text: "UP", X: 12, Y: 0, Color: ColorGreen}
	}
	return Frame{Text: FormatClock(s.Count * QuantumSeconds), X: 2, Y: 0, Color: ColorLightPink}
}

func eventType(t EventType) *EventType {
	return &t
}
