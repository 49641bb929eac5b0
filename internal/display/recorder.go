package display

import (
	"fmt"

	"github.com/sweeney/matrix-timer/internal/logic"
)

// Recorder is a Display test double that records every call and every
// frame made visible by Show.
type Recorder struct {
	// Calls lists method names in call order, e.g. "Clear", "SetCursor(2,0)".
	Calls []string

	// Frames contains the frame visible after each Show.
	Frames []logic.Frame

	// ShowError, if set, will be returned by Show.
	ShowError error

	pending logic.Frame
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.Calls = append(r.Calls, "Clear")
	r.pending = logic.Frame{}
}

func (r *Recorder) SetCursor(x, y int) {
	r.Calls = append(r.Calls, fmt.Sprintf("SetCursor(%d,%d)", x, y))
	r.pending.X, r.pending.Y = x, y
}

func (r *Recorder) SetTextColor(c logic.Color) {
	r.Calls = append(r.Calls, fmt.Sprintf("SetTextColor(#%02X%02X%02X)", c.R, c.G, c.B))
	r.pending.Color = c
}

func (r *Recorder) Print(text string) {
	r.Calls = append(r.Calls, fmt.Sprintf("Print(%q)", text))
	r.pending.Text += text
}

func (r *Recorder) Show() error {
	r.Calls = append(r.Calls, "Show")
	if r.ShowError != nil {
		return r.ShowError
	}
	r.Frames = append(r.Frames, r.pending)
	return nil
}

// Last returns the most recently shown frame.
func (r *Recorder) Last() (logic.Frame, bool) {
	if len(r.Frames) == 0 {
		return logic.Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Texts returns the text of every shown frame.
func (r *Recorder) Texts() []string {
	texts := make([]string, len(r.Frames))
	for i, f := range r.Frames {
		texts[i] = f.Text
	}
	return texts
}

// Reset clears recorded calls and frames.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Frames = nil
	r.ShowError = nil
	r.pending = logic.Frame{}
}
