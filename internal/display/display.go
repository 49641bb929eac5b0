// Package display renders timer frames onto an addressable pixel matrix.
//
// Display is the text-drawing capability the appliance loop consumes. Matrix
// implements it on a back buffer and hands complete frames to a Sink (the
// WS2812 strip or the terminal simulator) only when Show is called, so a
// partially drawn frame is never visible.
package display

import "github.com/sweeney/matrix-timer/internal/logic"

// Display is a text-capable pixel surface.
type Display interface {
	Clear()
	SetCursor(x, y int)
	SetTextColor(c logic.Color)
	Print(text string)
	// Show makes everything drawn since the last Show visible.
	Show() error
}

// Draw renders f as one atomic frame.
func Draw(d Display, f logic.Frame) error {
	d.Clear()
	d.SetCursor(f.X, f.Y)
	d.SetTextColor(f.Color)
	d.Print(f.Text)
	return d.Show()
}

// Pixels is a row-major image of the matrix.
type Pixels struct {
	Width  int
	Height int
	Data   []logic.Color
}

// NewPixels allocates a blank image.
func NewPixels(width, height int) Pixels {
	return Pixels{Width: width, Height: height, Data: make([]logic.Color, width*height)}
}

// At returns the colour at (x, y).
func (p Pixels) At(x, y int) logic.Color {
	return p.Data[y*p.Width+x]
}

// Lit reports whether (x, y) is not black.
func (p Pixels) Lit(x, y int) bool {
	return p.At(x, y) != logic.ColorBlack
}

// Sink presents a complete image on a physical or simulated surface.
type Sink interface {
	Present(p Pixels) error
	Close() error
}
