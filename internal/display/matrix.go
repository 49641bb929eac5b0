package display

import (
	"fmt"

	"github.com/sweeney/matrix-timer/internal/logic"
)

// Reference panel size.
const (
	DefaultWidth  = 32
	DefaultHeight = 8
)

// Matrix is a Display backed by an in-memory pixel buffer. Text does not
// wrap; pixels outside the panel are clipped.
type Matrix struct {
	back   Pixels
	sink   Sink
	cursor struct{ x, y int }
	color  logic.Color
}

// NewMatrix creates a width x height matrix presenting to sink.
func NewMatrix(width, height int, sink Sink) (*Matrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid matrix size %dx%d", width, height)
	}
	return &Matrix{
		back:  NewPixels(width, height),
		sink:  sink,
		color: logic.ColorWhite,
	}, nil
}

// Clear blanks the back buffer.
func (m *Matrix) Clear() {
	for i := range m.back.Data {
		m.back.Data[i] = logic.ColorBlack
	}
}

// SetCursor moves the text origin (top-left of the next glyph).
func (m *Matrix) SetCursor(x, y int) {
	m.cursor.x, m.cursor.y = x, y
}

// SetTextColor sets the colour of subsequently printed text.
func (m *Matrix) SetTextColor(c logic.Color) {
	m.color = c
}

// Print draws text at the cursor and advances it.
func (m *Matrix) Print(text string) {
	for _, r := range text {
		m.drawGlyph(glyph(r))
		m.cursor.x += glyphAdvance
	}
}

func (m *Matrix) drawGlyph(g [glyphWidth]byte) {
	for col, bits := range g {
		for row := 0; row < glyphHeight; row++ {
			if bits&(1<<row) == 0 {
				continue
			}
			m.set(m.cursor.x+col, m.cursor.y+row)
		}
	}
}

func (m *Matrix) set(x, y int) {
	if x < 0 || y < 0 || x >= m.back.Width || y >= m.back.Height {
		return
	}
	m.back.Data[y*m.back.Width+x] = m.color
}

// Show hands a copy of the back buffer to the sink.
func (m *Matrix) Show() error {
	frame := NewPixels(m.back.Width, m.back.Height)
	copy(frame.Data, m.back.Data)
	if m.sink == nil {
		return nil
	}
	return m.sink.Present(frame)
}

// Width returns the panel width in pixels.
func (m *Matrix) Width() int { return m.back.Width }

// Height returns the panel height in pixels.
func (m *Matrix) Height() int { return m.back.Height }
