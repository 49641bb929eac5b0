package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/matrix-timer/internal/logic"
)

type fakeStrip struct {
	writes [][]byte
	halted bool
}

func (s *fakeStrip) Write(p []byte) (int, error) {
	s.writes = append(s.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (s *fakeStrip) Halt() error {
	s.halted = true
	return nil
}

func TestStripIndexZigzag(t *testing.T) {
	tests := []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{0, 7, 7},
		{1, 7, 8},
		{1, 0, 15},
		{2, 0, 16},
		{31, 0, 255},
		{31, 7, 248},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripIndex(tt.x, tt.y, 8), "(%d,%d)", tt.x, tt.y)
	}
}

func TestWS2812PresentEncodesStripOrder(t *testing.T) {
	dev := &fakeStrip{}
	w := newWS2812(dev, 2, 2, 255)

	p := NewPixels(2, 2)
	p.Data[0*2+1] = logic.Color{R: 0xFF} // (1,0)
	p.Data[1*2+0] = logic.Color{B: 0xFF} // (0,1)

	require.NoError(t, w.Present(p))
	require.Len(t, dev.writes, 1)
	assert.Equal(t, []byte{
		0, 0, 0, // (0,0)
		0, 0, 0xFF, // (0,1)
		0, 0, 0, // (1,1)
		0xFF, 0, 0, // (1,0)
	}, dev.writes[0])
}

func TestWS2812BrightnessKeepsDimPixelsLit(t *testing.T) {
	w := newWS2812(&fakeStrip{}, 1, 1, DefaultBrightness)
	assert.Equal(t, uint8(0), w.level(0))
	assert.Equal(t, uint8(5), w.level(0xFF))
	assert.Equal(t, uint8(1), w.level(0x20))
}

func TestWS2812RejectsWrongSize(t *testing.T) {
	w := newWS2812(&fakeStrip{}, 32, 8, 5)
	require.Error(t, w.Present(NewPixels(8, 8)))
}

func TestWS2812CloseHalts(t *testing.T) {
	dev := &fakeStrip{}
	w := newWS2812(dev, 1, 1, 5)
	require.NoError(t, w.Close())
	assert.True(t, dev.halted)
}
