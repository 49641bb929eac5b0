package display

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// DefaultBrightness matches the reference device. Full scale is 255.
const DefaultBrightness = 5

// strip is the part of nrzled.Dev the sink uses.
type strip interface {
	Write(p []byte) (int, error)
	Halt() error
}

// WS2812 presents frames on a WS2812 matrix wired as columns of height
// pixels in a zigzag starting at the top-left corner.
type WS2812 struct {
	port       spi.PortCloser
	dev        strip
	width      int
	height     int
	brightness uint8
	buf        []byte
}

// OpenWS2812 initialises the host drivers and opens the strip on the SPI
// port (empty name = first available port).
func OpenWS2812(portName string, width, height int, brightness uint8) (*WS2812, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", portName, err)
	}

	opts := nrzled.DefaultOpts
	opts.NumPixels = width * height
	opts.Channels = 3
	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("open ws2812 strip: %w", err)
	}

	w := newWS2812(dev, width, height, brightness)
	w.port = port
	return w, nil
}

func newWS2812(dev strip, width, height int, brightness uint8) *WS2812 {
	return &WS2812{
		dev:        dev,
		width:      width,
		height:     height,
		brightness: brightness,
		buf:        make([]byte, width*height*3),
	}
}

// Present encodes p in strip order and writes it out.
func (w *WS2812) Present(p Pixels) error {
	if p.Width != w.width || p.Height != w.height {
		return fmt.Errorf("frame is %dx%d, strip is %dx%d", p.Width, p.Height, w.width, w.height)
	}

	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := p.At(x, y)
			i := stripIndex(x, y, w.height) * 3
			w.buf[i+0] = w.level(c.R)
			w.buf[i+1] = w.level(c.G)
			w.buf[i+2] = w.level(c.B)
		}
	}

	if _, err := w.dev.Write(w.buf); err != nil {
		return fmt.Errorf("write strip: %w", err)
	}
	return nil
}

// level gamma-corrects v and scales it by the global brightness. Non-zero
// channels never scale down to off.
func (w *WS2812) level(v uint8) uint8 {
	g := gamma(v)
	if g == 0 {
		return 0
	}
	out := uint8(uint16(g) * uint16(w.brightness) / 255)
	if out == 0 {
		out = 1
	}
	return out
}

// Close blanks the strip and releases the SPI port.
func (w *WS2812) Close() error {
	var errs []error
	if err := w.dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt strip: %w", err))
	}
	if w.port != nil {
		if err := w.port.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close spi port: %w", err))
		}
	}
	return errors.Join(errs...)
}

// stripIndex maps a matrix coordinate to its position on a column-major
// zigzag strip: even columns run top to bottom, odd columns bottom to top.
func stripIndex(x, y, height int) int {
	if x%2 == 1 {
		y = height - 1 - y
	}
	return x*height + y
}

func gamma(v uint8) uint8 {
	return uint8((uint16(v) * uint16(v)) / 255)
}
