// Package gpio provides button input and buzzer output with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Sample is a single reading of the four buttons in logical form.
type Sample struct {
	Increment bool // true = pressed
	Decrement bool
	Start     bool
	Mode      bool
}

// Reader reads the front-panel buttons.
type Reader interface {
	// Read returns the logical button levels.
	// The lines are pulled up and active-low: raw 0 = pressed.
	Read() (Sample, error)

	// Close releases GPIO resources.
	Close() error
}

// Buzzer drives the alarm output.
type Buzzer interface {
	// StartTone starts a continuous tone at hz. Starting while a tone is
	// playing replaces it.
	StartTone(hz int) error

	// StopTone silences the buzzer. Stopping a silent buzzer is a no-op.
	StopTone() error

	// Close silences the buzzer and releases resources.
	Close() error
}

// Pins holds BCM line offsets for the appliance.
type Pins struct {
	Increment int
	Decrement int
	Start     int
	Mode      int
	Buzzer    int
}

// Default pin definitions (BCM numbering)
const (
	DefaultPinIncrement = 17
	DefaultPinDecrement = 27
	DefaultPinStart     = 22
	DefaultPinMode      = 23
	DefaultPinBuzzer    = 18
)

// DefaultPins returns the reference wiring.
func DefaultPins() Pins {
	return Pins{
		Increment: DefaultPinIncrement,
		Decrement: DefaultPinDecrement,
		Start:     DefaultPinStart,
		Mode:      DefaultPinMode,
		Buzzer:    DefaultPinBuzzer,
	}
}

// DefaultChip is the GPIO character device used on a Raspberry Pi.
const DefaultChip = "gpiochip0"

// sampleFromRaw converts raw active-low levels in button order to a Sample.
func sampleFromRaw(raw []int) Sample {
	return Sample{
		Increment: raw[0] == 0,
		Decrement: raw[1] == 0,
		Start:     raw[2] == 0,
		Mode:      raw[3] == 0,
	}
}
