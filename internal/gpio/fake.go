package gpio

import "errors"

// FakeReader is a test double that returns scripted button samples.
type FakeReader struct {
	// Samples contains scripted values to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (Sample, error) {
	if f.ReadError != nil {
		return Sample{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Sample{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}

// ToneCall records one buzzer command.
type ToneCall struct {
	Start bool
	Hz    int
}

// FakeBuzzer records buzzer commands for test assertions.
type FakeBuzzer struct {
	// Calls contains every StartTone/StopTone in order.
	Calls []ToneCall

	// Playing reports whether a tone is currently sounding.
	Playing bool

	// Hz is the frequency of the current or last tone.
	Hz int

	// StartError, if set, will be returned by StartTone.
	StartError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeBuzzer creates a silent FakeBuzzer.
func NewFakeBuzzer() *FakeBuzzer {
	return &FakeBuzzer{}
}

// StartTone records a tone start.
func (f *FakeBuzzer) StartTone(hz int) error {
	if f.StartError != nil {
		return f.StartError
	}
	f.Calls = append(f.Calls, ToneCall{Start: true, Hz: hz})
	f.Playing = true
	f.Hz = hz
	return nil
}

// StopTone records a tone stop.
func (f *FakeBuzzer) StopTone() error {
	f.Calls = append(f.Calls, ToneCall{})
	f.Playing = false
	return nil
}

// Close silences the buzzer and marks it closed.
func (f *FakeBuzzer) Close() error {
	f.Playing = false
	f.Closed = true
	return nil
}

// Starts returns the number of StartTone calls.
func (f *FakeBuzzer) Starts() int {
	n := 0
	for _, c := range f.Calls {
		if c.Start {
			n++
		}
	}
	return n
}

// Stops returns the number of StopTone calls.
func (f *FakeBuzzer) Stops() int {
	return len(f.Calls) - f.Starts()
}
