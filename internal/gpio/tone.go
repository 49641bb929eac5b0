package gpio

import (
	"context"
	"errors"
	"sync"
	"time"
)

// lineSetter is the part of an output line the tone generator needs.
type lineSetter interface {
	SetValue(value int) error
}

// toneGenerator toggles a line at an audio frequency from a goroutine.
// StartTone and StopTone are safe to call from any goroutine.
type toneGenerator struct {
	mu     sync.Mutex
	line   lineSetter
	cancel context.CancelFunc
	done   chan struct{}
}

func newToneGenerator(line lineSetter) *toneGenerator {
	return &toneGenerator{line: line}
}

var errInvalidFrequency = errors.New("tone frequency must be positive")

func (g *toneGenerator) StartTone(hz int) error {
	if hz <= 0 {
		return errInvalidFrequency
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	g.cancel = cancel
	g.done = done

	half := time.Second / time.Duration(2*hz)
	go func() {
		defer close(done)
		ticker := time.NewTicker(half)
		defer ticker.Stop()
		level := 1
		for {
			// Write errors are not recoverable mid-tone; the next StopTone
			// reports the line state.
			_ = g.line.SetValue(level)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				level ^= 1
			}
		}
	}()
	return nil
}

func (g *toneGenerator) StopTone() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.stopLocked() {
		return nil
	}
	return g.line.SetValue(0)
}

// stopLocked ends the running tone and waits for its goroutine. It reports
// whether a tone was playing.
func (g *toneGenerator) stopLocked() bool {
	if g.cancel == nil {
		return false
	}
	g.cancel()
	<-g.done
	g.cancel = nil
	g.done = nil
	return true
}

// Playing reports whether a tone is currently running.
func (g *toneGenerator) Playing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cancel != nil
}
