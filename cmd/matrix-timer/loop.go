package main

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/sweeney/matrix-timer/internal/display"
	"github.com/sweeney/matrix-timer/internal/gpio"
	"github.com/sweeney/matrix-timer/internal/logger"
	"github.com/sweeney/matrix-timer/internal/logic"
	"github.com/sweeney/matrix-timer/internal/status"
)

// appliance wires the pure controller to its peripherals.
type appliance struct {
	reader     gpio.Reader
	display    display.Display
	buzzer     gpio.Buzzer
	tracker    *status.Tracker
	controller *logic.Controller
	toneHz     int
	heartbeat  time.Duration
	now        func() time.Time

	drawFailing bool
	toneOn      bool
}

// runLoop polls the buttons on every tick, feeds the controller and applies
// its frame and tone command. It returns when a signal arrives.
func (a *appliance) runLoop(ctx context.Context, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			a.shutdown(ctx, s)
			return nil
		case <-tick:
			a.step(ctx)
		}
	}
}

func (a *appliance) step(ctx context.Context) {
	t := a.now()

	sample, err := a.reader.Read()
	if err != nil {
		logger.Warnf(ctx, "gpio read error: %v", err)
		return
	}

	out := a.controller.Process(logic.Input{
		Increment: sample.Increment,
		Decrement: sample.Decrement,
		Start:     sample.Start,
		Mode:      sample.Mode,
		Time:      t,
	})

	for _, event := range out.Events {
		if event.Type == logic.EventAdjusted {
			logger.DebugKV(ctx, "event", "type", event.Type, "count", event.Count, "remaining", event.Remaining)
			continue
		}
		logger.InfoKV(ctx, "event", "type", event.Type, "mode", event.Mode, "remaining", event.Remaining)
	}

	a.tracker.Record(out.Events...)
	a.applyTone(ctx, out.Tone)

	if err := display.Draw(a.display, out.Frame); err != nil {
		if !a.drawFailing {
			logger.Errorf(ctx, "display error: %v", err)
			a.drawFailing = true
		}
	} else if a.drawFailing {
		logger.Infof(ctx, "display recovered")
		a.drawFailing = false
	}

	a.tracker.Update(a.controller.State(), a.controller.EventCountsSnapshot())

	if hb := a.controller.CheckHeartbeat(t, a.heartbeat); hb != nil {
		logger.InfoKV(ctx, "heartbeat",
			"uptime", hb.Uptime.Truncate(time.Second),
			"mode", hb.State.Mode,
			"started", hb.Counts.Started,
			"expired", hb.Counts.Expired,
			"silenced", hb.Counts.Silenced,
			"reset", hb.Counts.Reset)
	}
}

func (a *appliance) applyTone(ctx context.Context, tone logic.Tone) {
	switch tone {
	case logic.ToneStart:
		if err := a.buzzer.StartTone(a.toneHz); err != nil {
			logger.Errorf(ctx, "buzzer start error: %v", err)
			return
		}
		a.toneOn = true
	case logic.ToneStop:
		if err := a.buzzer.StopTone(); err != nil {
			logger.Errorf(ctx, "buzzer stop error: %v", err)
		}
		a.toneOn = false
	default:
		return
	}
	a.tracker.SetTone(a.toneOn)
}

func (a *appliance) shutdown(ctx context.Context, s os.Signal) {
	signalName := "UNKNOWN"
	if s == syscall.SIGINT {
		signalName = "SIGINT"
	} else if s == syscall.SIGTERM {
		signalName = "SIGTERM"
	}

	if a.toneOn {
		if err := a.buzzer.StopTone(); err != nil {
			logger.Errorf(ctx, "buzzer stop error: %v", err)
		}
		a.toneOn = false
		a.tracker.SetTone(false)
	}

	snap := a.tracker.Snapshot()
	logger.InfoKV(ctx, "shutting down",
		"signal", signalName,
		"uptime", snap.Uptime().Truncate(time.Second),
		"mode", snap.State.Mode,
		"clock", snap.Clock(),
		"started", snap.Counts.Started,
		"expired", snap.Counts.Expired)
}
