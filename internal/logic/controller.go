package logic

import "time"

const (
	// DefaultTickInterval paces the countdown.
	DefaultTickInterval = time.Second
	// DefaultPhaseInterval is the duration of each half of the expiry message.
	DefaultPhaseInterval = 500 * time.Millisecond
	// DefaultSplashDuration is how long the power-on splash is shown.
	DefaultSplashDuration = 2 * time.Second
)

// Options configures a Controller. Zero fields take the defaults, except
// SplashDuration where zero disables the splash screen.
type Options struct {
	Settle         time.Duration
	TickInterval   time.Duration
	PhaseInterval  time.Duration
	SplashDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.Settle <= 0 {
		o.Settle = DefaultSettle
	}
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.PhaseInterval <= 0 {
		o.PhaseInterval = DefaultPhaseInterval
	}
	if o.SplashDuration < 0 {
		o.SplashDuration = 0
	}
	return o
}

// Controller owns the timer state and schedules countdown ticks and expiry
// message phases from injected timestamps. It never blocks; the caller
// decides how often to call Process.
type Controller struct {
	opts          Options
	debouncer     *Debouncer
	state         TimerState
	splashUntil   time.Time
	nextTick      time.Time
	expiredAt     time.Time
	startTime     time.Time
	lastHeartbeat time.Time
	eventCounts   EventCounts
}

// NewController creates a controller that shows the splash screen from
// startTime until the splash duration has elapsed.
func NewController(opts Options, startTime time.Time) *Controller {
	opts = opts.withDefaults()
	state := InitialState()
	if opts.SplashDuration > 0 {
		state.Mode = ModeSplash
	}
	return &Controller{
		opts:          opts,
		debouncer:     NewDebouncer(opts.Settle),
		state:         state,
		splashUntil:   startTime.Add(opts.SplashDuration),
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process runs one loop iteration: it debounces the input, applies button
// events, advances the countdown when due and renders exactly one frame.
func (c *Controller) Process(input Input) Output {
	now := input.Time
	presses := c.debouncer.Poll(input)

	if c.state.Mode == ModeSplash {
		if now.Before(c.splashUntil) {
			// Presses during the splash are swallowed but still arm the debouncer.
			return Output{Frame: SplashFrame()}
		}
		c.state = InitialState()
	}

	var out Output
	for _, p := range presses {
		prev := c.state
		next, tone, et := Apply(c.state, p)
		c.state = next
		if tone != ToneNone {
			out.Tone = tone
		}
		if prev.Mode != ModeCounting && next.Mode == ModeCounting {
			c.nextTick = now.Add(c.opts.TickInterval)
		}
		if et != nil {
			out.Events = append(out.Events, c.event(*et, now))
		}
	}

	if c.state.Mode == ModeCounting && (c.state.Remaining == 0 || !now.Before(c.nextTick)) {
		next, tone := Countdown(c.state)
		c.state = next
		c.nextTick = c.nextTick.Add(c.opts.TickInterval)
		if next.Mode == ModeExpired {
			c.expiredAt = now
			out.Events = append(out.Events, c.event(EventExpired, now))
		}
		if tone != ToneNone {
			out.Tone = tone
		}
	}

	out.Frame = Render(c.state, c.phase(now))
	return out
}

func (c *Controller) phase(now time.Time) int {
	if c.state.Mode != ModeExpired {
		return 0
	}
	return int(now.Sub(c.expiredAt)/c.opts.PhaseInterval) % 2
}

func (c *Controller) event(t EventType, now time.Time) Event {
	switch t {
	case EventStarted:
		c.eventCounts.Started++
	case EventExpired:
		c.eventCounts.Expired++
	case EventSilenced:
		c.eventCounts.Silenced++
	case EventReset:
		c.eventCounts.Reset++
	}
	return Event{
		Timestamp: now,
		Type:      t,
		Mode:      c.state.Mode,
		Remaining: c.state.Remaining,
		Count:     c.state.Count,
	}
}

// State returns a copy of the current timer state.
func (c *Controller) State() TimerState {
	return c.state
}

// EventCountsSnapshot returns a copy of the event counters.
func (c *Controller) EventCountsSnapshot() EventCounts {
	return c.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed or
// if interval is <= 0 (disabled).
func (c *Controller) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}
	c.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.eventCounts,
		State:     c.state,
	}
}
