// Command matrix-timer runs the countdown-timer appliance: four buttons set
// and start a timer shown on an LED matrix, and a buzzer sounds at expiry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeney/matrix-timer/internal/config"
	"github.com/sweeney/matrix-timer/internal/display"
	"github.com/sweeney/matrix-timer/internal/gpio"
	"github.com/sweeney/matrix-timer/internal/logger"
	"github.com/sweeney/matrix-timer/internal/logic"
	"github.com/sweeney/matrix-timer/internal/sim"
	"github.com/sweeney/matrix-timer/internal/status"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options carries command-line overrides of the config file.
type options struct {
	configPath string
	backend    string
	logLevel   string
	poll       time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "matrix-timer",
		Short: "Run the LED-matrix countdown timer.",
		Long: `Runs the countdown timer appliance.

Increment and Decrement set the duration in 10 second steps, Start begins the
countdown and Mode returns to setting. At zero the matrix flashes READY / UP and
the buzzer sounds until any of Increment, Decrement or Start is pressed.

Use --backend terminal to run the simulator on a development machine.`,
		Args:          cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+" if present)")
	root.Flags().StringVar(&opts.backend, "backend", "", `display backend: "ws2812" or "terminal"`)
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.Flags().DurationVar(&opts.poll, "poll", 0, "control loop polling interval")

	root.AddCommand(newButtonsCmd(opts), newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "matrix-timer", version)
		},
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Display.Backend = opts.backend
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("poll") {
		cfg.Poll = opts.poll
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if lvl, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(lvl)
	}

	return cfg, nil
}

// peripherals bundles the hardware (or simulated) collaborators.
type peripherals struct {
	reader gpio.Reader
	buzzer gpio.Buzzer
	sink   display.Sink
}

func (p *peripherals) close(ctx context.Context) {
	if p.buzzer != nil {
		if err := p.buzzer.Close(); err != nil {
			logger.Errorf(ctx, "close buzzer: %v", err)
		}
	}
	if p.sink != nil {
		if err := p.sink.Close(); err != nil {
			logger.Errorf(ctx, "close display: %v", err)
		}
	}
	if p.reader != nil {
		if err := p.reader.Close(); err != nil {
			logger.Errorf(ctx, "close gpio: %v", err)
		}
	}
}

func openHardware(cfg *config.Config) (*peripherals, error) {
	p := &peripherals{}

	reader, err := gpio.NewRealReader(cfg.Chip, cfg.Pins.GPIO())
	if err != nil {
		return nil, fmt.Errorf("init gpio: %w", err)
	}
	p.reader = reader

	buzzer, err := gpio.NewRealBuzzer(cfg.Chip, cfg.Pins.Buzzer)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("init buzzer: %w", err)
	}
	p.buzzer = buzzer

	sink, err := display.OpenWS2812(cfg.Display.SPIPort, cfg.Display.Width, cfg.Display.Height, uint8(cfg.Display.Brightness))
	if err != nil {
		buzzer.Close()
		reader.Close()
		return nil, fmt.Errorf("init display: %w", err)
	}
	p.sink = sink

	return p, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()
	tracker := status.NewTracker(startTime, status.Config{
		Backend:     cfg.Display.Backend,
		PollMs:      cfg.Poll.Milliseconds(),
		DebounceMs:  cfg.Debounce.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		ToneHz:      cfg.ToneHz,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var p *peripherals
	switch cfg.Display.Backend {
	case config.BackendTerminal:
		term, err := sim.New(sigCh, tracker)
		if err != nil {
			return fmt.Errorf("init simulator: %w", err)
		}
		p = &peripherals{reader: term, buzzer: term, sink: term}
		// Log lines would scribble over the simulated matrix.
		ctx = logger.ToContext(ctx, logger.Nop())
	default:
		var err error
		p, err = openHardware(cfg)
		if err != nil {
			return err
		}
		ctx = logger.ToContext(ctx, logger.New(os.Stdout))
	}
	defer p.close(ctx)

	matrix, err := display.NewMatrix(cfg.Display.Width, cfg.Display.Height, p.sink)
	if err != nil {
		return fmt.Errorf("init matrix: %w", err)
	}

	controller := logic.NewController(logic.Options{
		Settle:         cfg.Debounce,
		SplashDuration: cfg.Splash,
	}, startTime)

	logger.InfoKV(ctx, "started",
		"version", version,
		"backend", cfg.Display.Backend,
		"poll", cfg.Poll,
		"debounce", cfg.Debounce,
		"heartbeat", cfg.Heartbeat,
		"pins", fmt.Sprintf("%+v", cfg.Pins))

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	app := &appliance{
		reader:     p.reader,
		display:    matrix,
		buzzer:     p.buzzer,
		tracker:    tracker,
		controller: controller,
		toneHz:     cfg.ToneHz,
		heartbeat:  cfg.Heartbeat,
		now:        time.Now,
	}
	return app.runLoop(ctx, ticker.C, sigCh)
}
