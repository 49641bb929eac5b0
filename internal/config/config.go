package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/matrix-timer/internal/display"
	"github.com/sweeney/matrix-timer/internal/gpio"
	"github.com/sweeney/matrix-timer/internal/logger"
	"github.com/sweeney/matrix-timer/internal/logic"
)

// Display backends.
const (
	BackendTerminal = "terminal"
	BackendWS2812   = "ws2812"
)

// Pins holds BCM line offsets.
type Pins struct {
	Increment int `yaml:"increment"`
	Decrement int `yaml:"decrement"`
	Start     int `yaml:"start"`
	Mode      int `yaml:"mode"`
	Buzzer    int `yaml:"buzzer"`
}

// GPIO converts the wiring to the gpio package form.
func (p Pins) GPIO() gpio.Pins {
	return gpio.Pins{
		Increment: p.Increment,
		Decrement: p.Decrement,
		Start:     p.Start,
		Mode:      p.Mode,
		Buzzer:    p.Buzzer,
	}
}

// Display configures the matrix.
type Display struct {
	// Backend selects the output: "ws2812" on the device, "terminal" for the simulator.
	Backend string `yaml:"backend"`
	// SPIPort names the periph SPI port for the WS2812 strip; empty picks the first.
	SPIPort    string `yaml:"spi_port"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Brightness int    `yaml:"brightness"`
}

// Config holds all appliance settings.
type Config struct {
	// Chip is the GPIO character device name.
	Chip string `yaml:"chip"`
	Pins Pins   `yaml:"pins"`
	// ToneHz is the alarm frequency.
	ToneHz int `yaml:"tone_hz"`
	// Poll is the control loop interval.
	Poll time.Duration `yaml:"poll"`
	// Debounce is the settle interval after a detected press.
	Debounce time.Duration `yaml:"debounce"`
	// Splash is how long "TIMER" is shown at power-on; 0 skips it.
	Splash time.Duration `yaml:"splash"`
	// Heartbeat is the status log interval; 0 disables it.
	Heartbeat time.Duration `yaml:"heartbeat"`
	Display   Display       `yaml:"display"`
	LogLevel  string        `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default settings file.
	DefaultConfigFilename = "matrix-timer.yaml"

	// DefaultToneHz is the alarm frequency of the reference device.
	DefaultToneHz = 1000

	// DefaultPoll is the control loop interval.
	DefaultPoll = 10 * time.Millisecond

	// DefaultHeartbeat is the status log interval.
	DefaultHeartbeat = 15 * time.Minute

	// DefaultFilePermissions is the permission for written config files.
	DefaultFilePermissions = 0o600
)

var (
	errConfigIsNotSet  = errors.New("configuration is not set")
	errChipRequired    = errors.New("gpio chip must be provided")
	errInvalidPin      = errors.New("invalid pin")
	errDuplicatePin    = errors.New("duplicate pin")
	errInvalidTone     = errors.New("tone frequency must be positive")
	errInvalidInterval = errors.New("invalid interval")
	errUnknownBackend  = errors.New("unknown display backend")
	errInvalidSize     = errors.New("invalid display size")
	errInvalidBright   = errors.New("brightness must be between 1 and 255")
	errInvalidLogLevel = errors.New("invalid log level")
)

// minimumDisplayWidth is the narrowest panel that shows MM:SS without clipping.
var minimumDisplayWidth = logic.Render(logic.InitialState(), 0).X + display.TextWidth(logic.FormatClock(0)) - 1

// Default returns the reference-device configuration.
func Default() *Config {
	pins := gpio.DefaultPins()
	return &Config{
		Chip: gpio.DefaultChip,
		Pins: Pins{
			Increment: pins.Increment,
			Decrement: pins.Decrement,
			Start:     pins.Start,
			Mode:      pins.Mode,
			Buzzer:    pins.Buzzer,
		},
		ToneHz:    DefaultToneHz,
		Poll:      DefaultPoll,
		Debounce:  logic.DefaultSettle,
		Splash:    logic.DefaultSplashDuration,
		Heartbeat: DefaultHeartbeat,
		Display: Display{
			Backend:    BackendWS2812,
			Width:      display.DefaultWidth,
			Height:     display.DefaultHeight,
			Brightness: display.DefaultBrightness,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from path over the defaults and validates it.
// A missing file at the default path yields the defaults; an explicitly
// named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings for consistency.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Chip == "" {
		return errChipRequired
	}

	if err := validatePins(cfg.Pins); err != nil {
		return err
	}

	if cfg.ToneHz <= 0 {
		return fmt.Errorf("%w: %d", errInvalidTone, cfg.ToneHz)
	}

	for name, d := range map[string]time.Duration{"poll": cfg.Poll, "debounce": cfg.Debounce} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", errInvalidInterval, name, d)
		}
	}

	for name, d := range map[string]time.Duration{"splash": cfg.Splash, "heartbeat": cfg.Heartbeat} {
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", errInvalidInterval, name, d)
		}
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return err
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	return nil
}

func validatePins(p Pins) error {
	seen := make(map[int]string, 5)
	for _, pin := range []struct {
		name   string
		offset int
	}{
		{"increment", p.Increment},
		{"decrement", p.Decrement},
		{"start", p.Start},
		{"mode", p.Mode},
		{"buzzer", p.Buzzer},
	} {
		if pin.offset < 0 {
			return fmt.Errorf("%w: %s=%d", errInvalidPin, pin.name, pin.offset)
		}
		if other, ok := seen[pin.offset]; ok {
			return fmt.Errorf("%w: %s and %s both use %d", errDuplicatePin, other, pin.name, pin.offset)
		}
		seen[pin.offset] = pin.name
	}
	return nil
}

func validateDisplay(d Display) error {
	switch d.Backend {
	case BackendTerminal, BackendWS2812:
	default:
		return fmt.Errorf("%w: %q", errUnknownBackend, d.Backend)
	}

	if d.Width < minimumDisplayWidth || d.Height < display.TextHeight {
		return fmt.Errorf("%w: %dx%d (need at least %dx%d to show the clock)",
			errInvalidSize, d.Width, d.Height, minimumDisplayWidth, display.TextHeight)
	}

	if d.Brightness < 1 || d.Brightness > 255 {
		return fmt.Errorf("%w: %d", errInvalidBright, d.Brightness)
	}

	return nil
}
