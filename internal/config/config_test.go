package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDefaultIsValid checks the built-in settings pass validation.
func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, 1000, cfg.ToneHz)
	require.Equal(t, 200*time.Millisecond, cfg.Debounce)
	require.Equal(t, 2*time.Second, cfg.Splash)
	require.Equal(t, 32, cfg.Display.Width)
	require.Equal(t, 8, cfg.Display.Height)
	require.Equal(t, 5, cfg.Display.Brightness)
}

// TestValidate checks rejected settings.
func TestValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		mutate func(*Config)
		want   error
	}{
		"no chip":          {func(c *Config) { c.Chip = "" }, errChipRequired},
		"negative pin":     {func(c *Config) { c.Pins.Start = -1 }, errInvalidPin},
		"duplicate pin":    {func(c *Config) { c.Pins.Buzzer = c.Pins.Mode }, errDuplicatePin},
		"zero tone":        {func(c *Config) { c.ToneHz = 0 }, errInvalidTone},
		"zero poll":        {func(c *Config) { c.Poll = 0 }, errInvalidInterval},
		"zero debounce":    {func(c *Config) { c.Debounce = 0 }, errInvalidInterval},
		"negative splash":  {func(c *Config) { c.Splash = -time.Second }, errInvalidInterval},
		"unknown backend":  {func(c *Config) { c.Display.Backend = "hdmi" }, errUnknownBackend},
		"too narrow":       {func(c *Config) { c.Display.Width = 16 }, errInvalidSize},
		"too short":        {func(c *Config) { c.Display.Height = 5 }, errInvalidSize},
		"dark":             {func(c *Config) { c.Display.Brightness = 0 }, errInvalidBright},
		"too bright":       {func(c *Config) { c.Display.Brightness = 256 }, errInvalidBright},
		"unknown loglevel": {func(c *Config) { c.LogLevel = "loud" }, errInvalidLogLevel},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)
			require.ErrorIs(t, Validate(cfg), tc.want)
		})
	}

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

// TestValidateAllowsDisabledExtras checks that zero splash and heartbeat are accepted.
func TestValidateAllowsDisabledExtras(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Splash = 0
	cfg.Heartbeat = 0
	require.NoError(t, Validate(cfg))
}

// TestLoadPartialFileKeepsDefaults ensures omitted keys retain their defaults.
func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timer.yaml")
	contents := `
chip: gpiochip4
debounce: 150ms
pins:
  buzzer: 12
display:
  backend: terminal
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "gpiochip4", cfg.Chip)
	require.Equal(t, 150*time.Millisecond, cfg.Debounce)
	require.Equal(t, 12, cfg.Pins.Buzzer)
	require.Equal(t, Default().Pins.Start, cfg.Pins.Start)
	require.Equal(t, BackendTerminal, cfg.Display.Backend)
	require.Equal(t, 32, cfg.Display.Width)
	require.Equal(t, DefaultToneHz, cfg.ToneHz)
}

// TestLoadMissingExplicitFile fails when a named file does not exist.
func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

// TestLoadInvalidYAML reports parse errors.
func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pins: [1, 2"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := Default()
	cfg.Display.Backend = BackendTerminal
	cfg.Heartbeat = time.Minute
	cfg.Pins.Increment = 5

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	require.ErrorIs(t, Save(path, nil), errConfigIsNotSet)
}
