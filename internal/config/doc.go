// Package config loads and validates the YAML settings of the timer
// appliance: GPIO wiring, display backend and timing.
package config
