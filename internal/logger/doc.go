// Package logger wraps zap with:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithKV),
//   - level parsing and a runtime-adjustable level,
//   - leveled convenience functions (Infof, InfoKV, Warnf, ...).
//
// The appliance loop takes a context and extracts the logger from it.
package logger
