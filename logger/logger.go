// Package logger defines the logging interface used across go-unsplash.
//
// Every component (the API client, the rate limit gate, the middleware) accepts
// a Logger so callers can plug in zap, zerolog, logrus or the standard library
// through the adapters in the adapters/ directory. When nothing is provided the
// components fall back to Noop.
package logger

// Logger is a simple leveled, printf-style logging interface.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Noop discards every message.
type Noop struct{}

var _ Logger = Noop{}

func (Noop) Debugf(string, ...any) {}
func (Noop) Infof(string, ...any)  {}
func (Noop) Warnf(string, ...any)  {}
func (Noop) Errorf(string, ...any) {}

// OrNoop returns l, or Noop when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return Noop{}
	}
	return l
}
