// Package zapadapter plugs a zap logger into go-unsplash.
package zapadapter

import (
	"go.uber.org/zap"

	"github.com/jassus213/go-unsplash/logger"
)

// ZapLogger is an adapter that implements the logger.Logger interface
// using a zap.SugaredLogger internally.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

var _ logger.Logger = (*ZapLogger)(nil)

// New creates a new ZapLogger from a zap.Logger.
//
// If a nil logger is provided, it uses zap.NewNop() internally, which
// is a no-op logger that discards all messages.
//
// Example:
//
//	client, _ := unsplash.NewClient(key, unsplash.WithLogger(zapadapter.New(logger)))
func New(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{logger: l.Sugar()}
}

// Named returns a ZapLogger whose messages carry the given logger name.
func (z *ZapLogger) Named(name string) *ZapLogger {
	return &ZapLogger{logger: z.logger.Named(name)}
}

func (z *ZapLogger) Debugf(format string, args ...any) {
	z.logger.Debugf(format, args...)
}

func (z *ZapLogger) Infof(format string, args ...any) {
	z.logger.Infof(format, args...)
}

func (z *ZapLogger) Warnf(format string, args ...any) {
	z.logger.Warnf(format, args...)
}

func (z *ZapLogger) Errorf(format string, args ...any) {
	z.logger.Errorf(format, args...)
}
