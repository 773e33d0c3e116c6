// Package zerologadapter plugs a zerolog logger into go-unsplash.
package zerologadapter

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jassus213/go-unsplash/logger"
)

// ZerologLogger implements logger.Logger using zerolog
type ZerologLogger struct {
	logger zerolog.Logger
}

var _ logger.Logger = (*ZerologLogger)(nil)

// New creates a new ZerologLogger. If nil is passed, uses zerolog's global logger.
func New(l *zerolog.Logger) *ZerologLogger {
	if l == nil {
		l = &log.Logger
	}
	return &ZerologLogger{
		logger: l.With().Str("component", "unsplash").Logger(),
	}
}

func (z *ZerologLogger) Debugf(format string, args ...any) {
	z.logger.Debug().Msgf(format, args...)
}

func (z *ZerologLogger) Infof(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

func (z *ZerologLogger) Warnf(format string, args ...any) {
	z.logger.Warn().Msgf(format, args...)
}

func (z *ZerologLogger) Errorf(format string, args ...any) {
	z.logger.Error().Msgf(format, args...)
}
