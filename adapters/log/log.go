// Package stdlogadapter plugs a standard library *log.Logger into go-unsplash.
package stdlogadapter

import (
	"log"

	"github.com/jassus213/go-unsplash/logger"
)

// StdLogger implements logger.Logger using Go standard library log.
// Levels are rendered as message prefixes.
type StdLogger struct {
	logger *log.Logger
}

var _ logger.Logger = (*StdLogger)(nil)

// New creates a new StdLogger. If nil is passed, uses the default logger.
func New(l *log.Logger) *StdLogger {
	if l == nil {
		l = log.Default()
	}
	return &StdLogger{
		logger: l,
	}
}

func (s *StdLogger) Debugf(format string, args ...any) {
	s.logger.Printf("[DEBUG] "+format, args...)
}

func (s *StdLogger) Infof(format string, args ...any) {
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *StdLogger) Warnf(format string, args ...any) {
	s.logger.Printf("[WARN] "+format, args...)
}

func (s *StdLogger) Errorf(format string, args ...any) {
	s.logger.Printf("[ERROR] "+format, args...)
}
