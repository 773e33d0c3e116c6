// Package logrusadapter plugs a logrus logger into go-unsplash.
package logrusadapter

import (
	"github.com/sirupsen/logrus"

	"github.com/jassus213/go-unsplash/logger"
)

// LogrusLogger implements logger.Logger using logrus
type LogrusLogger struct {
	logger *logrus.Entry
}

var _ logger.Logger = (*LogrusLogger)(nil)

// New creates a new LogrusLogger. If nil is passed, uses a fresh logrus logger.
func New(l *logrus.Logger) *LogrusLogger {
	if l == nil {
		l = logrus.New()
	}
	return &LogrusLogger{
		logger: l.WithField("component", "unsplash"),
	}
}

func (l *LogrusLogger) Debugf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}

func (l *LogrusLogger) Infof(format string, args ...any) {
	l.logger.Infof(format, args...)
}

func (l *LogrusLogger) Warnf(format string, args ...any) {
	l.logger.Warnf(format, args...)
}

func (l *LogrusLogger) Errorf(format string, args ...any) {
	l.logger.Errorf(format, args...)
}
