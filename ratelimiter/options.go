package ratelimiter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jassus213/go-unsplash/logger"
)

// Logger is the logging interface accepted by the gate.
type Logger = logger.Logger

// ErrRateLimitReached is returned when the cached remaining quota is at or
// below the configured threshold.
// Custom error handlers can compare against it with errors.Is.
var ErrRateLimitReached = errors.New("unsplash API rate limit reached")

// RateLimitMessage is the message sent to clients when a request is rejected.
const RateLimitMessage = "Unsplash API rate limit reached. Please try again later."

// ErrorHandler defines how to respond to a client when the gate rejects a
// request. It gives the user full control over the status code, headers and
// body of the error response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result Result)

// Recorder receives gate events, typically to export them as metrics.
type Recorder interface {
	// ObserveDecision is called once per admission check.
	ObserveDecision(result Result)
	// ObserveTelemetry is called after every refresh with the values that were written.
	ObserveTelemetry(t Telemetry)
}

type noopRecorder struct{}

func (noopRecorder) ObserveDecision(Result)     {}
func (noopRecorder) ObserveTelemetry(Telemetry) {}

// Config holds all configurable parameters of a Gate.
// Users interact with it via functional options.
type Config struct {
	// Enabled turns the admission check on. Telemetry is refreshed either way.
	Enabled bool
	// Threshold is the remaining quota at or below which requests are rejected.
	Threshold int64
	// TTL is the expiry applied to every cache write.
	TTL time.Duration

	ErrorHandler ErrorHandler
	Logger       Logger
	Recorder     Recorder
}

// Option applies a configuration setting to a Config.
type Option func(*Config)

// DefaultErrorHandler answers with 429 and a fixed JSON body, whatever the
// remaining quota was.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, _ error, _ Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": RateLimitMessage})
}

// NewConfig creates a Config with default settings and then applies opts.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		Enabled:      true,
		Threshold:    DefaultThreshold,
		TTL:          DefaultTTL,
		ErrorHandler: DefaultErrorHandler,
		Logger:       logger.Noop{},
		Recorder:     noopRecorder{},
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithEnabled switches the admission check on or off.
func WithEnabled(enabled bool) Option {
	return func(c *Config) {
		c.Enabled = enabled
	}
}

// WithThreshold sets the rejection threshold. The comparison is inclusive:
// a remaining quota equal to the threshold is already rejected.
func WithThreshold(threshold int64) Option {
	return func(c *Config) {
		c.Threshold = threshold
	}
}

// WithTTL sets the expiry of cached telemetry. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) {
		if ttl > 0 {
			c.TTL = ttl
		}
	}
}

// WithErrorHandler sets a custom handler for rejected requests.
func WithErrorHandler(f ErrorHandler) Option {
	return func(c *Config) {
		if f != nil {
			c.ErrorHandler = f
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithRecorder sets a Recorder that is notified of decisions and refreshes.
func WithRecorder(r Recorder) Option {
	return func(c *Config) {
		if r != nil {
			c.Recorder = r
		}
	}
}
