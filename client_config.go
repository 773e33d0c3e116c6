package unsplash

import (
	"net/http"
	"time"

	"github.com/jassus213/go-unsplash/logger"
)

// DefaultBaseURL is the root of the public Unsplash API.
const DefaultBaseURL = "https://api.unsplash.com/"

type config struct {
	// baseURL is resolved against every request path.
	// default: https://api.unsplash.com/
	baseURL string

	// transport specifies the HTTP transport mechanism
	// for making requests.
	// It's useful for mocking or for adding extra logging, headers, etc.
	// default: http.DefaultTransport
	transport http.RoundTripper

	// timeout sets the maximum duration for HTTP requests
	// before they are cancelled
	// default: 10 seconds
	timeout time.Duration

	// logger provides logging for all client operations
	// default: logger.Noop
	logger logger.Logger
}

func defaultConfig() *config {
	return &config{
		baseURL:   DefaultBaseURL,
		transport: http.DefaultTransport,
		timeout:   10 * time.Second,
		logger:    logger.Noop{},
	}
}

type ConfigOption func(c *config)

func WithBaseURL(baseURL string) ConfigOption {
	return func(c *config) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithTransport(transport http.RoundTripper) ConfigOption {
	return func(c *config) {
		if transport != nil {
			c.transport = transport
		}
	}
}

func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *config) {
		c.timeout = timeout
	}
}

func WithLogger(l logger.Logger) ConfigOption {
	return func(c *config) {
		c.logger = logger.OrNoop(l)
	}
}
