// Package ratelimiter guards outbound Unsplash API usage based on the rate
// limit counters the API reports on its own responses.
//
// Unsplash returns X-Ratelimit-Limit and X-Ratelimit-Remaining on every
// response. The Gate persists those values into a shared Store with a
// time-to-live and, before letting a new request through, compares the cached
// remaining quota against a configured threshold.
//
// The package defines three core abstractions:
//   - Gate: admission control and telemetry refresh around a unit of work
//   - Store: key/value backend with per-key expiry (e.g., MemoryStore, RedisStore)
//   - HeaderSource: anything that exposes the headers of its last API response
//     (the unsplash.Client does)
package ratelimiter

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// HeaderLimit carries the hourly request allowance of the access key.
	HeaderLimit = "X-Ratelimit-Limit"
	// HeaderRemaining carries the number of requests left in the current hour.
	HeaderRemaining = "X-Ratelimit-Remaining"

	// KeyLimit is the cache key holding the last observed limit.
	KeyLimit = "unsplash_rate_limit"
	// KeyRemaining is the cache key holding the last observed remaining quota.
	KeyRemaining = "unsplash_rate_remaining"

	// DefaultTTL is how long an observed value stays in the cache.
	DefaultTTL = time.Hour
	// DefaultThreshold is the remaining quota at or below which requests are rejected.
	DefaultThreshold int64 = 10
)

// Result contains the outcome of an admission check.
type Result struct {
	// Allowed indicates whether the request may proceed.
	Allowed bool
	// Known reports whether a remaining value was found in the cache.
	Known bool
	// Remaining is the cached remaining quota. Only meaningful when Known is true.
	Remaining int64
	// Threshold is the threshold the check was evaluated against.
	Threshold int64
}

// Telemetry is the cached pair of rate limit counters.
// Absence ("never observed" or expired) is tracked separately from zero.
type Telemetry struct {
	Limit        int64
	HasLimit     bool
	Remaining    int64
	HasRemaining bool
}

// Store defines the interface for the shared telemetry cache.
//
// Implementations must treat a missing or expired key as not found rather than
// returning a zero value.
type Store interface {
	// Get returns the value stored under key. found is false if the key is
	// missing or expired.
	Get(ctx context.Context, key string) (value int64, found bool, err error)

	// Set stores value under key, replacing any previous value, and expires it
	// after ttl.
	Set(ctx context.Context, key string, value int64, ttl time.Duration) error
}

// HeaderSource exposes the headers of the most recent upstream response.
type HeaderSource interface {
	LastResponseHeaders() http.Header
}

// ParseTelemetry extracts the rate limit counters from a header set.
//
// Only the first value of each header is considered. Lookup uses the exact
// header name first and then falls back to a case-insensitive match, so both
// canonicalized net/http headers and verbatim maps work. A value that is not a
// base-10 integer is treated as absent.
func ParseTelemetry(h http.Header) Telemetry {
	var t Telemetry
	t.Limit, t.HasLimit = firstInt(h, HeaderLimit)
	t.Remaining, t.HasRemaining = firstInt(h, HeaderRemaining)
	return t
}

func firstInt(h http.Header, name string) (int64, bool) {
	values, ok := h[name]
	if !ok {
		values, ok = h[http.CanonicalHeaderKey(name)]
	}
	if !ok {
		for k, v := range h {
			if strings.EqualFold(k, name) {
				values, ok = v, true
				break
			}
		}
	}
	if !ok || len(values) == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(strings.TrimSpace(values[0]), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
