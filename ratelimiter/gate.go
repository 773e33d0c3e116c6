package ratelimiter

import (
	"context"
	"errors"
	"fmt"
)

// Gate implements admission control for outbound Unsplash calls.
//
// It is a soft limiter: the read of the cached quota and the later refresh
// are not atomic, so concurrent requests may both pass the check and then
// overwrite each other's telemetry. Last write wins.
type Gate struct {
	store  Store
	source HeaderSource
	cfg    *Config
}

// NewGate creates a Gate that reads and writes telemetry in store and takes
// fresh observations from source after each forwarded request.
func NewGate(store Store, source HeaderSource, opts ...Option) *Gate {
	return &Gate{
		store:  store,
		source: source,
		cfg:    NewConfig(opts...),
	}
}

// Config returns the gate configuration.
func (g *Gate) Config() *Config {
	return g.cfg
}

// Check decides whether a new request may proceed.
//
// The request is allowed when the gate is disabled, when no remaining value
// is cached, or when the cached value is above the threshold. When the store
// cannot be read the request is allowed and the error is returned so the
// caller can log it.
func (g *Gate) Check(ctx context.Context) (Result, error) {
	result := Result{Allowed: true, Threshold: g.cfg.Threshold}
	if !g.cfg.Enabled {
		return result, nil
	}

	remaining, found, err := g.store.Get(ctx, KeyRemaining)
	if err != nil {
		g.cfg.Recorder.ObserveDecision(result)
		return result, fmt.Errorf("read %s: %w", KeyRemaining, err)
	}

	if found {
		result.Known = true
		result.Remaining = remaining
		result.Allowed = remaining > g.cfg.Threshold
	}

	g.cfg.Recorder.ObserveDecision(result)
	return result, nil
}

// Refresh copies the rate limit counters from the last observed response into
// the store. A header that is missing leaves its cache entry untouched.
//
// Refresh always uses whatever the HeaderSource saw last, so if no API call
// happened since the previous refresh the same values are written again.
func (g *Gate) Refresh(ctx context.Context) error {
	if g.source == nil {
		return nil
	}

	t := ParseTelemetry(g.source.LastResponseHeaders())

	var errs []error
	if t.HasLimit {
		if err := g.store.Set(ctx, KeyLimit, t.Limit, g.cfg.TTL); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", KeyLimit, err))
		}
	}
	if t.HasRemaining {
		if err := g.store.Set(ctx, KeyRemaining, t.Remaining, g.cfg.TTL); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", KeyRemaining, err))
		}
	}

	if t.HasLimit || t.HasRemaining {
		g.cfg.Logger.Debugf("Rate limit telemetry refreshed. Limit: %d, Remaining: %d", t.Limit, t.Remaining)
		g.cfg.Recorder.ObserveTelemetry(t)
	}

	return errors.Join(errs...)
}

// Guard runs next behind the gate, for callers outside an HTTP handler chain.
//
// If the check rejects, next is not called and the returned error wraps
// ErrRateLimitReached. Otherwise next runs, telemetry is refreshed whatever
// next returned, and next's error is returned unchanged. Store failures are
// logged, never returned.
func (g *Gate) Guard(ctx context.Context, next func(ctx context.Context) error) error {
	result, err := g.Check(ctx)
	if err != nil {
		g.cfg.Logger.Errorf("Rate limit check failed, allowing request: %v", err)
	}
	if !result.Allowed {
		g.cfg.Logger.Debugf("Request denied. Remaining: %d, Threshold: %d", result.Remaining, result.Threshold)
		return fmt.Errorf("%w: %d remaining", ErrRateLimitReached, result.Remaining)
	}

	nextErr := next(ctx)

	if err := g.Refresh(ctx); err != nil {
		g.cfg.Logger.Errorf("Rate limit refresh failed: %v", err)
	}
	return nextErr
}

// Telemetry returns the currently cached counters.
func (g *Gate) Telemetry(ctx context.Context) (Telemetry, error) {
	var (
		t   Telemetry
		err error
	)

	t.Limit, t.HasLimit, err = g.store.Get(ctx, KeyLimit)
	if err != nil {
		return Telemetry{}, fmt.Errorf("read %s: %w", KeyLimit, err)
	}
	t.Remaining, t.HasRemaining, err = g.store.Get(ctx, KeyRemaining)
	if err != nil {
		return Telemetry{}, fmt.Errorf("read %s: %w", KeyRemaining, err)
	}
	return t, nil
}
