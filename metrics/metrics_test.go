package metrics

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jassus213/go-unsplash/ratelimiter"
	"github.com/jassus213/go-unsplash/store"
)

type headerSource http.Header

func (h headerSource) LastResponseHeaders() http.Header { return http.Header(h) }

func TestRecorder_ObserveDecision(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.ObserveDecision(ratelimiter.Result{Allowed: true})
	r.ObserveDecision(ratelimiter.Result{Allowed: true, Known: true, Remaining: 50})
	r.ObserveDecision(ratelimiter.Result{Allowed: true, Known: true, Remaining: 11})
	r.ObserveDecision(ratelimiter.Result{Allowed: false, Known: true, Remaining: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.GateDecisions.WithLabelValues(DecisionUnknown)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.GateDecisions.WithLabelValues(DecisionAllowed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.GateDecisions.WithLabelValues(DecisionRejected)))
}

func TestRecorder_ObserveTelemetry_KeepsMissingCounters(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.ObserveTelemetry(ratelimiter.Telemetry{Limit: 50, HasLimit: true, Remaining: 42, HasRemaining: true})
	r.ObserveTelemetry(ratelimiter.Telemetry{Remaining: 41, HasRemaining: true})

	assert.Equal(t, 50.0, testutil.ToFloat64(r.RateLimit))
	assert.Equal(t, 41.0, testutil.ToFloat64(r.RateRemaining))
}

func TestRecorder_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)
	r.ObserveDecision(ratelimiter.Result{Allowed: true})

	n, err := testutil.GatherAndCount(reg, "unsplash_gate_decisions_total", "unsplash_rate_limit", "unsplash_rate_remaining")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Panics(t, func() { New(reg) }, "registering twice must fail")
}

func TestRecorder_WiredIntoGate(t *testing.T) {
	ctx := context.Background()
	r := New(prometheus.NewRegistry())
	mem := store.NewMemory(ctx, 0)

	source := headerSource{
		ratelimiter.HeaderLimit:     {"50"},
		ratelimiter.HeaderRemaining: {"9"},
	}
	gate := ratelimiter.NewGate(mem, source, ratelimiter.WithRecorder(r))

	require.NoError(t, gate.Guard(ctx, func(context.Context) error { return nil }))
	err := gate.Guard(ctx, func(context.Context) error { return nil })
	require.ErrorIs(t, err, ratelimiter.ErrRateLimitReached)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.GateDecisions.WithLabelValues(DecisionUnknown)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.GateDecisions.WithLabelValues(DecisionRejected)))
	assert.Equal(t, 50.0, testutil.ToFloat64(r.RateLimit))
	assert.Equal(t, 9.0, testutil.ToFloat64(r.RateRemaining))
}
