// Package metrics exports rate limit gate activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jassus213/go-unsplash/ratelimiter"
)

// Decision label values.
const (
	DecisionAllowed  = "allowed"
	DecisionRejected = "rejected"
	DecisionUnknown  = "unknown"
)

// Recorder implements ratelimiter.Recorder with Prometheus collectors.
type Recorder struct {
	GateDecisions *prometheus.CounterVec
	RateLimit     prometheus.Gauge
	RateRemaining prometheus.Gauge
}

var _ ratelimiter.Recorder = (*Recorder)(nil)

// New registers the gate collectors with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		GateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unsplash_gate_decisions_total",
			Help: "Total number of admission checks by outcome",
		}, []string{"decision"}),
		RateLimit: factory.NewGauge(prometheus.GaugeOpts{
			Name: "unsplash_rate_limit",
			Help: "Last hourly request limit reported by the Unsplash API",
		}),
		RateRemaining: factory.NewGauge(prometheus.GaugeOpts{
			Name: "unsplash_rate_remaining",
			Help: "Last remaining request quota reported by the Unsplash API",
		}),
	}
}

// ObserveDecision counts one admission check. Checks that found no cached
// quota are counted as unknown.
func (r *Recorder) ObserveDecision(result ratelimiter.Result) {
	switch {
	case !result.Allowed:
		r.GateDecisions.WithLabelValues(DecisionRejected).Inc()
	case !result.Known:
		r.GateDecisions.WithLabelValues(DecisionUnknown).Inc()
	default:
		r.GateDecisions.WithLabelValues(DecisionAllowed).Inc()
	}
}

// ObserveTelemetry updates the gauges for the counters present in t.
func (r *Recorder) ObserveTelemetry(t ratelimiter.Telemetry) {
	if t.HasLimit {
		r.RateLimit.Set(float64(t.Limit))
	}
	if t.HasRemaining {
		r.RateRemaining.Set(float64(t.Remaining))
	}
}
