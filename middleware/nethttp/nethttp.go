// Package nethttp exposes the rate limit gate as standard net/http middleware.
package nethttp

import (
	"net/http"

	"github.com/jassus213/go-unsplash/ratelimiter"
)

// Middleware creates a new middleware handler for the standard `net/http` library.
//
// Before each request it asks the gate whether the cached Unsplash quota still
// allows outbound calls. Rejected requests are answered by the gate's
// ErrorHandler (429 by default) and never reach next. Allowed requests are
// forwarded, and once next returns the gate refreshes its telemetry from the
// client's last response.
//
// Example:
//
//	gate := ratelimiter.NewGate(store.NewMemory(ctx, time.Minute), client)
//	mux := http.NewServeMux()
//	mux.HandleFunc("/photos", searchHandler)
//
//	http.ListenAndServe(":8080", nethttp.Middleware(gate)(mux))
func Middleware(gate *ratelimiter.Gate) func(http.Handler) http.Handler {
	cfg := gate.Config()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := gate.Check(r.Context())
			if err != nil {
				cfg.Logger.Errorf("Rate limit check failed, allowing request: %v", err)
			}

			if !result.Allowed {
				cfg.Logger.Debugf(
					"Request denied for '%s'. Remaining: %d, Threshold: %d",
					r.URL.Path, result.Remaining, result.Threshold,
				)
				cfg.ErrorHandler(w, r, ratelimiter.ErrRateLimitReached, result)
				return
			}

			next.ServeHTTP(w, r)

			if err := gate.Refresh(r.Context()); err != nil {
				cfg.Logger.Errorf("Rate limit refresh failed for '%s': %v", r.URL.Path, err)
			}
		})
	}
}
