package twelvedata

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	// ErrThrottleConfig is reported by NewClient when WithThrottle gets a non-positive rate or burst
	ErrThrottleConfig = errors.New("requests per second and burst must be greater than zero")
	// ErrThrottleWait wraps the context error when a call gives up waiting for a token
	ErrThrottleWait = errors.New("throttle wait failed")
)

// throttle is an http.RoundTripper that spends one token per outbound call.
// The API meters credits per minute, so callers set rps below their plan.
type throttle struct {
	limiter *rate.Limiter
	next    http.RoundTripper
	logger  zerolog.Logger
}

func newThrottle(rps float64, burst int, logger zerolog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rps[%g] burst[%d]: %w", rps, burst, ErrThrottleConfig)
	}
	if next == nil {
		next = http.DefaultTransport
	}

	return &throttle{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		next:    next,
		logger:  logger,
	}, nil
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if !t.limiter.Allow() {
		t.logger.Debug().
			Str("path", r.URL.Path).
			Msg("Throttle tokens exhausted, waiting")

		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrThrottleWait, err)
		}
	}

	return t.next.RoundTrip(r)
}
