package oracle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces the minimum delay between sequential oracle calls so that
// per-slide processing stays under the service's request-rate ceiling.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer allowing one call per delay. A non-positive delay
// disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next call is allowed or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
