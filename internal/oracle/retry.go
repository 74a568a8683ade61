package oracle

import (
	"context"
	"fmt"
	"time"
)

// Policy is an explicit retry policy: attempt budget, backoff schedule, and
// a classifier deciding which failures are worth retrying.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Classify    func(error) Class
}

// DefaultPolicy retries transient failures with exponential backoff.
func DefaultPolicy(maxAttempts int) Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff:     ExponentialBackoff(2 * time.Second),
		Classify:    Classify,
	}
}

// ExponentialBackoff doubles the base delay per attempt: base, 2*base, 4*base...
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		d := base
		for i := 0; i < attempt; i++ {
			d *= 2
		}
		return d
	}
}

// Do runs fn under the policy. Transient failures are retried after backoff;
// fatal and parse failures propagate immediately.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff(attempt - 1)):
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Classify(lastErr) != ClassTransient {
			return lastErr
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", p.MaxAttempts, lastErr)
}
