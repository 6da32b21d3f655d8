package client

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy defines the backoff curve applied between retry attempts.
// The delay for attempt k (0-indexed) is BaseDelay × Factor^k, perturbed by
// up to 50% additional random jitter when Jitter is enabled.
type RetryPolicy struct {
	MaxRetries int           `validate:"gte=0"`
	BaseDelay  time.Duration `validate:"gt=0"`
	Factor     float64       `validate:"gte=1"`
	Jitter     bool
}

// DefaultRetryPolicy returns the policy applied when none is configured:
// two retries, 500ms base delay, doubling, with jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		Factor:     2,
		Jitter:     true,
	}
}

// NoRetries returns a policy that makes exactly one attempt per call. Use it
// instead of a zero RetryPolicy, which New replaces with DefaultRetryPolicy.
func NoRetries() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 0,
		BaseDelay:  500 * time.Millisecond,
		Factor:     1,
		Jitter:     false,
	}
}

// delay computes the backoff duration before retrying attempt number
// attempt (0-indexed).
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(p.Factor, float64(attempt))
	if p.Jitter {
		d += rand.Float64() * d / 2
	}
	return time.Duration(d)
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
