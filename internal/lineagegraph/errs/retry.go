package errs

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig bounds a Retry call's backoff schedule.
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig is the default retry schedule: five attempts,
// starting at 50ms, capped at 2s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 5, InitialInterval: 50 * time.Millisecond, MaxInterval: 2 * time.Second}
}

// Retry calls fn until it succeeds, returns a non-retryable error, or
// MaxAttempts is exhausted, waiting an exponentially increasing delay
// (capped at MaxInterval) between attempts. A non-retryable error from
// fn is returned immediately without further attempts.
func Retry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval
	b.MaxElapsedTime = 0 // bounded by attempt count, not elapsed time

	bctx := backoff.WithContext(b, ctx)

	attempts := 0
	operation := func() error {
		attempts++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		if attempts >= cfg.MaxAttempts {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(operation, bctx)
}

// WithTimeout races fn against ctx's deadline (or the given timeout,
// whichever is sooner), surfacing a Timeout error if the deadline is hit
// first. fn continues running on its own goroutine past the deadline;
// the caller only stops waiting on it, matching the module's documented
// cancellation semantics (in-flight KV work is not aborted mid-write).
func WithTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (any, error)) (any, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val any
		err error
	}
	done := make(chan result, 1)
	go func() {
		val, err := fn(cctx)
		done <- result{val, err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-cctx.Done():
		return nil, Timeout(timeout.Milliseconds())
	}
}
