package errs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
)

func TestRetry_SucceedsAfterRetryableError(t *testing.T) {
	cfg := errs.RetryConfig{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
	calls := 0
	err := errs.Retry(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errs.Timeout(10)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetry_TerminalErrorStopsAfterOneCall(t *testing.T) {
	cfg := errs.DefaultRetryConfig()
	calls := 0
	terminal := errs.Validation("field", "bad")
	err := errs.Retry(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return terminal
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, terminal, err)
}

func TestRetry_ExhaustsMaxAttempts(t *testing.T) {
	cfg := errs.RetryConfig{MaxAttempts: 2, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
	calls := 0
	err := errs.Retry(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return errs.PoolExhausted("gate full")
	})
	require.Error(t, err)
	assert.Equal(t, cfg.MaxAttempts, calls)
}

func TestWithTimeout_SurfacesTimeoutError(t *testing.T) {
	_, err := errs.WithTimeout(context.Background(), 5*time.Millisecond, func(ctx context.Context) (any, error) {
		<-ctx.Done()
		<-time.After(50 * time.Millisecond)
		return nil, errors.New("should not reach")
	})
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindTimeout, e.Kind)
}

func TestWithTimeout_ReturnsValueBeforeDeadline(t *testing.T) {
	v, err := errs.WithTimeout(context.Background(), 50*time.Millisecond, func(ctx context.Context) (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
