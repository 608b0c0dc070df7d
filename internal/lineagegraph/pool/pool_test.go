package pool_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/pool"
)

func TestPool_Do_Success_UpdatesCounters(t *testing.T) {
	p := pool.New(2)

	err := p.Do(context.Background(), 0, func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	snap := p.Snapshot()
	assert.Equal(t, uint64(1), snap.TotalOps)
	assert.Equal(t, uint64(1), snap.SuccessOps)
	assert.Equal(t, uint64(0), snap.FailureOps)
	assert.Equal(t, float64(1), snap.SuccessRate)
}

func TestPool_Do_FnErrorCountsAsFailure(t *testing.T) {
	p := pool.New(1)
	boom := errors.New("boom")

	err := p.Do(context.Background(), 0, func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	snap := p.Snapshot()
	assert.Equal(t, uint64(1), snap.FailureOps)
	assert.Equal(t, uint64(0), snap.SuccessOps)
}

func TestPool_Do_AcquireTimeoutReturnsRetryableTimeout(t *testing.T) {
	p := pool.New(1)
	release := make(chan struct{})

	go func() {
		_ = p.Do(context.Background(), 0, func(ctx context.Context) error {
			<-release
			return nil
		})
	}()
	time.Sleep(20 * time.Millisecond) // let the first Do acquire the only slot

	err := p.Do(context.Background(), 5*time.Millisecond, func(ctx context.Context) error { return nil })
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindTimeout, e.Kind)
	assert.True(t, e.IsRetryable())

	close(release)

	snap := p.Snapshot()
	assert.Equal(t, uint64(1), snap.TimeoutOps)
}

func TestPool_Snapshot_TracksPeakConcurrency(t *testing.T) {
	p := pool.New(4)
	var wg sync.WaitGroup
	barrier := make(chan struct{})

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Do(context.Background(), 0, func(ctx context.Context) error {
				<-barrier
				return nil
			})
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(barrier)
	wg.Wait()

	snap := p.Snapshot()
	assert.Equal(t, int64(0), snap.CurrentConcurrency)
	assert.GreaterOrEqual(t, snap.PeakConcurrency, int64(2))
}
