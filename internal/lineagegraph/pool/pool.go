// Package pool bounds concurrency into the storage backend with a
// weighted semaphore, tracking the counters Snapshot reports.
package pool

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
)

// Pool gates concurrent access to a limited resource (the embedded KV
// backend) with a weighted semaphore sized to maxConcurrency, recording
// throughput and latency counters for Snapshot.
type Pool struct {
	sem *semaphore.Weighted

	total        atomic.Uint64
	success      atomic.Uint64
	failure      atomic.Uint64
	timeouts     atomic.Uint64
	current      atomic.Int64
	peak         atomic.Int64
	totalWaitNs  atomic.Int64
}

// New builds a Pool admitting at most maxConcurrency concurrent holders.
func New(maxConcurrency int64) *Pool {
	return &Pool{sem: semaphore.NewWeighted(maxConcurrency)}
}

// Snapshot is a point-in-time read of the pool's counters.
type Snapshot struct {
	TotalOps        uint64
	SuccessOps      uint64
	FailureOps      uint64
	TimeoutOps      uint64
	CurrentConcurrency int64
	PeakConcurrency    int64
	AvgWaitTimeMs   float64
	SuccessRate     float64
	TimeoutRate     float64
}

// Snapshot derives the avg_wait_time_ms, success_rate and timeout_rate
// ratios from the running counters.
func (p *Pool) Snapshot() Snapshot {
	total := p.total.Load()
	s := Snapshot{
		TotalOps:           total,
		SuccessOps:         p.success.Load(),
		FailureOps:         p.failure.Load(),
		TimeoutOps:         p.timeouts.Load(),
		CurrentConcurrency: p.current.Load(),
		PeakConcurrency:    p.peak.Load(),
	}
	if total > 0 {
		s.AvgWaitTimeMs = float64(p.totalWaitNs.Load()) / float64(total) / float64(time.Millisecond)
		s.SuccessRate = float64(s.SuccessOps) / float64(total)
		s.TimeoutRate = float64(s.TimeoutOps) / float64(total)
	}
	return s
}

// Do acquires a slot (subject to ctx and timeout), runs fn, releases the
// slot, and updates the pool's counters. An acquire timeout surfaces a
// retryable errs.Error of kind KindTimeout rather than failing fn itself.
func (p *Pool) Do(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	p.total.Add(1)
	start := time.Now()

	acquireCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		acquireCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := p.sem.Acquire(acquireCtx, 1); err != nil {
		p.totalWaitNs.Add(int64(time.Since(start)))
		if ctx.Err() == nil {
			p.timeouts.Add(1)
			p.failure.Add(1)
			return errs.Timeout(timeout.Milliseconds())
		}
		p.failure.Add(1)
		return err
	}
	p.totalWaitNs.Add(int64(time.Since(start)))

	cur := p.current.Add(1)
	for {
		peak := p.peak.Load()
		if cur <= peak || p.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	defer func() {
		p.current.Add(-1)
		p.sem.Release(1)
	}()

	if err := fn(ctx); err != nil {
		p.failure.Add(1)
		return err
	}
	p.success.Add(1)
	return nil
}
