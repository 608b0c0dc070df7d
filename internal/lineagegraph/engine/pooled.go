package engine

import (
	"context"
	"time"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/asyncstore"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/kv"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/pool"
)

// PooledStorage gates every call to an underlying Storage behind a
// pool.Pool, giving production deployments bounded concurrency and the
// pool's throughput/latency counters. This is the production entry
// point; the unwrapped *asyncstore.Store is used directly in tests.
type PooledStorage struct {
	inner   Storage
	gate    *pool.Pool
	timeout time.Duration
}

// NewPooledStorage wraps inner with a pool admitting maxConcurrency
// concurrent calls, each subject to acquireTimeout.
func NewPooledStorage(inner Storage, maxConcurrency int64, acquireTimeout time.Duration) *PooledStorage {
	return &PooledStorage{inner: inner, gate: pool.New(maxConcurrency), timeout: acquireTimeout}
}

// Snapshot exposes the underlying pool's counters.
func (p *PooledStorage) Snapshot() pool.Snapshot { return p.gate.Snapshot() }

func do[T any](p *PooledStorage, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := p.gate.Do(ctx, p.timeout, func(ctx context.Context) error {
		v, err := fn(ctx)
		out = v
		return err
	})
	return out, err
}

func (p *PooledStorage) PutNode(ctx context.Context, n *graph.Node) error {
	_, err := do(p, ctx, func(ctx context.Context) (struct{}, error) { return struct{}{}, p.inner.PutNode(ctx, n) })
	return err
}

func (p *PooledStorage) GetNode(ctx context.Context, id ids.NodeID) (*graph.Node, error) {
	return do(p, ctx, func(ctx context.Context) (*graph.Node, error) { return p.inner.GetNode(ctx, id) })
}

func (p *PooledStorage) DeleteNode(ctx context.Context, id ids.NodeID) error {
	_, err := do(p, ctx, func(ctx context.Context) (struct{}, error) { return struct{}{}, p.inner.DeleteNode(ctx, id) })
	return err
}

func (p *PooledStorage) PutEdge(ctx context.Context, e *graph.Edge) error {
	_, err := do(p, ctx, func(ctx context.Context) (struct{}, error) { return struct{}{}, p.inner.PutEdge(ctx, e) })
	return err
}

func (p *PooledStorage) GetEdge(ctx context.Context, id ids.EdgeID) (*graph.Edge, error) {
	return do(p, ctx, func(ctx context.Context) (*graph.Edge, error) { return p.inner.GetEdge(ctx, id) })
}

func (p *PooledStorage) OutgoingEdges(ctx context.Context, id ids.NodeID) ([]*graph.Edge, error) {
	return do(p, ctx, func(ctx context.Context) ([]*graph.Edge, error) { return p.inner.OutgoingEdges(ctx, id) })
}

func (p *PooledStorage) IncomingEdges(ctx context.Context, id ids.NodeID) ([]*graph.Edge, error) {
	return do(p, ctx, func(ctx context.Context) ([]*graph.Edge, error) { return p.inner.IncomingEdges(ctx, id) })
}

func (p *PooledStorage) SessionNodes(ctx context.Context, sid ids.SessionID) ([]*graph.Node, error) {
	return do(p, ctx, func(ctx context.Context) ([]*graph.Node, error) { return p.inner.SessionNodes(ctx, sid) })
}

// SessionNodesStream is not gated by the pool: the wrapped Storage loads
// the session listing in the stream's own goroutine, so that backend
// call runs without holding a pool permit.
func (p *PooledStorage) SessionNodesStream(ctx context.Context, sid ids.SessionID) *asyncstore.NodeStream {
	return p.inner.SessionNodesStream(ctx, sid)
}

func (p *PooledStorage) CountSessionNodes(ctx context.Context, sid ids.SessionID) (uint64, error) {
	return do(p, ctx, func(ctx context.Context) (uint64, error) { return p.inner.CountSessionNodes(ctx, sid) })
}

func (p *PooledStorage) StoreNodesBatch(ctx context.Context, nodes []*graph.Node) ([]ids.NodeID, error) {
	return do(p, ctx, func(ctx context.Context) ([]ids.NodeID, error) { return p.inner.StoreNodesBatch(ctx, nodes) })
}

func (p *PooledStorage) StoreEdgesBatch(ctx context.Context, edges []*graph.Edge) ([]ids.EdgeID, error) {
	return do(p, ctx, func(ctx context.Context) ([]ids.EdgeID, error) { return p.inner.StoreEdgesBatch(ctx, edges) })
}

func (p *PooledStorage) Stats(ctx context.Context) (kv.Stats, error) {
	return do(p, ctx, func(ctx context.Context) (kv.Stats, error) { return p.inner.Stats(ctx) })
}

func (p *PooledStorage) Flush(ctx context.Context) error {
	_, err := do(p, ctx, func(ctx context.Context) (struct{}, error) { return struct{}{}, p.inner.Flush(ctx) })
	return err
}

func (p *PooledStorage) Close() error { return p.inner.Close() }

var _ Storage = (*PooledStorage)(nil)
