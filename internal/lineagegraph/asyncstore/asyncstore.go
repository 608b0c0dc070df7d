// Package asyncstore exposes every kv.Backend operation as a suspending
// call by running the blocking work on a separate goroutine, so a
// cooperative caller (the engine) can stop waiting when its ctx ends.
package asyncstore

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/kv"
)

// Store wraps a kv.Backend, running each single-item call on its own
// goroutine. workers bounds only the concurrent writes of
// StoreNodesBatch and StoreEdgesBatch; single-item calls are not bounded.
type Store struct {
	backend kv.Backend
	workers int
}

// New wraps backend. workers <= 0 defaults to runtime.GOMAXPROCS(0).
func New(backend kv.Backend, workers int) *Store {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Store{backend: backend, workers: workers}
}

// run offloads fn onto a single goroutine and waits for it, honoring
// ctx cancellation the way every suspension point in this module does:
// the underlying blocking call is not aborted mid-flight, only the
// caller stops waiting on it.
func run[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()
	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// PutNode stores n asynchronously.
func (s *Store) PutNode(ctx context.Context, n *graph.Node) error {
	_, err := run(ctx, func() (struct{}, error) { return struct{}{}, s.backend.PutNode(n) })
	return err
}

// GetNode fetches the node stored under id asynchronously.
func (s *Store) GetNode(ctx context.Context, id ids.NodeID) (*graph.Node, error) {
	return run(ctx, func() (*graph.Node, error) { return s.backend.GetNode(id) })
}

// DeleteNode removes id asynchronously.
func (s *Store) DeleteNode(ctx context.Context, id ids.NodeID) error {
	_, err := run(ctx, func() (struct{}, error) { return struct{}{}, s.backend.DeleteNode(id) })
	return err
}

// PutEdge stores e asynchronously.
func (s *Store) PutEdge(ctx context.Context, e *graph.Edge) error {
	_, err := run(ctx, func() (struct{}, error) { return struct{}{}, s.backend.PutEdge(e) })
	return err
}

// GetEdge fetches the edge stored under id asynchronously.
func (s *Store) GetEdge(ctx context.Context, id ids.EdgeID) (*graph.Edge, error) {
	return run(ctx, func() (*graph.Edge, error) { return s.backend.GetEdge(id) })
}

// DeleteEdge removes id asynchronously.
func (s *Store) DeleteEdge(ctx context.Context, id ids.EdgeID) error {
	_, err := run(ctx, func() (struct{}, error) { return struct{}{}, s.backend.DeleteEdge(id) })
	return err
}

// OutgoingEdges lists edges from id asynchronously.
func (s *Store) OutgoingEdges(ctx context.Context, id ids.NodeID) ([]*graph.Edge, error) {
	return run(ctx, func() ([]*graph.Edge, error) { return s.backend.OutgoingEdges(id) })
}

// IncomingEdges lists edges into id asynchronously.
func (s *Store) IncomingEdges(ctx context.Context, id ids.NodeID) ([]*graph.Edge, error) {
	return run(ctx, func() ([]*graph.Edge, error) { return s.backend.IncomingEdges(id) })
}

// CountSessionNodes returns session cardinality asynchronously, without
// materializing any node.
func (s *Store) CountSessionNodes(ctx context.Context, sid ids.SessionID) (uint64, error) {
	return run(ctx, func() (uint64, error) { return s.backend.CountSessionNodes(sid) })
}

// SessionNodes materializes the full node listing for sid asynchronously.
// Prefer SessionNodesStream when the caller can consume nodes one at a
// time; this exists for callers (the query batch executor, conversation
// thread traversal) that need the whole set anyway.
func (s *Store) SessionNodes(ctx context.Context, sid ids.SessionID) ([]*graph.Node, error) {
	return run(ctx, func() ([]*graph.Node, error) { return s.backend.SessionNodes(sid) })
}

// Stats reports backend cardinality asynchronously.
func (s *Store) Stats(ctx context.Context) (kv.Stats, error) {
	return run(ctx, func() (kv.Stats, error) { return s.backend.Stats() })
}

// Flush forces durability asynchronously.
func (s *Store) Flush(ctx context.Context) error {
	_, err := run(ctx, func() (struct{}, error) { return struct{}{}, s.backend.Flush() })
	return err
}

// Close releases the underlying backend.
func (s *Store) Close() error { return s.backend.Close() }

// StoreNodesBatch writes the nodes concurrently, at most workers at a
// time, returning the assigned NodeIds in input order. The first write
// error aborts the batch (errgroup fan-out with a bounded worker count);
// the write order is not defined, and there is no atomicity promise
// across the batch, and nodes already written before the error remain
// written (see DESIGN.md "Open Question decisions").
func (s *Store) StoreNodesBatch(ctx context.Context, nodes []*graph.Node) ([]ids.NodeID, error) {
	assigned := make([]ids.NodeID, len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			if err := s.backend.PutNode(n); err != nil {
				return err
			}
			assigned[i] = n.ID()
			return nil
		})
		if gctx.Err() != nil {
			break
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assigned, nil
}

// StoreEdgesBatch writes the edges concurrently, at most workers at a
// time, returning the assigned EdgeIds in input order. Same
// first-error-wins, undefined-write-order, no-cross-batch-atomicity contract
// as StoreNodesBatch.
func (s *Store) StoreEdgesBatch(ctx context.Context, edges []*graph.Edge) ([]ids.EdgeID, error) {
	assigned := make([]ids.EdgeID, len(edges))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, e := range edges {
		i, e := i, e
		g.Go(func() error {
			if err := s.backend.PutEdge(e); err != nil {
				return err
			}
			assigned[i] = e.ID
			return nil
		})
		if gctx.Err() != nil {
			break
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assigned, nil
}

// NodeStream is a lazy, one-at-a-time emission of a session's nodes.
// The underlying listing is loaded inside one worker and then emitted
// one-by-one over the returned channel, giving the consumer streaming
// backpressure at the emission boundary even though the BoltDB backend
// is not itself cursor-capable across this boundary.
type NodeStream struct {
	ch     chan streamItem
	err    chan error
	failed error
}

type streamItem struct {
	node *graph.Node
	err  error
}

// Next blocks for the next node, returning ok=false once the stream is
// exhausted (with a possible final error available via Err).
func (s *NodeStream) Next(ctx context.Context) (*graph.Node, bool) {
	select {
	case item, open := <-s.ch:
		if !open {
			return nil, false
		}
		if item.err != nil {
			s.failed = item.err
			return nil, false
		}
		return item.node, true
	case <-ctx.Done():
		return nil, false
	}
}

// Err reports the listing error that ended the stream early, if any.
func (s *NodeStream) Err() error { return s.failed }

// SessionNodesStream starts a lazy, one-at-a-time stream over sid's
// nodes. The session listing itself is materialized inside the worker
// goroutine (the present contract); a future cursor-capable backend
// could stream the listing itself instead.
func (s *Store) SessionNodesStream(ctx context.Context, sid ids.SessionID) *NodeStream {
	stream := &NodeStream{ch: make(chan streamItem)}
	go func() {
		defer close(stream.ch)
		nodes, err := s.backend.SessionNodes(sid)
		if err != nil {
			select {
			case stream.ch <- streamItem{err: err}:
			case <-ctx.Done():
			}
			return
		}
		for _, n := range nodes {
			select {
			case stream.ch <- streamItem{node: n}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return stream
}
