package engine

import (
	"context"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/asyncstore"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/kv"
)

// Storage is the suspending backend surface the engine depends on. It is
// satisfied directly by *asyncstore.Store (the unwrapped async backend,
// used in tests) and by *PooledStorage (the pool-gated production entry
// point).
type Storage interface {
	PutNode(ctx context.Context, n *graph.Node) error
	GetNode(ctx context.Context, id ids.NodeID) (*graph.Node, error)
	DeleteNode(ctx context.Context, id ids.NodeID) error

	PutEdge(ctx context.Context, e *graph.Edge) error
	GetEdge(ctx context.Context, id ids.EdgeID) (*graph.Edge, error)

	OutgoingEdges(ctx context.Context, id ids.NodeID) ([]*graph.Edge, error)
	IncomingEdges(ctx context.Context, id ids.NodeID) ([]*graph.Edge, error)

	SessionNodes(ctx context.Context, sid ids.SessionID) ([]*graph.Node, error)
	SessionNodesStream(ctx context.Context, sid ids.SessionID) *asyncstore.NodeStream
	CountSessionNodes(ctx context.Context, sid ids.SessionID) (uint64, error)

	StoreNodesBatch(ctx context.Context, nodes []*graph.Node) ([]ids.NodeID, error)
	StoreEdgesBatch(ctx context.Context, edges []*graph.Edge) ([]ids.EdgeID, error)

	Stats(ctx context.Context) (kv.Stats, error)
	Flush(ctx context.Context) error
	Close() error
}

var _ Storage = (*asyncstore.Store)(nil)
