// Package kv is the synchronous, embedded key-value backend: a BoltDB
// file holding five logical keyspaces (nodes, edges, session_index,
// outgoing_index, incoming_index) plus the put/get/scan protocols that
// keep them consistent.
package kv

import (
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

// Stats summarizes backend cardinality and on-disk footprint.
type Stats struct {
	NodeCount    uint64
	EdgeCount    uint64
	SessionCount uint64
	StorageBytes uint64
}

// Backend is the synchronous leaf storage contract. Implementations are
// safe for concurrent use by multiple goroutines.
type Backend interface {
	PutNode(n *graph.Node) error
	GetNode(id ids.NodeID) (*graph.Node, error)
	DeleteNode(id ids.NodeID) error

	PutEdge(e *graph.Edge) error
	GetEdge(id ids.EdgeID) (*graph.Edge, error)
	DeleteEdge(id ids.EdgeID) error

	SessionNodes(sid ids.SessionID) ([]*graph.Node, error)
	CountSessionNodes(sid ids.SessionID) (uint64, error)
	OutgoingEdges(id ids.NodeID) ([]*graph.Edge, error)
	IncomingEdges(id ids.NodeID) ([]*graph.Edge, error)

	Stats() (Stats, error)
	Flush() error
	Close() error
}
