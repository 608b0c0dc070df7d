// Package query provides a session-scoped filter builder, batch and
// streaming execution, and a traversal view over the engine's storage
// surface.
package query

import (
	"time"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

// Filter narrows a query to a session (required for efficient
// execution), optionally a single node type, an inclusive time window
// on the node's primary timestamp, and an offset/limit page.
type Filter struct {
	sessionID *ids.SessionID
	nodeType  *graph.NodeType
	since     *time.Time
	until     *time.Time
	offset    int
	limit     int
}

// NewFilter returns an empty Filter. Chain the With* methods to build
// it up.
func NewFilter() Filter { return Filter{} }

// WithSession scopes the filter to sid. Required: Execute and Count fail
// with a Validation error without it, and Stream returns nothing.
func (f Filter) WithSession(sid ids.SessionID) Filter {
	f.sessionID = &sid
	return f
}

// WithNodeType restricts results to a single node variant.
func (f Filter) WithNodeType(t graph.NodeType) Filter {
	f.nodeType = &t
	return f
}

// WithTimeWindow restricts results to nodes whose primary timestamp
// falls in [since, until], inclusive on both ends.
func (f Filter) WithTimeWindow(since, until time.Time) Filter {
	f.since = &since
	f.until = &until
	return f
}

// WithOffset skips the first n matches.
func (f Filter) WithOffset(n int) Filter {
	f.offset = n
	return f
}

// WithLimit caps the result count at n. A non-positive n means
// unbounded.
func (f Filter) WithLimit(n int) Filter {
	f.limit = n
	return f
}

func (f Filter) matches(n *graph.Node) bool {
	if f.nodeType != nil && n.Type != *f.nodeType {
		return false
	}
	ts := n.PrimaryTimestamp()
	if f.since != nil && ts.Before(*f.since) {
		return false
	}
	if f.until != nil && ts.After(*f.until) {
		return false
	}
	return true
}
