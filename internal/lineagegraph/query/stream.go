package query

import (
	"context"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/asyncstore"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
)

// ResultStream is a lazy, filtered view over a session's node stream.
// It does not guarantee the same sort order as Execute; callers relying
// on newest-first ordering must use Execute.
type ResultStream struct {
	inner   *asyncstore.NodeStream
	filter  Filter
	skipped int
	emitted int
}

// Next returns the next matching node, or ok=false once the underlying
// stream is exhausted or the limit is reached.
func (r *ResultStream) Next(ctx context.Context) (*graph.Node, bool) {
	if r.inner == nil {
		return nil, false
	}
	if r.filter.limit > 0 && r.emitted >= r.filter.limit {
		return nil, false
	}
	for {
		n, ok := r.inner.Next(ctx)
		if !ok {
			return nil, false
		}
		if !r.filter.matches(n) {
			continue
		}
		if r.skipped < r.filter.offset {
			r.skipped++
			continue
		}
		r.emitted++
		return n, true
	}
}

// Stream produces a lazy sequence honoring f's filters and pagination.
// When f has a session set it streams the backend's per-session
// sequence; otherwise the stream is immediately empty (there is no
// efficient unscoped stream).
func (x *Executor) Stream(ctx context.Context, f Filter) *ResultStream {
	if f.sessionID == nil {
		return &ResultStream{}
	}
	return &ResultStream{inner: x.eng.SessionNodesStream(ctx, *f.sessionID), filter: f}
}
