package query

import (
	"context"
	"sort"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/engine"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
)

// Executor runs Filters against an Engine's storage.
type Executor struct {
	eng *engine.Engine
}

// NewExecutor builds an Executor over eng.
func NewExecutor(eng *engine.Engine) *Executor {
	return &Executor{eng: eng}
}

func requireSession(f Filter) error {
	if f.sessionID == nil {
		return errs.Validation("session_id", "query requires a session filter")
	}
	return nil
}

// Execute loads the session's nodes, applies the filter, sorts by
// primary timestamp descending (newest first), and applies
// offset/limit. Fails with a Validation error if f has no session set.
func (x *Executor) Execute(ctx context.Context, f Filter) ([]*graph.Node, error) {
	if err := requireSession(f); err != nil {
		return nil, err
	}
	nodes, err := x.eng.GetSessionNodes(ctx, *f.sessionID)
	if err != nil {
		return nil, err
	}

	matched := make([]*graph.Node, 0, len(nodes))
	for _, n := range nodes {
		if f.matches(n) {
			matched = append(matched, n)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PrimaryTimestamp().After(matched[j].PrimaryTimestamp())
	})
	result := page(matched, f.offset, f.limit)
	x.eng.RecordQueryExecuted(*f.sessionID)
	return result, nil
}

func page(nodes []*graph.Node, offset, limit int) []*graph.Node {
	if offset > 0 {
		if offset >= len(nodes) {
			return nil
		}
		nodes = nodes[offset:]
	}
	if limit > 0 && limit < len(nodes) {
		nodes = nodes[:limit]
	}
	return nodes
}

// Count reports the number of nodes f matches. When f filters only on
// session it delegates to the backend's cardinality method; otherwise
// it streams and counts, since node-type/time-window filters are not
// reflected in the session index.
func (x *Executor) Count(ctx context.Context, f Filter) (uint64, error) {
	if err := requireSession(f); err != nil {
		return 0, err
	}
	if f.nodeType == nil && f.since == nil && f.until == nil {
		count, err := x.eng.CountSessionNodes(ctx, *f.sessionID)
		if err != nil {
			return 0, err
		}
		x.eng.RecordQueryExecuted(*f.sessionID)
		return count, nil
	}
	unpaginated := f
	unpaginated.offset = 0
	unpaginated.limit = 0
	var count uint64
	stream := x.Stream(ctx, unpaginated)
	for {
		_, ok := stream.Next(ctx)
		if !ok {
			break
		}
		count++
	}
	x.eng.RecordQueryExecuted(*f.sessionID)
	return count, nil
}
