package query

import (
	"context"
	"sort"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/engine"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

// Traversal walks the graph reachable from a starting node by
// following both outgoing and incoming edges.
type Traversal struct {
	eng *engine.Engine
}

// NewTraversal builds a Traversal over eng.
func NewTraversal(eng *engine.Engine) *Traversal {
	return &Traversal{eng: eng}
}

// neighbors returns every node directly connected to id, in either
// edge direction.
func (t *Traversal) neighbors(ctx context.Context, id ids.NodeID) ([]ids.NodeID, error) {
	out, err := t.eng.GetOutgoingEdges(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err := t.eng.GetIncomingEdges(ctx, id)
	if err != nil {
		return nil, err
	}
	ns := make([]ids.NodeID, 0, len(out)+len(in))
	for _, e := range out {
		ns = append(ns, e.To)
	}
	for _, e := range in {
		ns = append(ns, e.From)
	}
	return ns, nil
}

// closure builds the in-memory adjacency view reachable from start by
// repeated neighbor expansion, visiting each node once.
func (t *Traversal) closure(ctx context.Context, start ids.NodeID) (map[ids.NodeID][]ids.NodeID, []ids.NodeID, error) {
	adj := map[ids.NodeID][]ids.NodeID{}
	var order []ids.NodeID
	visited := map[ids.NodeID]bool{start: true}
	queue := []ids.NodeID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		ns, err := t.neighbors(ctx, cur)
		if err != nil {
			return nil, nil, err
		}
		adj[cur] = ns
		for _, n := range ns {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return adj, order, nil
}

func (t *Traversal) resolveNodes(ctx context.Context, nodeIDs []ids.NodeID) ([]*graph.Node, error) {
	out := make([]*graph.Node, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		n, err := t.eng.GetNode(ctx, id)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// BFS visits the subgraph reachable from start in breadth-first order,
// following both outgoing and incoming edges until closure.
func (t *Traversal) BFS(ctx context.Context, start ids.NodeID) ([]*graph.Node, error) {
	_, order, err := t.closure(ctx, start)
	if err != nil {
		return nil, err
	}
	return t.resolveNodes(ctx, order)
}

// DFS visits the same reachable subgraph as BFS but in depth-first
// order.
func (t *Traversal) DFS(ctx context.Context, start ids.NodeID) ([]*graph.Node, error) {
	visited := map[ids.NodeID]bool{}
	var order []ids.NodeID
	var visit func(id ids.NodeID) error
	visit = func(id ids.NodeID) error {
		if visited[id] {
			return nil
		}
		visited[id] = true
		order = append(order, id)
		ns, err := t.neighbors(ctx, id)
		if err != nil {
			return err
		}
		for _, n := range ns {
			if err := visit(n); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(start); err != nil {
		return nil, err
	}
	return t.resolveNodes(ctx, order)
}

// sessionOf resolves start's Session by node-type dereference:
// Prompt -> its SessionID; Response -> its Prompt's SessionID;
// ToolInvocation -> its Response's Prompt's SessionID; Session -> its
// own id. Agent and Template starts are not conversation members and
// yield a Traversal error.
func (t *Traversal) sessionOf(ctx context.Context, start *graph.Node) (ids.SessionID, error) {
	switch start.Type {
	case graph.NodeTypeSession:
		return start.Session.ID, nil
	case graph.NodeTypePrompt:
		return start.Prompt.SessionID, nil
	case graph.NodeTypeResponse:
		prompt, err := t.eng.GetNode(ctx, start.Response.PromptID)
		if err != nil {
			return ids.NilSessionID, err
		}
		if prompt == nil || prompt.Type != graph.NodeTypePrompt {
			return ids.NilSessionID, errs.New(errs.KindTraversal, "response's prompt reference is missing or invalid")
		}
		return prompt.Prompt.SessionID, nil
	case graph.NodeTypeToolInvocation:
		response, err := t.eng.GetNode(ctx, start.ToolInvocation.ResponseID)
		if err != nil {
			return ids.NilSessionID, err
		}
		if response == nil || response.Type != graph.NodeTypeResponse {
			return ids.NilSessionID, errs.New(errs.KindTraversal, "tool invocation's response reference is missing or invalid")
		}
		return t.sessionOf(ctx, response)
	default:
		return ids.NilSessionID, errs.New(errs.KindTraversal, "start node type has no owning session")
	}
}

// GetConversationThread resolves start to its owning session and
// returns every Prompt and Response node in that session, sorted
// ascending by primary timestamp.
func (t *Traversal) GetConversationThread(ctx context.Context, start ids.NodeID) ([]*graph.Node, error) {
	startNode, err := t.eng.GetNode(ctx, start)
	if err != nil {
		return nil, err
	}
	if startNode == nil {
		return nil, errs.New(errs.KindTraversal, "start node not found")
	}
	sid, err := t.sessionOf(ctx, startNode)
	if err != nil {
		return nil, err
	}
	nodes, err := t.eng.GetSessionNodes(ctx, sid)
	if err != nil {
		return nil, err
	}
	var thread []*graph.Node
	for _, n := range nodes {
		if n.Type == graph.NodeTypePrompt || n.Type == graph.NodeTypeResponse {
			thread = append(thread, n)
		}
	}
	sort.Slice(thread, func(i, j int) bool {
		return thread[i].PrimaryTimestamp().Before(thread[j].PrimaryTimestamp())
	})
	return thread, nil
}

// FindResponses returns every Response node r for which a RespondsTo(r,
// promptID) edge exists.
func (t *Traversal) FindResponses(ctx context.Context, promptID ids.NodeID) ([]*graph.Node, error) {
	incoming, err := t.eng.GetIncomingEdges(ctx, promptID)
	if err != nil {
		return nil, err
	}
	var responses []*graph.Node
	for _, e := range incoming {
		if e.Type != graph.EdgeTypeRespondsTo {
			continue
		}
		n, err := t.eng.GetNode(ctx, e.From)
		if err != nil {
			return nil, err
		}
		if n != nil && n.Type == graph.NodeTypeResponse {
			responses = append(responses, n)
		}
	}
	return responses, nil
}
