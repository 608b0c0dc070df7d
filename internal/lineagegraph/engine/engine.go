// Package engine composes the async/pooled storage backend, the node
// and edge caches, a recent-session cache, and optional event/metrics
// capabilities into the domain operations the rest of the codebase
// consumes. It is the module's sole external interface: there is no
// network or CLI surface in the core (a separate gRPC façade is an
// out-of-scope collaborator).
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/asyncstore"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/cache"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/events"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/kv"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/metrics"
)

// Config carries the knobs accepted at Open.
type Config struct {
	CacheSizeMB  int
	MaxConcurrent int64
	AcquireTimeout time.Duration
	EnablePool   bool
	Publisher    events.Publisher
	Recorder     metrics.Recorder
}

// Complete fills in the non-zero defaults Config needs before New can
// build an Engine from it.
func (c Config) Complete() Config {
	if c.CacheSizeMB <= 0 {
		c.CacheSizeMB = 64
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 32
	}
	if c.AcquireTimeout <= 0 {
		c.AcquireTimeout = 5 * time.Second
	}
	if c.Publisher == nil {
		c.Publisher = events.Noop{}
	}
	if c.Recorder == nil {
		c.Recorder = metrics.Noop{}
	}
	return c
}

// Engine is the domain layer: every create_*/get_*/update_* contract in
// the module is a method on Engine.
type Engine struct {
	storage   Storage
	cache     *cache.Cache

	sessionMu    sync.RWMutex
	sessionCache map[ids.SessionID]*graph.Session

	publisher events.Publisher
	recorder  metrics.Recorder
	log       *logrus.Entry
}

// New builds an Engine over storage using cfg (already Completed). A
// caller that wants pool-bounded concurrency must wrap storage in a
// *PooledStorage before calling New; the unwrapped async store is
// accepted directly by tests.
func New(storage Storage, cfg Config) (*Engine, error) {
	cfg = cfg.Complete()
	c, err := cache.NewFromBudgetMB(cfg.CacheSizeMB)
	if err != nil {
		return nil, errs.Wrap(errs.KindRuntime, "build cache", err)
	}
	return &Engine{
		storage:      storage,
		cache:        c,
		sessionCache: map[ids.SessionID]*graph.Session{},
		publisher:    cfg.Publisher,
		recorder:     cfg.Recorder,
		log:          logrus.WithField("component", "engine"),
	}, nil
}

// Close releases the underlying storage.
func (e *Engine) Close() error { return e.storage.Close() }

// Flush forces backend durability.
func (e *Engine) Flush(ctx context.Context) error { return e.storage.Flush(ctx) }

// Stats reports a backend cardinality snapshot, the earliest accurate
// point to refresh the total_nodes/total_edges/active_sessions gauges.
func (e *Engine) Stats(ctx context.Context) (kv.Stats, error) {
	s, err := e.storage.Stats(ctx)
	if err != nil {
		return kv.Stats{}, err
	}
	e.recorder.SetTotalNodes(int64(s.NodeCount))
	e.recorder.SetTotalEdges(int64(s.EdgeCount))
	e.sessionMu.RLock()
	active := len(e.sessionCache)
	e.sessionMu.RUnlock()
	e.recorder.SetActiveSessions(int64(active))
	return s, nil
}

// RecordQueryExecuted increments queries_executed and publishes
// QueryExecuted. The query package runs queries directly against an
// Engine's storage but holds no recorder/publisher of its own, so it
// calls back through this method at the end of a successful query.
func (e *Engine) RecordQueryExecuted(sid ids.SessionID) {
	e.recorder.IncQueriesExecuted()
	e.publish(events.Event{Kind: events.KindQueryExecuted, SessionID: sid, Detail: "query executed"})
}

func (e *Engine) publish(ev events.Event) {
	ev.At = time.Now().UTC()
	// Fire-and-forget: publication runs off the caller's path and a
	// failure is logged, never propagated.
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.log.WithField("panic", r).Error("event publisher panicked")
			}
		}()
		e.publisher.Publish(ev)
	}()
}

func (e *Engine) cacheSession(s *graph.Session) {
	e.sessionMu.Lock()
	e.sessionCache[s.ID] = s
	e.sessionMu.Unlock()
}

func (e *Engine) cachedSession(sid ids.SessionID) (*graph.Session, bool) {
	e.sessionMu.RLock()
	defer e.sessionMu.RUnlock()
	s, ok := e.sessionCache[sid]
	return s, ok
}

// --- Sessions ---------------------------------------------------------

// CreateSession assigns a fresh SessionId+NodeId, writes the Session
// node, populates both the session cache and the node cache, records
// nodes_created, and publishes NodeCreated.
func (e *Engine) CreateSession(ctx context.Context, metadata map[string]string) (ids.SessionID, error) {
	s := graph.NewSession(metadata)
	node := graph.WrapSession(s)
	if err := e.storage.PutNode(ctx, node); err != nil {
		return ids.NilSessionID, err
	}
	e.cache.PutNode(node)
	e.cacheSession(s)
	e.recorder.IncNodesCreated(string(graph.NodeTypeSession))
	e.publish(events.Event{Kind: events.KindNodeCreated, NodeID: s.NodeID, SessionID: s.ID, Detail: "session created"})
	return s.ID, nil
}

// GetSession resolves sid via the session cache first, falling back to
// a backend prefix-scan (the session's own node is indexed under its
// own SessionId — see kv's put-node protocol). Fails with
// KindSessionNotFound if absent.
func (e *Engine) GetSession(ctx context.Context, sid ids.SessionID) (*graph.Session, error) {
	if s, ok := e.cachedSession(sid); ok {
		return s, nil
	}
	nodes, err := e.storage.SessionNodes(ctx, sid)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.Type == graph.NodeTypeSession && n.Session.ID == sid {
			e.cacheSession(n.Session)
			return n.Session, nil
		}
	}
	return nil, errs.SessionNotFound(sid.String())
}

// --- Prompts ------------------------------------------------------------

func (e *Engine) mostRecentPrompt(ctx context.Context, sid ids.SessionID) (*graph.Prompt, error) {
	nodes, err := e.storage.SessionNodes(ctx, sid)
	if err != nil {
		return nil, err
	}
	var latest *graph.Prompt
	for _, n := range nodes {
		if n.Type != graph.NodeTypePrompt {
			continue
		}
		if latest == nil || n.Prompt.Timestamp.After(latest.Timestamp) {
			latest = n.Prompt
		}
	}
	return latest, nil
}

// AddPrompt verifies the session exists, writes the Prompt node,
// autowires a PartOf edge to the session and (if a strictly-older prompt
// already exists in the session) a Follows edge to the most recent
// prior prompt, populates caches, and emits PromptSubmitted.
func (e *Engine) AddPrompt(ctx context.Context, sid ids.SessionID, content string, metadata *graph.PromptMetadata) (ids.NodeID, error) {
	start := time.Now()
	if _, err := e.GetSession(ctx, sid); err != nil {
		return ids.NilNodeID, err
	}

	session, _ := e.cachedSession(sid)
	prior, err := e.mostRecentPrompt(ctx, sid)
	if err != nil {
		return ids.NilNodeID, err
	}

	p := graph.NewPrompt(sid, content)
	if metadata != nil {
		p.Metadata = *metadata
	}
	node := graph.WrapPrompt(p)
	if err := e.storage.PutNode(ctx, node); err != nil {
		return ids.NilNodeID, err
	}

	partOf := graph.NewEdge(graph.EdgeTypePartOf, p.NodeID, session.NodeID)
	if err := e.storage.PutEdge(ctx, partOf); err != nil {
		return ids.NilNodeID, err
	}
	if prior != nil && prior.Timestamp.Before(p.Timestamp) {
		follows := graph.NewEdge(graph.EdgeTypeFollows, p.NodeID, prior.NodeID)
		if err := e.storage.PutEdge(ctx, follows); err != nil {
			return ids.NilNodeID, err
		}
	}

	e.cache.PutNode(node)
	e.recorder.IncNodesCreated(string(graph.NodeTypePrompt))
	e.recorder.IncPromptsSubmitted()
	e.recorder.ObserveWriteLatency(time.Since(start))
	e.publish(events.Event{Kind: events.KindPromptSubmitted, NodeID: p.NodeID, SessionID: sid, Detail: "prompt submitted"})
	return p.NodeID, nil
}

// PromptInput is one item of a AddPromptsBatch call.
type PromptInput struct {
	SessionID ids.SessionID
	Content   string
	Metadata  *graph.PromptMetadata
}

// AddPromptsBatch submits every prompt concurrently via the batch
// storage path, returning the assigned NodeIds in input order. Failure
// of any one write fails the whole batch with the first error; prompts
// already written are not rolled back (see DESIGN.md "Open Question
// decisions"). Edge autowiring (PartOf/Follows) is computed per-item
// sequentially before the concurrent write, since it depends on
// session-local ordering.
func (e *Engine) AddPromptsBatch(ctx context.Context, items []PromptInput) ([]ids.NodeID, error) {
	nodes := make([]*graph.Node, len(items))
	edges := []*graph.Edge{}
	priorBySession := map[ids.SessionID]*graph.Prompt{}

	for i, item := range items {
		if _, err := e.GetSession(ctx, item.SessionID); err != nil {
			return nil, err
		}
		session, _ := e.cachedSession(item.SessionID)
		prior, ok := priorBySession[item.SessionID]
		if !ok {
			p, err := e.mostRecentPrompt(ctx, item.SessionID)
			if err != nil {
				return nil, err
			}
			prior = p
		}

		p := graph.NewPrompt(item.SessionID, item.Content)
		if item.Metadata != nil {
			p.Metadata = *item.Metadata
		}
		nodes[i] = graph.WrapPrompt(p)
		edges = append(edges, graph.NewEdge(graph.EdgeTypePartOf, p.NodeID, session.NodeID))
		if prior != nil && prior.Timestamp.Before(p.Timestamp) {
			edges = append(edges, graph.NewEdge(graph.EdgeTypeFollows, p.NodeID, prior.NodeID))
		}
		priorBySession[item.SessionID] = p
	}

	assigned, err := e.storage.StoreNodesBatch(ctx, nodes)
	if err != nil {
		return nil, err
	}
	if _, err := e.storage.StoreEdgesBatch(ctx, edges); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		e.cache.PutNode(n)
		e.recorder.IncNodesCreated(string(graph.NodeTypePrompt))
		e.recorder.IncPromptsSubmitted()
	}
	return assigned, nil
}

// --- Responses ------------------------------------------------------------

// AddResponse writes the Response node and autowires a RespondsTo edge
// back to the Prompt, recording response_generated and a write-latency
// observation, and emitting ResponseGenerated.
func (e *Engine) AddResponse(ctx context.Context, promptID ids.NodeID, content string, usage graph.TokenUsage, metadata *graph.ResponseMetadata) (ids.NodeID, error) {
	start := time.Now()
	r := graph.NewResponse(promptID, content, usage)
	if metadata != nil {
		r.Metadata = *metadata
	}
	node := graph.WrapResponse(r)
	if err := e.storage.PutNode(ctx, node); err != nil {
		return ids.NilNodeID, err
	}
	respondsTo := graph.NewEdge(graph.EdgeTypeRespondsTo, r.NodeID, promptID)
	if err := e.storage.PutEdge(ctx, respondsTo); err != nil {
		return ids.NilNodeID, err
	}

	e.cache.PutNode(node)
	e.recorder.IncNodesCreated(string(graph.NodeTypeResponse))
	e.recorder.IncResponsesGenerated()
	e.recorder.ObserveWriteLatency(time.Since(start))
	e.publish(events.Event{Kind: events.KindResponseGenerated, NodeID: r.NodeID, Detail: "response generated"})
	return r.NodeID, nil
}

// ResponseInput is one item of an AddResponsesBatch call.
type ResponseInput struct {
	PromptID ids.NodeID
	Content  string
	Usage    graph.TokenUsage
	Metadata *graph.ResponseMetadata
}

// AddResponsesBatch fans out ResponseInput items concurrently, returning
// assigned NodeIds in input order.
func (e *Engine) AddResponsesBatch(ctx context.Context, items []ResponseInput) ([]ids.NodeID, error) {
	nodes := make([]*graph.Node, len(items))
	edges := make([]*graph.Edge, len(items))
	for i, item := range items {
		r := graph.NewResponse(item.PromptID, item.Content, item.Usage)
		if item.Metadata != nil {
			r.Metadata = *item.Metadata
		}
		nodes[i] = graph.WrapResponse(r)
		edges[i] = graph.NewEdge(graph.EdgeTypeRespondsTo, r.NodeID, item.PromptID)
	}
	assigned, err := e.storage.StoreNodesBatch(ctx, nodes)
	if err != nil {
		return nil, err
	}
	if _, err := e.storage.StoreEdgesBatch(ctx, edges); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		e.cache.PutNode(n)
		e.recorder.IncNodesCreated(string(graph.NodeTypeResponse))
		e.recorder.IncResponsesGenerated()
	}
	return assigned, nil
}

// ConversationInput is a prompt, plus an optional immediate response,
// for CreateSessionsBatch/AddConversationsBatch-style fan-out calls.
type ConversationInput struct {
	SessionID ids.SessionID
	Prompt    PromptInput
	Response  *ResponseInput
}

// AddConversationsBatch creates a prompt (and, if supplied, its
// response) for each item, fanning the writes out concurrently per the
// same batch contract as AddPromptsBatch/AddResponsesBatch.
func (e *Engine) AddConversationsBatch(ctx context.Context, items []ConversationInput) ([]ids.NodeID, error) {
	promptIDs, err := e.AddPromptsBatch(ctx, mapSlice(items, func(c ConversationInput) PromptInput { return c.Prompt }))
	if err != nil {
		return nil, err
	}
	var responseItems []ResponseInput
	for i, item := range items {
		if item.Response != nil {
			r := *item.Response
			r.PromptID = promptIDs[i]
			responseItems = append(responseItems, r)
		}
	}
	if len(responseItems) > 0 {
		if _, err := e.AddResponsesBatch(ctx, responseItems); err != nil {
			return nil, err
		}
	}
	return promptIDs, nil
}

func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// CreateSessionsBatch creates a fresh session per metadata item,
// fanning the writes out via the batch storage path.
func (e *Engine) CreateSessionsBatch(ctx context.Context, metadataItems []map[string]string) ([]ids.SessionID, error) {
	sessions := make([]*graph.Session, len(metadataItems))
	nodes := make([]*graph.Node, len(metadataItems))
	for i, md := range metadataItems {
		s := graph.NewSession(md)
		sessions[i] = s
		nodes[i] = graph.WrapSession(s)
	}
	if _, err := e.storage.StoreNodesBatch(ctx, nodes); err != nil {
		return nil, err
	}
	out := make([]ids.SessionID, len(sessions))
	for i, s := range sessions {
		e.cache.PutNode(nodes[i])
		e.cacheSession(s)
		e.recorder.IncNodesCreated(string(graph.NodeTypeSession))
		out[i] = s.ID
	}
	return out, nil
}

// --- Tool invocations ---------------------------------------------------

// AddToolInvocation writes the ToolInvocation node (starting in status
// pending) and autowires an Invokes edge from responseID to the new tool.
func (e *Engine) AddToolInvocation(ctx context.Context, responseID ids.NodeID, toolName string, parameters map[string]any) (ids.NodeID, error) {
	t := graph.NewToolInvocation(responseID, toolName, parameters)
	node := graph.WrapToolInvocation(t)
	if err := e.storage.PutNode(ctx, node); err != nil {
		return ids.NilNodeID, err
	}
	invokes := graph.NewEdge(graph.EdgeTypeInvokes, responseID, t.NodeID)
	if err := e.storage.PutEdge(ctx, invokes); err != nil {
		return ids.NilNodeID, err
	}
	e.cache.PutNode(node)
	e.recorder.IncNodesCreated(string(graph.NodeTypeToolInvocation))
	e.recorder.IncToolsInvoked()
	return t.NodeID, nil
}

// UpdateToolInvocation reads the existing node (erroring if it is not a
// ToolInvocation), mutates status/result-or-error/duration, invalidates
// the node's cache entry, and writes it back.
func (e *Engine) UpdateToolInvocation(ctx context.Context, id ids.NodeID, success bool, result map[string]any, errMsg string, durationMs uint64) error {
	node, err := e.GetNode(ctx, id)
	if err != nil {
		return err
	}
	if node == nil {
		return errs.NodeNotFound(id.String())
	}
	if node.Type != graph.NodeTypeToolInvocation {
		return errs.InvalidNodeType(string(graph.NodeTypeToolInvocation), string(node.Type))
	}
	if success {
		node.ToolInvocation.MarkSuccess(result, durationMs)
	} else {
		node.ToolInvocation.MarkFailed(errMsg, durationMs)
	}
	if err := e.storage.PutNode(ctx, node); err != nil {
		return err
	}
	e.cache.InvalidateNode(id)
	return nil
}

// --- Agents ---------------------------------------------------------------

// AddAgent writes a new Agent node.
func (e *Engine) AddAgent(ctx context.Context, a *graph.Agent) error {
	node := graph.WrapAgent(a)
	if err := e.storage.PutNode(ctx, node); err != nil {
		return err
	}
	e.cache.PutNode(node)
	e.recorder.IncNodesCreated(string(graph.NodeTypeAgent))
	return nil
}

// UpdateAgent writes a (presumably mutated) Agent node back and
// invalidates its cache entry.
func (e *Engine) UpdateAgent(ctx context.Context, a *graph.Agent) error {
	node := graph.WrapAgent(a)
	if err := e.storage.PutNode(ctx, node); err != nil {
		return err
	}
	e.cache.InvalidateNode(a.NodeID)
	e.cache.PutNode(node)
	return nil
}

// AssignAgentToPrompt autowires a HandledBy edge from promptID to
// agentNodeID.
func (e *Engine) AssignAgentToPrompt(ctx context.Context, promptID, agentNodeID ids.NodeID) error {
	edge := graph.NewEdge(graph.EdgeTypeHandledBy, promptID, agentNodeID)
	if err := e.storage.PutEdge(ctx, edge); err != nil {
		return err
	}
	e.recorder.IncEdgesCreated(string(graph.EdgeTypeHandledBy))
	return nil
}

// TransferToAgent autowires a TransfersTo edge from responseID to
// agentNodeID, recording agent_handoffs.
func (e *Engine) TransferToAgent(ctx context.Context, responseID, agentNodeID ids.NodeID) error {
	edge := graph.NewEdge(graph.EdgeTypeTransfersTo, responseID, agentNodeID)
	if err := e.storage.PutEdge(ctx, edge); err != nil {
		return err
	}
	e.recorder.IncEdgesCreated(string(graph.EdgeTypeTransfersTo))
	e.recorder.IncAgentHandoffs()
	return nil
}

// --- Templates --------------------------------------------------------------

// CreateTemplate writes a new Template node.
func (e *Engine) CreateTemplate(ctx context.Context, t *graph.Template) error {
	node := graph.WrapTemplate(t)
	if err := e.storage.PutNode(ctx, node); err != nil {
		return err
	}
	e.cache.PutNode(node)
	e.recorder.IncNodesCreated(string(graph.NodeTypeTemplate))
	return nil
}

// UpdateTemplate writes a (presumably mutated) Template node back and
// invalidates its cache entry.
func (e *Engine) UpdateTemplate(ctx context.Context, t *graph.Template) error {
	node := graph.WrapTemplate(t)
	if err := e.storage.PutNode(ctx, node); err != nil {
		return err
	}
	e.cache.InvalidateNode(t.NodeID)
	e.cache.PutNode(node)
	return nil
}

// CreateTemplateFromParent reads the parent Template, sets
// child.InheritanceDepth to the parent's depth + 1, writes child, and
// autowires an Inherits edge child -> parentNodeID carrying that depth.
func (e *Engine) CreateTemplateFromParent(ctx context.Context, child *graph.Template, parentNodeID ids.NodeID) error {
	parent, err := e.GetNode(ctx, parentNodeID)
	if err != nil {
		return err
	}
	if parent == nil {
		return errs.NodeNotFound(parentNodeID.String())
	}
	if parent.Type != graph.NodeTypeTemplate {
		return errs.InvalidNodeType(string(graph.NodeTypeTemplate), string(parent.Type))
	}
	child.InheritanceDepth = parent.Template.InheritanceDepth + 1
	if err := e.CreateTemplate(ctx, child); err != nil {
		return err
	}
	edge := graph.NewEdge(graph.EdgeTypeInherits, child.NodeID, parentNodeID)
	if err := edge.SetInheritsProps(graph.InheritsProps{InheritanceDepth: child.InheritanceDepth}); err != nil {
		return err
	}
	if err := e.storage.PutEdge(ctx, edge); err != nil {
		return err
	}
	e.recorder.IncEdgesCreated(string(graph.EdgeTypeInherits))
	return nil
}

// LinkPromptToTemplate autowires an Instantiates edge from promptID to
// templateNodeID, recording template_instantiations.
func (e *Engine) LinkPromptToTemplate(ctx context.Context, promptID, templateNodeID ids.NodeID) error {
	edge := graph.NewEdge(graph.EdgeTypeInstantiates, promptID, templateNodeID)
	if err := e.storage.PutEdge(ctx, edge); err != nil {
		return err
	}
	e.recorder.IncEdgesCreated(string(graph.EdgeTypeInstantiates))
	e.recorder.IncTemplateInstantiations()
	return nil
}

// --- Generic node/edge access -----------------------------------------------

// GetNode is cache-first: on a cache miss it reads the backend,
// populates the cache, records a read-latency observation, and returns
// the node. A genuinely absent node is returned as (nil, nil), not an
// error.
func (e *Engine) GetNode(ctx context.Context, id ids.NodeID) (*graph.Node, error) {
	if n, ok := e.cache.GetNode(id); ok {
		return n, nil
	}
	start := time.Now()
	n, err := e.storage.GetNode(ctx, id)
	if err != nil {
		if nfErr, ok := errs.As(err); ok && nfErr.Kind == errs.KindNodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	e.recorder.ObserveReadLatency(time.Since(start))
	e.cache.PutNode(n)
	return n, nil
}

// GetEdge is cache-first, symmetric with GetNode.
func (e *Engine) GetEdge(ctx context.Context, id ids.EdgeID) (*graph.Edge, error) {
	if ed, ok := e.cache.GetEdge(id); ok {
		return ed, nil
	}
	start := time.Now()
	ed, err := e.storage.GetEdge(ctx, id)
	if err != nil {
		if nfErr, ok := errs.As(err); ok && nfErr.Kind == errs.KindEdgeNotFound {
			return nil, nil
		}
		return nil, err
	}
	e.recorder.ObserveReadLatency(time.Since(start))
	e.cache.PutEdge(ed)
	return ed, nil
}

// AddEdge delegates to the backend, recording edges_created.
func (e *Engine) AddEdge(ctx context.Context, edge *graph.Edge) error {
	if err := e.storage.PutEdge(ctx, edge); err != nil {
		return err
	}
	e.cache.PutEdge(edge)
	e.recorder.IncEdgesCreated(string(edge.Type))
	return nil
}

// GetOutgoingEdges delegates to the backend.
func (e *Engine) GetOutgoingEdges(ctx context.Context, id ids.NodeID) ([]*graph.Edge, error) {
	return e.storage.OutgoingEdges(ctx, id)
}

// GetIncomingEdges delegates to the backend.
func (e *Engine) GetIncomingEdges(ctx context.Context, id ids.NodeID) ([]*graph.Edge, error) {
	return e.storage.IncomingEdges(ctx, id)
}

// GetSessionNodes delegates to the backend.
func (e *Engine) GetSessionNodes(ctx context.Context, sid ids.SessionID) ([]*graph.Node, error) {
	return e.storage.SessionNodes(ctx, sid)
}

// CountSessionNodes delegates to the backend without materializing any
// node.
func (e *Engine) CountSessionNodes(ctx context.Context, sid ids.SessionID) (uint64, error) {
	return e.storage.CountSessionNodes(ctx, sid)
}

// SessionNodesStream delegates to the backend's lazy per-node stream.
func (e *Engine) SessionNodesStream(ctx context.Context, sid ids.SessionID) *asyncstore.NodeStream {
	return e.storage.SessionNodesStream(ctx, sid)
}

// GetNodesBatch preserves input order; a missing id maps to a nil entry
// rather than failing the whole batch.
func (e *Engine) GetNodesBatch(ctx context.Context, nodeIDs []ids.NodeID) ([]*graph.Node, error) {
	out := make([]*graph.Node, len(nodeIDs))
	for i, id := range nodeIDs {
		n, err := e.GetNode(ctx, id)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// StoreNodesBatch delegates to the backend.
func (e *Engine) StoreNodesBatch(ctx context.Context, nodes []*graph.Node) ([]ids.NodeID, error) {
	assigned, err := e.storage.StoreNodesBatch(ctx, nodes)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		e.cache.PutNode(n)
	}
	return assigned, nil
}

// StoreEdgesBatch delegates to the backend.
func (e *Engine) StoreEdgesBatch(ctx context.Context, edges []*graph.Edge) ([]ids.EdgeID, error) {
	assigned, err := e.storage.StoreEdgesBatch(ctx, edges)
	if err != nil {
		return nil, err
	}
	for _, ed := range edges {
		e.cache.PutEdge(ed)
	}
	return assigned, nil
}

// DeleteNodesBatch deletes every node by id. This is fire-and-forget
// with respect to associated edges: per the documented design choice
// (DESIGN.md "Open Question decisions"), outgoing_index/incoming_index
// entries referencing a deleted node are left dangling and readers
// tolerate them.
func (e *Engine) DeleteNodesBatch(ctx context.Context, nodeIDs []ids.NodeID) error {
	for _, id := range nodeIDs {
		if err := e.storage.DeleteNode(ctx, id); err != nil {
			return err
		}
		e.cache.InvalidateNode(id)
	}
	return nil
}
