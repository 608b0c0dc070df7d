// Package graph holds the tagged-union domain model: the six node variants,
// the nine edge types with their typed properties, and the invariants that
// construction enforces. Node-to-node relationships are represented purely
// by ID plus separate index structures (see the kv package) — node structs
// never hold references to other nodes.
package graph

import (
	"time"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

// NodeType discriminates the six node variants.
type NodeType string

const (
	NodeTypeSession        NodeType = "session"
	NodeTypePrompt         NodeType = "prompt"
	NodeTypeResponse       NodeType = "response"
	NodeTypeToolInvocation NodeType = "tool_invocation"
	NodeTypeAgent          NodeType = "agent"
	NodeTypeTemplate       NodeType = "template"
)

// Node is a tagged union over the six node variants. Exactly one of the
// pointer fields is non-nil, selected by Type. Downcasting through the
// wrong accessor is a programmer error the engine reports as
// errs.KindInvalidNodeType rather than panicking.
type Node struct {
	Type           NodeType
	Session        *Session
	Prompt         *Prompt
	Response       *Response
	ToolInvocation *ToolInvocation
	Agent          *Agent
	Template       *Template
}

// ID returns the primary NodeId regardless of variant.
func (n *Node) ID() ids.NodeID {
	switch n.Type {
	case NodeTypeSession:
		return n.Session.NodeID
	case NodeTypePrompt:
		return n.Prompt.NodeID
	case NodeTypeResponse:
		return n.Response.NodeID
	case NodeTypeToolInvocation:
		return n.ToolInvocation.NodeID
	case NodeTypeAgent:
		return n.Agent.NodeID
	case NodeTypeTemplate:
		return n.Template.NodeID
	default:
		return ids.NilNodeID
	}
}

// PrimaryTimestamp returns the per-variant timestamp used for time-window
// filtering and sort order: Prompt.Timestamp, Response.Timestamp,
// Session.CreatedAt, ToolInvocation.Timestamp, Agent.CreatedAt,
// Template.CreatedAt.
func (n *Node) PrimaryTimestamp() time.Time {
	switch n.Type {
	case NodeTypeSession:
		return n.Session.CreatedAt
	case NodeTypePrompt:
		return n.Prompt.Timestamp
	case NodeTypeResponse:
		return n.Response.Timestamp
	case NodeTypeToolInvocation:
		return n.ToolInvocation.Timestamp
	case NodeTypeAgent:
		return n.Agent.CreatedAt
	case NodeTypeTemplate:
		return n.Template.CreatedAt
	default:
		return time.Time{}
	}
}

// WrapSession wraps a Session as a tagged Node.
func WrapSession(s *Session) *Node { return &Node{Type: NodeTypeSession, Session: s} }

// WrapPrompt wraps a Prompt as a tagged Node.
func WrapPrompt(p *Prompt) *Node { return &Node{Type: NodeTypePrompt, Prompt: p} }

// WrapResponse wraps a Response as a tagged Node.
func WrapResponse(r *Response) *Node { return &Node{Type: NodeTypeResponse, Response: r} }

// WrapToolInvocation wraps a ToolInvocation as a tagged Node.
func WrapToolInvocation(t *ToolInvocation) *Node {
	return &Node{Type: NodeTypeToolInvocation, ToolInvocation: t}
}

// WrapAgent wraps an Agent as a tagged Node.
func WrapAgent(a *Agent) *Node { return &Node{Type: NodeTypeAgent, Agent: a} }

// WrapTemplate wraps a Template as a tagged Node.
func WrapTemplate(t *Template) *Node { return &Node{Type: NodeTypeTemplate, Template: t} }

// Session groups related Prompts/Responses/ToolInvocations of a single
// conversation for the purpose of session-scoped queries.
type Session struct {
	NodeID    ids.NodeID
	ID        ids.SessionID
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]string
	Tags      []string
}

// NewSession constructs a Session with fresh IDs and metadata/tags
// defaulted to empty maps/slices, never nil, so callers never have to
// nil-check before indexing.
func NewSession(metadata map[string]string) *Session {
	now := time.Now().UTC()
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &Session{
		NodeID:    ids.NewNodeID(),
		ID:        ids.NewSessionID(),
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  metadata,
		Tags:      []string{},
	}
}

// Touch updates UpdatedAt, preserving the invariant UpdatedAt >= CreatedAt.
func (s *Session) Touch() {
	now := time.Now().UTC()
	if now.Before(s.CreatedAt) {
		now = s.CreatedAt
	}
	s.UpdatedAt = now
}

// AddTag appends tag if not already present.
func (s *Session) AddTag(tag string) {
	for _, t := range s.Tags {
		if t == tag {
			return
		}
	}
	s.Tags = append(s.Tags, tag)
}

// PromptMetadata carries model-call parameters associated with a Prompt.
type PromptMetadata struct {
	Model          string
	Temperature    float32
	MaxTokens      *int
	ToolsAvailable []string
	Custom         map[string]string
}

// DefaultPromptMetadata returns the zero-value defaults used when a
// caller supplies no explicit metadata.
func DefaultPromptMetadata() PromptMetadata {
	return PromptMetadata{
		Model:          "unknown",
		Temperature:    0.7,
		ToolsAvailable: []string{},
		Custom:         map[string]string{},
	}
}

// Prompt is a user input recorded within a Session.
type Prompt struct {
	NodeID     ids.NodeID
	SessionID  ids.SessionID
	Timestamp  time.Time
	TemplateID *ids.TemplateID
	Content    string
	Variables  map[string]string
	Metadata   PromptMetadata
}

// NewPrompt constructs a Prompt with a fresh NodeID and default metadata.
// session_id existence is the engine's responsibility, not the
// constructor's — see engine.Engine.AddPrompt.
func NewPrompt(sessionID ids.SessionID, content string) *Prompt {
	return &Prompt{
		NodeID:    ids.NewNodeID(),
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Content:   content,
		Variables: map[string]string{},
		Metadata:  DefaultPromptMetadata(),
	}
}

// TokenUsage tracks prompt/completion/total token counts for a Response.
// Total is always PromptTokens + CompletionTokens (invariant enforced by
// NewTokenUsage, the only constructor).
type TokenUsage struct {
	PromptTokens     uint32
	CompletionTokens uint32
	TotalTokens      uint32
}

// NewTokenUsage builds a TokenUsage with Total derived from the two parts.
func NewTokenUsage(prompt, completion uint32) TokenUsage {
	return TokenUsage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

// ResponseMetadata carries generation metadata associated with a Response.
type ResponseMetadata struct {
	Model        string
	FinishReason string
	LatencyMs    uint64
	Custom       map[string]string
}

// DefaultResponseMetadata returns the zero-value defaults used when a
// caller supplies no explicit metadata.
func DefaultResponseMetadata() ResponseMetadata {
	return ResponseMetadata{Model: "unknown", FinishReason: "stop", Custom: map[string]string{}}
}

// Response is a model output replying to a Prompt. Immutable after create.
type Response struct {
	NodeID    ids.NodeID
	PromptID  ids.NodeID
	Timestamp time.Time
	Content   string
	Usage     TokenUsage
	Metadata  ResponseMetadata
}

// NewResponse constructs a Response with a fresh NodeID.
func NewResponse(promptID ids.NodeID, content string, usage TokenUsage) *Response {
	return &Response{
		NodeID:    ids.NewNodeID(),
		PromptID:  promptID,
		Timestamp: time.Now().UTC(),
		Content:   content,
		Usage:     usage,
		Metadata:  DefaultResponseMetadata(),
	}
}

// ToolStatus is the lifecycle state of a ToolInvocation.
type ToolStatus string

const (
	ToolStatusPending ToolStatus = "pending"
	ToolStatusSuccess ToolStatus = "success"
	ToolStatusFailed  ToolStatus = "failed"
)

// ToolInvocation records a function call issued during a Response.
type ToolInvocation struct {
	NodeID     ids.NodeID
	ResponseID ids.NodeID
	ToolName   string
	Parameters map[string]any
	Result     map[string]any
	Error      *string
	DurationMs uint64
	Timestamp  time.Time
	Status     ToolStatus
	RetryCount uint32
	Metadata   map[string]string
}

// NewToolInvocation constructs a pending ToolInvocation.
func NewToolInvocation(responseID ids.NodeID, toolName string, parameters map[string]any) *ToolInvocation {
	if parameters == nil {
		parameters = map[string]any{}
	}
	return &ToolInvocation{
		NodeID:     ids.NewNodeID(),
		ResponseID: responseID,
		ToolName:   toolName,
		Parameters: parameters,
		Timestamp:  time.Now().UTC(),
		Status:     ToolStatusPending,
		Metadata:   map[string]string{},
	}
}

// MarkSuccess transitions the invocation to success, recording the result.
func (t *ToolInvocation) MarkSuccess(result map[string]any, durationMs uint64) {
	t.Status = ToolStatusSuccess
	t.Result = result
	t.Error = nil
	t.DurationMs = durationMs
}

// MarkFailed transitions the invocation to failed, recording the error.
func (t *ToolInvocation) MarkFailed(errMsg string, durationMs uint64) {
	t.Status = ToolStatusFailed
	t.Error = &errMsg
	t.Result = nil
	t.DurationMs = durationMs
}

// RecordRetry increments RetryCount and refreshes Timestamp.
func (t *ToolInvocation) RecordRetry() {
	t.RetryCount++
	t.Timestamp = time.Now().UTC()
}

// IsPending reports whether the invocation's Status is still pending.
func (t *ToolInvocation) IsPending() bool { return t.Status == ToolStatusPending }

// AgentStatus is the operational state of an Agent.
type AgentStatus string

const (
	AgentStatusActive     AgentStatus = "active"
	AgentStatusIdle       AgentStatus = "idle"
	AgentStatusBusy       AgentStatus = "busy"
	AgentStatusPaused     AgentStatus = "paused"
	AgentStatusTerminated AgentStatus = "terminated"
)

// CanAcceptTasks reports whether an agent in this status may be assigned
// new work.
func (s AgentStatus) CanAcceptTasks() bool {
	return s == AgentStatusActive || s == AgentStatusIdle
}

// AgentConfig carries generation parameters for an Agent.
type AgentConfig struct {
	Temperature    float32
	MaxTokens      int
	TimeoutSeconds uint64
	MaxRetries     uint32
	ToolsEnabled   []string
}

// DefaultAgentConfig returns the zero-value defaults used when a caller
// supplies no explicit config.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{Temperature: 0.7, MaxTokens: 2000, TimeoutSeconds: 300, MaxRetries: 3, ToolsEnabled: []string{}}
}

// AgentMetrics tracks rolling performance counters for an Agent.
type AgentMetrics struct {
	TotalPrompts     uint64
	SuccessfulTasks  uint64
	FailedTasks      uint64
	AverageLatencyMs float64
	TotalTokensUsed  uint64
}

// SuccessRate returns the percentage of completed tasks that succeeded.
func (m AgentMetrics) SuccessRate() float64 {
	total := m.SuccessfulTasks + m.FailedTasks
	if total == 0 {
		return 0
	}
	return (float64(m.SuccessfulTasks) / float64(total)) * 100
}

// Record folds one completed invocation into the running metrics, updating
// AverageLatencyMs via the incremental-mean formula
// (avg*n + new) / (n+1) over the prior TotalPrompts count.
func (m *AgentMetrics) Record(success bool, latencyMs uint64, tokens uint64) {
	n := m.TotalPrompts
	m.TotalPrompts++
	if success {
		m.SuccessfulTasks++
	} else {
		m.FailedTasks++
	}
	if n == 0 {
		m.AverageLatencyMs = float64(latencyMs)
	} else {
		m.AverageLatencyMs = (m.AverageLatencyMs*float64(n) + float64(latencyMs)) / float64(n+1)
	}
	m.TotalTokensUsed += tokens
}

// Agent is a named, capability-tagged actor a Prompt may be delegated to.
type Agent struct {
	ID           ids.AgentID
	NodeID       ids.NodeID
	Name         string
	Role         string
	Capabilities []string
	Model        string
	CreatedAt    time.Time
	LastActive   time.Time
	Status       AgentStatus
	Config       AgentConfig
	Metrics      AgentMetrics
	Tags         []string
}

// NewAgent constructs an Agent with fresh IDs, default config, and status Idle.
func NewAgent(name, role string, capabilities []string) *Agent {
	now := time.Now().UTC()
	if capabilities == nil {
		capabilities = []string{}
	}
	return &Agent{
		ID:           ids.NewAgentID(),
		NodeID:       ids.NewNodeID(),
		Name:         name,
		Role:         role,
		Capabilities: capabilities,
		Model:        "gpt-4",
		CreatedAt:    now,
		LastActive:   now,
		Status:       AgentStatusIdle,
		Config:       DefaultAgentConfig(),
		Tags:         []string{},
	}
}

// SetStatus transitions the agent's status and touches LastActive.
func (a *Agent) SetStatus(status AgentStatus) {
	a.Status = status
	a.LastActive = time.Now().UTC()
}

// HasCapability reports whether the agent declares the given capability.
func (a *Agent) HasCapability(capability string) bool {
	for _, c := range a.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Template is a parameterized, versioned prompt string.
type Template struct {
	ID          ids.TemplateID
	NodeID      ids.NodeID
	Version     Version
	Name        string
	Description string
	Template    string
	Variables   []VariableSpec
	ParentID    *ids.TemplateID
	// InheritanceDepth is 0 for root templates and parent.InheritanceDepth+1
	// for templates created via engine.CreateTemplateFromParent.
	InheritanceDepth uint32
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Author           string
	UsageCount       uint64
	Tags             []string
	Metadata         map[string]string
}

// VariableSpec describes one template placeholder and its validation rule.
type VariableSpec struct {
	Name             string
	TypeHint         string
	Required         bool
	Default          *string
	ValidationRegexp string
	Description      string
}

// NewTemplate constructs a Template at version 1.0.0 with fresh IDs.
func NewTemplate(name, template string, variables []VariableSpec) *Template {
	now := time.Now().UTC()
	if variables == nil {
		variables = []VariableSpec{}
	}
	return &Template{
		ID:        ids.NewTemplateID(),
		NodeID:    ids.NewNodeID(),
		Version:   Version{Major: 1, Minor: 0, Patch: 0},
		Name:      name,
		Template:  template,
		Variables: variables,
		CreatedAt: now,
		UpdatedAt: now,
		Author:    "unknown",
		Tags:      []string{},
		Metadata:  map[string]string{},
	}
}

// RecordUsage increments UsageCount and touches UpdatedAt.
func (t *Template) RecordUsage() {
	t.UsageCount++
	t.UpdatedAt = time.Now().UTC()
}

// VersionLevel selects which component BumpVersion increments.
type VersionLevel int

const (
	VersionLevelMajor VersionLevel = iota
	VersionLevelMinor
	VersionLevelPatch
)

// BumpVersion advances the template's semantic version and touches
// UpdatedAt. Version always increases monotonically per template lineage
// since every bump strictly increases (Major, Minor, Patch) lexicographically.
func (t *Template) BumpVersion(level VersionLevel) {
	switch level {
	case VersionLevelMajor:
		t.Version.BumpMajor()
	case VersionLevelMinor:
		t.Version.BumpMinor()
	case VersionLevelPatch:
		t.Version.BumpPatch()
	}
	t.UpdatedAt = time.Now().UTC()
}
