// Package codec serializes graph.Node and graph.Edge values to and from
// bytes under two interchangeable formats: a compact binary format
// (msgpack, the default) and a self-describing text format (JSON via
// sonic, for debugging). Both formats serialize through the same
// intermediate nodeRecord/edgeRecord representation so a tagged-union
// variant never needs format-specific branches of its own.
package codec

import (
	"time"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

// nodeRecord is the wire shape for every node variant: Kind selects which
// of the per-variant fields are populated. This is the tagged-union
// encoding the binary and text formats both build on.
type nodeRecord struct {
	Kind string `msgpack:"kind" json:"kind"`

	// Session
	SessionNodeID  string            `msgpack:"session_node_id,omitempty" json:"session_node_id,omitempty"`
	SessionID      string            `msgpack:"session_id,omitempty" json:"session_id,omitempty"`
	SessionCreated int64             `msgpack:"session_created,omitempty" json:"-"`
	SessionUpdated int64             `msgpack:"session_updated,omitempty" json:"-"`
	SessionCreatedText string        `msgpack:"-" json:"session_created,omitempty"`
	SessionUpdatedText string        `msgpack:"-" json:"session_updated,omitempty"`
	SessionMetadata map[string]string `msgpack:"session_metadata,omitempty" json:"session_metadata,omitempty"`
	SessionTags     []string          `msgpack:"session_tags,omitempty" json:"session_tags,omitempty"`

	// Prompt
	PromptNodeID   string            `msgpack:"prompt_node_id,omitempty" json:"prompt_node_id,omitempty"`
	PromptSession  string            `msgpack:"prompt_session,omitempty" json:"prompt_session,omitempty"`
	PromptTime     int64             `msgpack:"prompt_time,omitempty" json:"-"`
	PromptTimeText string            `msgpack:"-" json:"prompt_time,omitempty"`
	PromptTemplate string            `msgpack:"prompt_template,omitempty" json:"prompt_template,omitempty"`
	PromptContent  string            `msgpack:"prompt_content,omitempty" json:"prompt_content,omitempty"`
	PromptVariables map[string]string `msgpack:"prompt_variables,omitempty" json:"prompt_variables,omitempty"`
	PromptModel     string            `msgpack:"prompt_model,omitempty" json:"prompt_model,omitempty"`
	PromptTemperature float32         `msgpack:"prompt_temperature,omitempty" json:"prompt_temperature,omitempty"`
	PromptMaxTokens   *int            `msgpack:"prompt_max_tokens,omitempty" json:"prompt_max_tokens,omitempty"`
	PromptTools       []string        `msgpack:"prompt_tools,omitempty" json:"prompt_tools,omitempty"`
	PromptCustom      map[string]string `msgpack:"prompt_custom,omitempty" json:"prompt_custom,omitempty"`

	// Response
	ResponseNodeID  string `msgpack:"response_node_id,omitempty" json:"response_node_id,omitempty"`
	ResponsePrompt  string `msgpack:"response_prompt,omitempty" json:"response_prompt,omitempty"`
	ResponseTime     int64  `msgpack:"response_time,omitempty" json:"-"`
	ResponseTimeText string `msgpack:"-" json:"response_time,omitempty"`
	ResponseContent string `msgpack:"response_content,omitempty" json:"response_content,omitempty"`
	ResponsePromptTokens     uint32 `msgpack:"response_prompt_tokens,omitempty" json:"response_prompt_tokens,omitempty"`
	ResponseCompletionTokens uint32 `msgpack:"response_completion_tokens,omitempty" json:"response_completion_tokens,omitempty"`
	ResponseTotalTokens      uint32 `msgpack:"response_total_tokens,omitempty" json:"response_total_tokens,omitempty"`
	ResponseModel        string            `msgpack:"response_model,omitempty" json:"response_model,omitempty"`
	ResponseFinishReason string            `msgpack:"response_finish_reason,omitempty" json:"response_finish_reason,omitempty"`
	ResponseLatencyMs    uint64            `msgpack:"response_latency_ms,omitempty" json:"response_latency_ms,omitempty"`
	ResponseCustom       map[string]string `msgpack:"response_custom,omitempty" json:"response_custom,omitempty"`

	// ToolInvocation
	ToolNodeID     string         `msgpack:"tool_node_id,omitempty" json:"tool_node_id,omitempty"`
	ToolResponseID string         `msgpack:"tool_response_id,omitempty" json:"tool_response_id,omitempty"`
	ToolName       string         `msgpack:"tool_name,omitempty" json:"tool_name,omitempty"`
	ToolParameters map[string]any `msgpack:"tool_parameters,omitempty" json:"tool_parameters,omitempty"`
	ToolResult     map[string]any `msgpack:"tool_result,omitempty" json:"tool_result,omitempty"`
	ToolError      *string        `msgpack:"tool_error,omitempty" json:"tool_error,omitempty"`
	ToolDurationMs uint64         `msgpack:"tool_duration_ms,omitempty" json:"tool_duration_ms,omitempty"`
	ToolTime       int64          `msgpack:"tool_time,omitempty" json:"-"`
	ToolTimeText   string         `msgpack:"-" json:"tool_time,omitempty"`
	ToolStatus     string         `msgpack:"tool_status,omitempty" json:"tool_status,omitempty"`
	ToolRetryCount uint32         `msgpack:"tool_retry_count,omitempty" json:"tool_retry_count,omitempty"`
	ToolMetadata   map[string]string `msgpack:"tool_metadata,omitempty" json:"tool_metadata,omitempty"`

	// Agent
	AgentID           string            `msgpack:"agent_id,omitempty" json:"agent_id,omitempty"`
	AgentNodeID       string            `msgpack:"agent_node_id,omitempty" json:"agent_node_id,omitempty"`
	AgentName         string            `msgpack:"agent_name,omitempty" json:"agent_name,omitempty"`
	AgentRole         string            `msgpack:"agent_role,omitempty" json:"agent_role,omitempty"`
	AgentCapabilities []string          `msgpack:"agent_capabilities,omitempty" json:"agent_capabilities,omitempty"`
	AgentModel        string            `msgpack:"agent_model,omitempty" json:"agent_model,omitempty"`
	AgentCreated      int64             `msgpack:"agent_created,omitempty" json:"-"`
	AgentCreatedText  string            `msgpack:"-" json:"agent_created,omitempty"`
	AgentLastActive   int64             `msgpack:"agent_last_active,omitempty" json:"-"`
	AgentLastActiveText string         `msgpack:"-" json:"agent_last_active,omitempty"`
	AgentStatus       string            `msgpack:"agent_status,omitempty" json:"agent_status,omitempty"`
	AgentTemperature  float32           `msgpack:"agent_temperature,omitempty" json:"agent_temperature,omitempty"`
	AgentMaxTokens    int               `msgpack:"agent_max_tokens,omitempty" json:"agent_max_tokens,omitempty"`
	AgentTimeoutSeconds uint64          `msgpack:"agent_timeout_seconds,omitempty" json:"agent_timeout_seconds,omitempty"`
	AgentMaxRetries   uint32            `msgpack:"agent_max_retries,omitempty" json:"agent_max_retries,omitempty"`
	AgentToolsEnabled []string          `msgpack:"agent_tools_enabled,omitempty" json:"agent_tools_enabled,omitempty"`
	AgentTotalPrompts     uint64        `msgpack:"agent_total_prompts,omitempty" json:"agent_total_prompts,omitempty"`
	AgentSuccessfulTasks  uint64        `msgpack:"agent_successful_tasks,omitempty" json:"agent_successful_tasks,omitempty"`
	AgentFailedTasks      uint64        `msgpack:"agent_failed_tasks,omitempty" json:"agent_failed_tasks,omitempty"`
	AgentAverageLatencyMs float64       `msgpack:"agent_average_latency_ms,omitempty" json:"agent_average_latency_ms,omitempty"`
	AgentTotalTokensUsed  uint64        `msgpack:"agent_total_tokens_used,omitempty" json:"agent_total_tokens_used,omitempty"`
	AgentTags         []string          `msgpack:"agent_tags,omitempty" json:"agent_tags,omitempty"`

	// Template
	TemplateID          string         `msgpack:"template_id,omitempty" json:"template_id,omitempty"`
	TemplateNodeID      string         `msgpack:"template_node_id,omitempty" json:"template_node_id,omitempty"`
	TemplateVersion     string         `msgpack:"template_version,omitempty" json:"template_version,omitempty"`
	TemplateName        string         `msgpack:"template_name,omitempty" json:"template_name,omitempty"`
	TemplateDescription string         `msgpack:"template_description,omitempty" json:"template_description,omitempty"`
	TemplateBody        string         `msgpack:"template_body,omitempty" json:"template_body,omitempty"`
	TemplateVariables   []variableSpecRecord `msgpack:"template_variables,omitempty" json:"template_variables,omitempty"`
	TemplateParentID    string         `msgpack:"template_parent_id,omitempty" json:"template_parent_id,omitempty"`
	TemplateInheritanceDepth uint32    `msgpack:"template_inheritance_depth,omitempty" json:"template_inheritance_depth,omitempty"`
	TemplateCreated      int64         `msgpack:"template_created,omitempty" json:"-"`
	TemplateCreatedText  string        `msgpack:"-" json:"template_created,omitempty"`
	TemplateUpdated      int64         `msgpack:"template_updated,omitempty" json:"-"`
	TemplateUpdatedText  string        `msgpack:"-" json:"template_updated,omitempty"`
	TemplateAuthor       string        `msgpack:"template_author,omitempty" json:"template_author,omitempty"`
	TemplateUsageCount   uint64        `msgpack:"template_usage_count,omitempty" json:"template_usage_count,omitempty"`
	TemplateTags         []string      `msgpack:"template_tags,omitempty" json:"template_tags,omitempty"`
	TemplateMetadata     map[string]string `msgpack:"template_metadata,omitempty" json:"template_metadata,omitempty"`
}

type variableSpecRecord struct {
	Name             string  `msgpack:"name" json:"name"`
	TypeHint         string  `msgpack:"type_hint" json:"type_hint"`
	Required         bool    `msgpack:"required" json:"required"`
	Default          *string `msgpack:"default,omitempty" json:"default,omitempty"`
	ValidationRegexp string  `msgpack:"validation_regexp,omitempty" json:"validation_regexp,omitempty"`
	Description      string  `msgpack:"description,omitempty" json:"description,omitempty"`
}

// edgeRecord is the wire shape for an Edge.
type edgeRecord struct {
	ID         string            `msgpack:"id" json:"id"`
	From       string            `msgpack:"from" json:"from"`
	To         string            `msgpack:"to" json:"to"`
	Type       string            `msgpack:"type" json:"type"`
	CreatedAt  int64             `msgpack:"created_at,omitempty" json:"-"`
	CreatedAtText string         `msgpack:"-" json:"created_at,omitempty"`
	Properties map[string]string `msgpack:"properties,omitempty" json:"properties,omitempty"`
}

func toUnixMs(t time.Time) int64 { return t.UnixMilli() }

func fromUnixMs(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func toRFC3339(t time.Time) string { return t.Format(time.RFC3339Nano) }

func fromRFC3339(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func nodeToRecord(n *graph.Node) nodeRecord {
	var r nodeRecord
	r.Kind = string(n.Type)
	switch n.Type {
	case graph.NodeTypeSession:
		s := n.Session
		r.SessionNodeID = s.NodeID.String()
		r.SessionID = s.ID.String()
		r.SessionCreated, r.SessionCreatedText = toUnixMs(s.CreatedAt), toRFC3339(s.CreatedAt)
		r.SessionUpdated, r.SessionUpdatedText = toUnixMs(s.UpdatedAt), toRFC3339(s.UpdatedAt)
		r.SessionMetadata = s.Metadata
		r.SessionTags = s.Tags
	case graph.NodeTypePrompt:
		p := n.Prompt
		r.PromptNodeID = p.NodeID.String()
		r.PromptSession = p.SessionID.String()
		r.PromptTime, r.PromptTimeText = toUnixMs(p.Timestamp), toRFC3339(p.Timestamp)
		if p.TemplateID != nil {
			r.PromptTemplate = p.TemplateID.String()
		}
		r.PromptContent = p.Content
		r.PromptVariables = p.Variables
		r.PromptModel = p.Metadata.Model
		r.PromptTemperature = p.Metadata.Temperature
		r.PromptMaxTokens = p.Metadata.MaxTokens
		r.PromptTools = p.Metadata.ToolsAvailable
		r.PromptCustom = p.Metadata.Custom
	case graph.NodeTypeResponse:
		resp := n.Response
		r.ResponseNodeID = resp.NodeID.String()
		r.ResponsePrompt = resp.PromptID.String()
		r.ResponseTime, r.ResponseTimeText = toUnixMs(resp.Timestamp), toRFC3339(resp.Timestamp)
		r.ResponseContent = resp.Content
		r.ResponsePromptTokens = resp.Usage.PromptTokens
		r.ResponseCompletionTokens = resp.Usage.CompletionTokens
		r.ResponseTotalTokens = resp.Usage.TotalTokens
		r.ResponseModel = resp.Metadata.Model
		r.ResponseFinishReason = resp.Metadata.FinishReason
		r.ResponseLatencyMs = resp.Metadata.LatencyMs
		r.ResponseCustom = resp.Metadata.Custom
	case graph.NodeTypeToolInvocation:
		t := n.ToolInvocation
		r.ToolNodeID = t.NodeID.String()
		r.ToolResponseID = t.ResponseID.String()
		r.ToolName = t.ToolName
		r.ToolParameters = t.Parameters
		r.ToolResult = t.Result
		r.ToolError = t.Error
		r.ToolDurationMs = t.DurationMs
		r.ToolTime, r.ToolTimeText = toUnixMs(t.Timestamp), toRFC3339(t.Timestamp)
		r.ToolStatus = string(t.Status)
		r.ToolRetryCount = t.RetryCount
		r.ToolMetadata = t.Metadata
	case graph.NodeTypeAgent:
		a := n.Agent
		r.AgentID = a.ID.String()
		r.AgentNodeID = a.NodeID.String()
		r.AgentName = a.Name
		r.AgentRole = a.Role
		r.AgentCapabilities = a.Capabilities
		r.AgentModel = a.Model
		r.AgentCreated, r.AgentCreatedText = toUnixMs(a.CreatedAt), toRFC3339(a.CreatedAt)
		r.AgentLastActive, r.AgentLastActiveText = toUnixMs(a.LastActive), toRFC3339(a.LastActive)
		r.AgentStatus = string(a.Status)
		r.AgentTemperature = a.Config.Temperature
		r.AgentMaxTokens = a.Config.MaxTokens
		r.AgentTimeoutSeconds = a.Config.TimeoutSeconds
		r.AgentMaxRetries = a.Config.MaxRetries
		r.AgentToolsEnabled = a.Config.ToolsEnabled
		r.AgentTotalPrompts = a.Metrics.TotalPrompts
		r.AgentSuccessfulTasks = a.Metrics.SuccessfulTasks
		r.AgentFailedTasks = a.Metrics.FailedTasks
		r.AgentAverageLatencyMs = a.Metrics.AverageLatencyMs
		r.AgentTotalTokensUsed = a.Metrics.TotalTokensUsed
		r.AgentTags = a.Tags
	case graph.NodeTypeTemplate:
		t := n.Template
		r.TemplateID = t.ID.String()
		r.TemplateNodeID = t.NodeID.String()
		r.TemplateVersion = t.Version.String()
		r.TemplateName = t.Name
		r.TemplateDescription = t.Description
		r.TemplateBody = t.Template
		r.TemplateVariables = make([]variableSpecRecord, len(t.Variables))
		for i, v := range t.Variables {
			r.TemplateVariables[i] = variableSpecRecord{
				Name: v.Name, TypeHint: v.TypeHint, Required: v.Required,
				Default: v.Default, ValidationRegexp: v.ValidationRegexp, Description: v.Description,
			}
		}
		if t.ParentID != nil {
			r.TemplateParentID = t.ParentID.String()
		}
		r.TemplateInheritanceDepth = t.InheritanceDepth
		r.TemplateCreated, r.TemplateCreatedText = toUnixMs(t.CreatedAt), toRFC3339(t.CreatedAt)
		r.TemplateUpdated, r.TemplateUpdatedText = toUnixMs(t.UpdatedAt), toRFC3339(t.UpdatedAt)
		r.TemplateAuthor = t.Author
		r.TemplateUsageCount = t.UsageCount
		r.TemplateTags = t.Tags
		r.TemplateMetadata = t.Metadata
	}
	return r
}

func recordToNode(r nodeRecord, useText bool) (*graph.Node, error) {
	switch graph.NodeType(r.Kind) {
	case graph.NodeTypeSession:
		nodeID, err := ids.ParseNodeID(r.SessionNodeID)
		if err != nil {
			return nil, err
		}
		sessionID, err := ids.ParseSessionID(r.SessionID)
		if err != nil {
			return nil, err
		}
		s := &graph.Session{
			NodeID: nodeID, ID: sessionID,
			Metadata: r.SessionMetadata, Tags: r.SessionTags,
		}
		if useText {
			s.CreatedAt, s.UpdatedAt = fromRFC3339(r.SessionCreatedText), fromRFC3339(r.SessionUpdatedText)
		} else {
			s.CreatedAt, s.UpdatedAt = fromUnixMs(r.SessionCreated), fromUnixMs(r.SessionUpdated)
		}
		if s.Metadata == nil {
			s.Metadata = map[string]string{}
		}
		if s.Tags == nil {
			s.Tags = []string{}
		}
		return graph.WrapSession(s), nil

	case graph.NodeTypePrompt:
		nodeID, err := ids.ParseNodeID(r.PromptNodeID)
		if err != nil {
			return nil, err
		}
		sessionID, err := ids.ParseSessionID(r.PromptSession)
		if err != nil {
			return nil, err
		}
		p := &graph.Prompt{
			NodeID: nodeID, SessionID: sessionID,
			Content: r.PromptContent, Variables: r.PromptVariables,
			Metadata: graph.PromptMetadata{
				Model: r.PromptModel, Temperature: r.PromptTemperature,
				MaxTokens: r.PromptMaxTokens, ToolsAvailable: r.PromptTools, Custom: r.PromptCustom,
			},
		}
		if useText {
			p.Timestamp = fromRFC3339(r.PromptTimeText)
		} else {
			p.Timestamp = fromUnixMs(r.PromptTime)
		}
		if r.PromptTemplate != "" {
			tid, err := ids.ParseTemplateID(r.PromptTemplate)
			if err != nil {
				return nil, err
			}
			p.TemplateID = &tid
		}
		if p.Variables == nil {
			p.Variables = map[string]string{}
		}
		return graph.WrapPrompt(p), nil

	case graph.NodeTypeResponse:
		nodeID, err := ids.ParseNodeID(r.ResponseNodeID)
		if err != nil {
			return nil, err
		}
		promptID, err := ids.ParseNodeID(r.ResponsePrompt)
		if err != nil {
			return nil, err
		}
		resp := &graph.Response{
			NodeID: nodeID, PromptID: promptID, Content: r.ResponseContent,
			Usage: graph.TokenUsage{
				PromptTokens: r.ResponsePromptTokens, CompletionTokens: r.ResponseCompletionTokens,
				TotalTokens: r.ResponseTotalTokens,
			},
			Metadata: graph.ResponseMetadata{
				Model: r.ResponseModel, FinishReason: r.ResponseFinishReason,
				LatencyMs: r.ResponseLatencyMs, Custom: r.ResponseCustom,
			},
		}
		if useText {
			resp.Timestamp = fromRFC3339(r.ResponseTimeText)
		} else {
			resp.Timestamp = fromUnixMs(r.ResponseTime)
		}
		return graph.WrapResponse(resp), nil

	case graph.NodeTypeToolInvocation:
		nodeID, err := ids.ParseNodeID(r.ToolNodeID)
		if err != nil {
			return nil, err
		}
		respID, err := ids.ParseNodeID(r.ToolResponseID)
		if err != nil {
			return nil, err
		}
		t := &graph.ToolInvocation{
			NodeID: nodeID, ResponseID: respID, ToolName: r.ToolName,
			Parameters: r.ToolParameters, Result: r.ToolResult, Error: r.ToolError,
			DurationMs: r.ToolDurationMs, Status: graph.ToolStatus(r.ToolStatus),
			RetryCount: r.ToolRetryCount, Metadata: r.ToolMetadata,
		}
		if useText {
			t.Timestamp = fromRFC3339(r.ToolTimeText)
		} else {
			t.Timestamp = fromUnixMs(r.ToolTime)
		}
		if t.Parameters == nil {
			t.Parameters = map[string]any{}
		}
		if t.Metadata == nil {
			t.Metadata = map[string]string{}
		}
		return graph.WrapToolInvocation(t), nil

	case graph.NodeTypeAgent:
		id, err := ids.ParseAgentID(r.AgentID)
		if err != nil {
			return nil, err
		}
		nodeID, err := ids.ParseNodeID(r.AgentNodeID)
		if err != nil {
			return nil, err
		}
		a := &graph.Agent{
			ID: id, NodeID: nodeID, Name: r.AgentName, Role: r.AgentRole,
			Capabilities: r.AgentCapabilities, Model: r.AgentModel,
			Status: graph.AgentStatus(r.AgentStatus),
			Config: graph.AgentConfig{
				Temperature: r.AgentTemperature, MaxTokens: r.AgentMaxTokens,
				TimeoutSeconds: r.AgentTimeoutSeconds, MaxRetries: r.AgentMaxRetries,
				ToolsEnabled: r.AgentToolsEnabled,
			},
			Metrics: graph.AgentMetrics{
				TotalPrompts: r.AgentTotalPrompts, SuccessfulTasks: r.AgentSuccessfulTasks,
				FailedTasks: r.AgentFailedTasks, AverageLatencyMs: r.AgentAverageLatencyMs,
				TotalTokensUsed: r.AgentTotalTokensUsed,
			},
			Tags: r.AgentTags,
		}
		if useText {
			a.CreatedAt, a.LastActive = fromRFC3339(r.AgentCreatedText), fromRFC3339(r.AgentLastActiveText)
		} else {
			a.CreatedAt, a.LastActive = fromUnixMs(r.AgentCreated), fromUnixMs(r.AgentLastActive)
		}
		if a.Capabilities == nil {
			a.Capabilities = []string{}
		}
		if a.Tags == nil {
			a.Tags = []string{}
		}
		return graph.WrapAgent(a), nil

	case graph.NodeTypeTemplate:
		id, err := ids.ParseTemplateID(r.TemplateID)
		if err != nil {
			return nil, err
		}
		nodeID, err := ids.ParseNodeID(r.TemplateNodeID)
		if err != nil {
			return nil, err
		}
		version, err := graph.ParseVersion(r.TemplateVersion)
		if err != nil {
			return nil, err
		}
		t := &graph.Template{
			ID: id, NodeID: nodeID, Version: version, Name: r.TemplateName,
			Description: r.TemplateDescription, Template: r.TemplateBody,
			InheritanceDepth: r.TemplateInheritanceDepth, Author: r.TemplateAuthor,
			UsageCount: r.TemplateUsageCount, Tags: r.TemplateTags, Metadata: r.TemplateMetadata,
		}
		t.Variables = make([]graph.VariableSpec, len(r.TemplateVariables))
		for i, v := range r.TemplateVariables {
			t.Variables[i] = graph.VariableSpec{
				Name: v.Name, TypeHint: v.TypeHint, Required: v.Required,
				Default: v.Default, ValidationRegexp: v.ValidationRegexp, Description: v.Description,
			}
		}
		if r.TemplateParentID != "" {
			pid, err := ids.ParseTemplateID(r.TemplateParentID)
			if err != nil {
				return nil, err
			}
			t.ParentID = &pid
		}
		if useText {
			t.CreatedAt, t.UpdatedAt = fromRFC3339(r.TemplateCreatedText), fromRFC3339(r.TemplateUpdatedText)
		} else {
			t.CreatedAt, t.UpdatedAt = fromUnixMs(r.TemplateCreated), fromUnixMs(r.TemplateUpdated)
		}
		if t.Tags == nil {
			t.Tags = []string{}
		}
		if t.Metadata == nil {
			t.Metadata = map[string]string{}
		}
		return graph.WrapTemplate(t), nil
	}
	return nil, unknownKindError(r.Kind)
}

func edgeToRecord(e *graph.Edge) edgeRecord {
	return edgeRecord{
		ID: e.ID.String(), From: e.From.String(), To: e.To.String(),
		Type: string(e.Type), CreatedAt: toUnixMs(e.CreatedAt), CreatedAtText: toRFC3339(e.CreatedAt),
		Properties: e.Properties,
	}
}

func recordToEdge(r edgeRecord, useText bool) (*graph.Edge, error) {
	id, err := ids.ParseEdgeID(r.ID)
	if err != nil {
		return nil, err
	}
	from, err := ids.ParseNodeID(r.From)
	if err != nil {
		return nil, err
	}
	to, err := ids.ParseNodeID(r.To)
	if err != nil {
		return nil, err
	}
	e := &graph.Edge{ID: id, From: from, To: to, Type: graph.EdgeType(r.Type), Properties: r.Properties}
	if useText {
		e.CreatedAt = fromRFC3339(r.CreatedAtText)
	} else {
		e.CreatedAt = fromUnixMs(r.CreatedAt)
	}
	if e.Properties == nil {
		e.Properties = map[string]string{}
	}
	return e, nil
}
