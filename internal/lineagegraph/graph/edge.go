package graph

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

// EdgeType discriminates the nine fixed relationship kinds. Endpoint node
// kinds for each type are listed in EndpointKinds; neither Edge nor the
// engine checks them when an edge is stored.
type EdgeType string

const (
	EdgeTypeFollows      EdgeType = "follows"
	EdgeTypeRespondsTo   EdgeType = "responds_to"
	EdgeTypeHandledBy    EdgeType = "handled_by"
	EdgeTypePartOf       EdgeType = "part_of"
	EdgeTypeInvokes      EdgeType = "invokes"
	EdgeTypeTransfersTo  EdgeType = "transfers_to"
	EdgeTypeInstantiates EdgeType = "instantiates"
	EdgeTypeInherits     EdgeType = "inherits"
	EdgeTypeReferences   EdgeType = "references"
)

// EndpointKinds fixes the from/to node kind for each EdgeType. "external"
// denotes an ExternalContext reference with no corresponding node kind in
// this store (References edges point outside the graph).
type EndpointKind struct {
	From string
	To   string
}

// EndpointKinds is the from/to kind table for each EdgeType. The engine
// does not consult it: edges are stored without checking their endpoints
// against this table, and without checking that the endpoint nodes exist.
var EndpointKinds = map[EdgeType]EndpointKind{
	EdgeTypeFollows:      {From: "prompt", To: "prompt"},
	EdgeTypeRespondsTo:   {From: "response", To: "prompt"},
	EdgeTypeHandledBy:    {From: "prompt", To: "agent"},
	EdgeTypePartOf:       {From: "prompt", To: "session"},
	EdgeTypeInvokes:      {From: "response", To: "tool_invocation"},
	EdgeTypeTransfersTo:  {From: "response", To: "agent"},
	EdgeTypeInstantiates: {From: "prompt", To: "template"},
	EdgeTypeInherits:     {From: "template", To: "template"},
	EdgeTypeReferences:   {From: "prompt", To: "external"},
}

// Edge is a typed, directed relationship between two nodes (or, for
// References, between a node and an external context the store does not
// itself hold). Properties are stored as a flat string map on disk;
// typed accessors below provide round-trip (de)serialization of the
// complex fields.
type Edge struct {
	ID         ids.EdgeID
	From       ids.NodeID
	To         ids.NodeID
	Type       EdgeType
	CreatedAt  time.Time
	Properties map[string]string
}

// NewEdge constructs an Edge with a fresh EdgeID and an empty property map.
func NewEdge(edgeType EdgeType, from, to ids.NodeID) *Edge {
	return &Edge{
		ID:         ids.NewEdgeID(),
		From:       from,
		To:         to,
		Type:       edgeType,
		CreatedAt:  time.Now().UTC(),
		Properties: map[string]string{},
	}
}

// Priority is the TransfersTo handoff urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// InvokesProps are the typed properties of an Invokes edge.
type InvokesProps struct {
	InvocationOrder int
	Success         bool
	Required        bool
}

// SetInvokesProps writes p into e.Properties as flat string fields.
func (e *Edge) SetInvokesProps(p InvokesProps) {
	e.Properties["invocation_order"] = fmt.Sprintf("%d", p.InvocationOrder)
	e.Properties["success"] = fmt.Sprintf("%t", p.Success)
	e.Properties["required"] = fmt.Sprintf("%t", p.Required)
}

// InvokesProps reads typed Invokes properties back out of e.Properties,
// defaulting invocation_order to 0 and the booleans to false when the key
// is missing.
func (e *Edge) InvokesProps() InvokesProps {
	var p InvokesProps
	fmt.Sscanf(e.Properties["invocation_order"], "%d", &p.InvocationOrder)
	p.Success = e.Properties["success"] == "true"
	p.Required = e.Properties["required"] == "true"
	return p
}

// TransfersToProps are the typed properties of a TransfersTo edge.
type TransfersToProps struct {
	HandoffReason  string
	ContextSummary string
	Priority       Priority
}

// SetTransfersToProps writes p into e.Properties.
func (e *Edge) SetTransfersToProps(p TransfersToProps) {
	e.Properties["handoff_reason"] = p.HandoffReason
	e.Properties["context_summary"] = p.ContextSummary
	e.Properties["priority"] = string(p.Priority)
}

// TransfersToProps reads typed TransfersTo properties back out,
// defaulting Priority to PriorityNormal when the key is missing.
func (e *Edge) TransfersToProps() TransfersToProps {
	priority := Priority(e.Properties["priority"])
	if priority == "" {
		priority = PriorityNormal
	}
	return TransfersToProps{
		HandoffReason:  e.Properties["handoff_reason"],
		ContextSummary: e.Properties["context_summary"],
		Priority:       priority,
	}
}

// InstantiatesProps are the typed properties of an Instantiates edge.
type InstantiatesProps struct {
	TemplateVersion   string
	VariableBindings  map[string]string
	InstantiationTime time.Time
}

// SetInstantiatesProps writes p into e.Properties, JSON-encoding the
// variable bindings map.
func (e *Edge) SetInstantiatesProps(p InstantiatesProps) error {
	bindings, err := json.Marshal(p.VariableBindings)
	if err != nil {
		return fmt.Errorf("graph: encode variable_bindings: %w", err)
	}
	e.Properties["template_version"] = p.TemplateVersion
	e.Properties["variable_bindings"] = string(bindings)
	e.Properties["instantiation_time"] = p.InstantiationTime.Format(time.RFC3339)
	return nil
}

// InstantiatesProps reads typed Instantiates properties back out. A
// missing or malformed variable_bindings key yields an empty, non-nil
// map rather than an error — the binding detail is supplementary.
func (e *Edge) InstantiatesProps() InstantiatesProps {
	bindings := map[string]string{}
	if raw, ok := e.Properties["variable_bindings"]; ok {
		_ = json.Unmarshal([]byte(raw), &bindings)
	}
	t, _ := time.Parse(time.RFC3339, e.Properties["instantiation_time"])
	return InstantiatesProps{
		TemplateVersion:   e.Properties["template_version"],
		VariableBindings:  bindings,
		InstantiationTime: t,
	}
}

// InheritsProps are the typed properties of an Inherits edge.
type InheritsProps struct {
	OverrideSections []string
	VersionDiff      string
	InheritanceDepth uint32
}

// SetInheritsProps writes p into e.Properties, JSON-encoding the
// override-sections list.
func (e *Edge) SetInheritsProps(p InheritsProps) error {
	sections, err := json.Marshal(p.OverrideSections)
	if err != nil {
		return fmt.Errorf("graph: encode override_sections: %w", err)
	}
	e.Properties["override_sections"] = string(sections)
	e.Properties["version_diff"] = p.VersionDiff
	e.Properties["inheritance_depth"] = fmt.Sprintf("%d", p.InheritanceDepth)
	return nil
}

// InheritsProps reads typed Inherits properties back out. A missing or
// malformed override_sections key yields an empty, non-nil slice.
func (e *Edge) InheritsProps() InheritsProps {
	var sections []string
	if raw, ok := e.Properties["override_sections"]; ok {
		_ = json.Unmarshal([]byte(raw), &sections)
	}
	if sections == nil {
		sections = []string{}
	}
	var depth uint32
	fmt.Sscanf(e.Properties["inheritance_depth"], "%d", &depth)
	return InheritsProps{
		OverrideSections: sections,
		VersionDiff:      e.Properties["version_diff"],
		InheritanceDepth: depth,
	}
}

// ContextType discriminates the kind of external source a References
// edge cites.
type ContextType string

const (
	ContextTypeDocument     ContextType = "document"
	ContextTypeWebPage      ContextType = "web_page"
	ContextTypeDatabase     ContextType = "database"
	ContextTypeVectorSearch ContextType = "vector_search"
	ContextTypeMemory       ContextType = "memory"
)

// ReferencesProps are the typed properties of a References edge.
// RelevanceScore is clamped to [0,1] by SetReferencesProps, per the
// store-wide invariant that relevance scores never escape that range.
type ReferencesProps struct {
	ContextType    ContextType
	RelevanceScore float64
	ChunkID        *string
}

// SetReferencesProps writes p into e.Properties, clamping RelevanceScore
// to [0,1].
func (e *Edge) SetReferencesProps(p ReferencesProps) {
	score := p.RelevanceScore
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	e.Properties["context_type"] = string(p.ContextType)
	e.Properties["relevance_score"] = fmt.Sprintf("%g", score)
	if p.ChunkID != nil {
		e.Properties["chunk_id"] = *p.ChunkID
	} else {
		delete(e.Properties, "chunk_id")
	}
}

// ReferencesProps reads typed References properties back out.
func (e *Edge) ReferencesProps() ReferencesProps {
	var score float64
	fmt.Sscanf(e.Properties["relevance_score"], "%g", &score)
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	var chunkID *string
	if v, ok := e.Properties["chunk_id"]; ok {
		chunkID = &v
	}
	return ReferencesProps{
		ContextType:    ContextType(e.Properties["context_type"]),
		RelevanceScore: score,
		ChunkID:        chunkID,
	}
}
