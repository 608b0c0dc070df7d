// Package ids defines the typed 128-bit identifiers used throughout the
// graph: NodeID, EdgeID, SessionID, AgentID, TemplateID. Each wraps a
// uuid.UUID so equality and hashing are structural, but the Go type system
// keeps the five kinds from being interchanged by accident.
package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID is the primary storage key for every node kind.
type NodeID uuid.UUID

// EdgeID identifies an edge.
type EdgeID uuid.UUID

// SessionID is the domain handle for a Session node.
type SessionID uuid.UUID

// AgentID is the domain handle for an Agent node.
type AgentID uuid.UUID

// TemplateID is the domain handle for a Template node.
type TemplateID uuid.UUID

// NewNodeID assigns a fresh, globally unique NodeID. IDs are assigned at
// creation time by the engine, never supplied by the caller.
func NewNodeID() NodeID { return NodeID(uuid.New()) }

// NewEdgeID assigns a fresh EdgeID.
func NewEdgeID() EdgeID { return EdgeID(uuid.New()) }

// NewSessionID assigns a fresh SessionID.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// NewAgentID assigns a fresh AgentID.
func NewAgentID() AgentID { return AgentID(uuid.New()) }

// NewTemplateID assigns a fresh TemplateID.
func NewTemplateID() TemplateID { return TemplateID(uuid.New()) }

// Nil values, useful as "unset" sentinels in optional fields.
var (
	NilNodeID     = NodeID(uuid.Nil)
	NilEdgeID     = EdgeID(uuid.Nil)
	NilSessionID  = SessionID(uuid.Nil)
	NilAgentID    = AgentID(uuid.Nil)
	NilTemplateID = TemplateID(uuid.Nil)
)

func (id NodeID) String() string     { return uuid.UUID(id).String() }
func (id EdgeID) String() string     { return uuid.UUID(id).String() }
func (id SessionID) String() string  { return uuid.UUID(id).String() }
func (id AgentID) String() string    { return uuid.UUID(id).String() }
func (id TemplateID) String() string { return uuid.UUID(id).String() }

// Bytes returns the canonical 16-byte representation used as a KV key.
func (id NodeID) Bytes() []byte     { b := uuid.UUID(id); return b[:] }
func (id EdgeID) Bytes() []byte     { b := uuid.UUID(id); return b[:] }
func (id SessionID) Bytes() []byte  { b := uuid.UUID(id); return b[:] }
func (id AgentID) Bytes() []byte    { b := uuid.UUID(id); return b[:] }
func (id TemplateID) Bytes() []byte { b := uuid.UUID(id); return b[:] }

// IsNil reports whether the id is the zero-value nil UUID.
func (id NodeID) IsNil() bool     { return id == NilNodeID }
func (id EdgeID) IsNil() bool     { return id == NilEdgeID }
func (id SessionID) IsNil() bool  { return id == NilSessionID }
func (id AgentID) IsNil() bool    { return id == NilAgentID }
func (id TemplateID) IsNil() bool { return id == NilTemplateID }

// ParseNodeID parses a textual UUID form (canonical, braced, urn or bare hex) into a NodeID.
func ParseNodeID(s string) (NodeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilNodeID, fmt.Errorf("ids: parse node id %q: %w", s, err)
	}
	return NodeID(u), nil
}

// ParseEdgeID parses a canonical string form into an EdgeID.
func ParseEdgeID(s string) (EdgeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilEdgeID, fmt.Errorf("ids: parse edge id %q: %w", s, err)
	}
	return EdgeID(u), nil
}

// ParseSessionID parses a canonical string form into a SessionID.
func ParseSessionID(s string) (SessionID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilSessionID, fmt.Errorf("ids: parse session id %q: %w", s, err)
	}
	return SessionID(u), nil
}

// ParseAgentID parses a canonical string form into an AgentID.
func ParseAgentID(s string) (AgentID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilAgentID, fmt.Errorf("ids: parse agent id %q: %w", s, err)
	}
	return AgentID(u), nil
}

// ParseTemplateID parses a canonical string form into a TemplateID.
func ParseTemplateID(s string) (TemplateID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilTemplateID, fmt.Errorf("ids: parse template id %q: %w", s, err)
	}
	return TemplateID(u), nil
}

// NodeIDFromBytes reconstructs a NodeID from its 16-byte key representation.
func NodeIDFromBytes(b []byte) (NodeID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return NilNodeID, fmt.Errorf("ids: node id from bytes: %w", err)
	}
	return NodeID(u), nil
}

// EdgeIDFromBytes reconstructs an EdgeID from its 16-byte key representation.
func EdgeIDFromBytes(b []byte) (EdgeID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return NilEdgeID, fmt.Errorf("ids: edge id from bytes: %w", err)
	}
	return EdgeID(u), nil
}

// SessionIDFromBytes reconstructs a SessionID from its 16-byte key representation.
func SessionIDFromBytes(b []byte) (SessionID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return NilSessionID, fmt.Errorf("ids: session id from bytes: %w", err)
	}
	return SessionID(u), nil
}

// MarshalText implements encoding.TextMarshaler for use by both codecs.
func (id NodeID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NodeID) UnmarshalText(b []byte) error {
	v, err := ParseNodeID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id EdgeID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *EdgeID) UnmarshalText(b []byte) error {
	v, err := ParseEdgeID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id SessionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SessionID) UnmarshalText(b []byte) error {
	v, err := ParseSessionID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id AgentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *AgentID) UnmarshalText(b []byte) error {
	v, err := ParseAgentID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id TemplateID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TemplateID) UnmarshalText(b []byte) error {
	v, err := ParseTemplateID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
