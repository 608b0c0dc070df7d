// Package errs defines the single error sum type shared across every
// lineagegraph package, plus retry and timeout combinators built on its
// retryability classification.
package errs

import (
	"errors"
	"fmt"
)

// Kind is the canonical classification of an Error. It is the dimension
// callers should switch on, never the formatted message.
type Kind string

const (
	KindSessionNotFound        Kind = "session_not_found"
	KindNodeNotFound           Kind = "node_not_found"
	KindEdgeNotFound           Kind = "edge_not_found"
	KindTemplateNotFound       Kind = "template_not_found"
	KindAgentNotFound          Kind = "agent_not_found"
	KindInvalidNodeType        Kind = "invalid_node_type"
	KindValidation             Kind = "validation"
	KindSerialization          Kind = "serialization"
	KindDeserialization        Kind = "deserialization"
	KindStorage                Kind = "storage"
	KindIO                     Kind = "io"
	KindTimeout                Kind = "timeout"
	KindConcurrentModification Kind = "concurrent_modification"
	KindPoolExhausted          Kind = "pool_exhausted"
	KindTraversal              Kind = "traversal"
	KindRuntime                Kind = "runtime"
	KindOther                  Kind = "other"
)

// retryable is the exact set of kinds a caller may retry against. Every
// other kind is terminal.
var retryable = map[Kind]bool{
	KindTimeout:                true,
	KindPoolExhausted:          true,
	KindConcurrentModification: true,
}

// Error is the single error sum type used across the module. Kind
// carries the canonical classification; Message is a human-readable
// detail; TimeoutMs is populated only for KindTimeout; Cause wraps any
// underlying error for %w unwrapping.
type Error struct {
	Kind      Kind
	Message   string
	TimeoutMs int64
	Cause     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// IsRetryable reports whether this error's Kind is in the exact
// retryable set {Timeout, PoolExhausted, ConcurrentModification}.
func (e *Error) IsRetryable() bool { return retryable[e.Kind] }

// New constructs a plain Error of the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// SessionNotFound builds a KindSessionNotFound error for the given id string.
func SessionNotFound(id string) *Error {
	return New(KindSessionNotFound, fmt.Sprintf("session %s not found", id))
}

// NodeNotFound builds a KindNodeNotFound error for the given id string.
func NodeNotFound(id string) *Error {
	return New(KindNodeNotFound, fmt.Sprintf("node %s not found", id))
}

// EdgeNotFound builds a KindEdgeNotFound error for the given id string.
func EdgeNotFound(id string) *Error {
	return New(KindEdgeNotFound, fmt.Sprintf("edge %s not found", id))
}

// TemplateNotFound builds a KindTemplateNotFound error for the given id string.
func TemplateNotFound(id string) *Error {
	return New(KindTemplateNotFound, fmt.Sprintf("template %s not found", id))
}

// AgentNotFound builds a KindAgentNotFound error for the given id string.
func AgentNotFound(id string) *Error {
	return New(KindAgentNotFound, fmt.Sprintf("agent %s not found", id))
}

// InvalidNodeType builds a KindInvalidNodeType error naming the expected
// and actual node type.
func InvalidNodeType(expected, actual string) *Error {
	return New(KindInvalidNodeType, fmt.Sprintf("expected node type %s, got %s", expected, actual))
}

// Validation builds a KindValidation error naming the offending field.
func Validation(field, reason string) *Error {
	return New(KindValidation, fmt.Sprintf("%s: %s", field, reason))
}

// Timeout builds a KindTimeout error carrying the elapsed deadline in
// milliseconds.
func Timeout(ms int64) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf("operation timed out after %dms", ms), TimeoutMs: ms}
}

// ConcurrentModification builds a KindConcurrentModification error
// naming the contended resource.
func ConcurrentModification(context string) *Error {
	return New(KindConcurrentModification, fmt.Sprintf("concurrent modification: %s", context))
}

// PoolExhausted builds a KindPoolExhausted error.
func PoolExhausted(reason string) *Error {
	return New(KindPoolExhausted, reason)
}

// As extracts *Error from err using errors.As, reporting ok=false if err
// is not (or does not wrap) an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsRetryable reports whether err is an *Error (or wraps one) whose Kind
// is in the retryable set. Non-*Error values are treated as terminal.
func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.IsRetryable()
}
