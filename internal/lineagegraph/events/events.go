// Package events defines the Publisher capability the engine fires
// best-effort, fire-and-forget events through, plus a no-op and a
// logging implementation of it.
package events

import (
	"time"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

// Kind discriminates the engine-level event types.
type Kind string

const (
	KindNodeCreated       Kind = "node_created"
	KindPromptSubmitted   Kind = "prompt_submitted"
	KindResponseGenerated Kind = "response_generated"
	KindQueryExecuted     Kind = "query_executed"
)

// Event is a best-effort notification the engine fires after a
// successful domain operation. Publication failures are never surfaced
// to the caller of the domain operation that produced the event.
type Event struct {
	Kind      Kind
	NodeID    ids.NodeID
	SessionID ids.SessionID
	At        time.Time
	Detail    string
}

// Publisher is the events capability the engine holds an optional
// reference to. Publish must not block the caller meaningfully and must
// never panic.
type Publisher interface {
	Publish(e Event)
}
