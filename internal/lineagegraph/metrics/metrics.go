// Package metrics defines the Recorder capability the engine calls
// directly after each operation path, plus a no-op and a Prometheus
// implementation of it.
package metrics

import "time"

// Recorder is the metrics capability the engine holds an optional
// reference to. Every method is best-effort: a Recorder must never
// return an error or block the caller meaningfully.
type Recorder interface {
	IncNodesCreated(nodeType string)
	IncEdgesCreated(edgeType string)
	IncPromptsSubmitted()
	IncResponsesGenerated()
	IncToolsInvoked()
	IncAgentHandoffs()
	IncTemplateInstantiations()
	IncQueriesExecuted()

	ObserveReadLatency(d time.Duration)
	ObserveWriteLatency(d time.Duration)

	SetActiveSessions(n int64)
	SetTotalNodes(n int64)
	SetTotalEdges(n int64)
}
