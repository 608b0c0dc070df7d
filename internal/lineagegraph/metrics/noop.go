package metrics

import "time"

// Noop is a Recorder that discards every observation. It is the default
// when an engine is built without an explicit Recorder.
type Noop struct{}

func (Noop) IncNodesCreated(string)          {}
func (Noop) IncEdgesCreated(string)          {}
func (Noop) IncPromptsSubmitted()            {}
func (Noop) IncResponsesGenerated()          {}
func (Noop) IncToolsInvoked()                {}
func (Noop) IncAgentHandoffs()               {}
func (Noop) IncTemplateInstantiations()      {}
func (Noop) IncQueriesExecuted()             {}
func (Noop) ObserveReadLatency(time.Duration)  {}
func (Noop) ObserveWriteLatency(time.Duration) {}
func (Noop) SetActiveSessions(int64)         {}
func (Noop) SetTotalNodes(int64)             {}
func (Noop) SetTotalEdges(int64)             {}

var _ Recorder = Noop{}
