package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a Recorder backed by counter/histogram/gauge families:
// nodes_created, edges_created, prompts_submitted, responses_generated,
// tools_invoked, agent_handoffs, template_instantiations,
// queries_executed, read/write latency histograms, and
// active_sessions/total_nodes/total_edges gauges.
type Prometheus struct {
	nodesCreated           *prometheus.CounterVec
	edgesCreated           *prometheus.CounterVec
	promptsSubmitted       prometheus.Counter
	responsesGenerated     prometheus.Counter
	toolsInvoked           prometheus.Counter
	agentHandoffs          prometheus.Counter
	templateInstantiations prometheus.Counter
	queriesExecuted        prometheus.Counter

	readLatency  prometheus.Histogram
	writeLatency prometheus.Histogram

	activeSessions prometheus.Gauge
	totalNodes     prometheus.Gauge
	totalEdges     prometheus.Gauge
}

// New builds a Prometheus recorder registered against the default
// registerer.
func New(serviceName string) *Prometheus {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry builds a Prometheus recorder registered against a
// caller-supplied registerer, for use in tests that need an isolated
// registry.
func NewWithRegistry(serviceName string, registerer prometheus.Registerer) *Prometheus {
	m := &Prometheus{
		nodesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName, Name: "nodes_created_total", Help: "Total nodes created, by node type.",
		}, []string{"node_type"}),
		edgesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName, Name: "edges_created_total", Help: "Total edges created, by edge type.",
		}, []string{"edge_type"}),
		promptsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName, Name: "prompts_submitted_total", Help: "Total prompts submitted.",
		}),
		responsesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName, Name: "responses_generated_total", Help: "Total responses generated.",
		}),
		toolsInvoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName, Name: "tools_invoked_total", Help: "Total tool invocations recorded.",
		}),
		agentHandoffs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName, Name: "agent_handoffs_total", Help: "Total agent handoffs recorded.",
		}),
		templateInstantiations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName, Name: "template_instantiations_total", Help: "Total template instantiations recorded.",
		}),
		queriesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName, Name: "queries_executed_total", Help: "Total queries executed.",
		}),
		readLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName, Name: "read_latency_seconds", Help: "Backend read latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		writeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName, Name: "write_latency_seconds", Help: "Backend write latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName, Name: "active_sessions", Help: "Currently cached session count.",
		}),
		totalNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName, Name: "total_nodes", Help: "Total nodes in the backend.",
		}),
		totalEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName, Name: "total_edges", Help: "Total edges in the backend.",
		}),
	}

	registerer.MustRegister(
		m.nodesCreated, m.edgesCreated, m.promptsSubmitted, m.responsesGenerated,
		m.toolsInvoked, m.agentHandoffs, m.templateInstantiations, m.queriesExecuted,
		m.readLatency, m.writeLatency, m.activeSessions, m.totalNodes, m.totalEdges,
	)
	return m
}

func (m *Prometheus) IncNodesCreated(nodeType string)     { m.nodesCreated.WithLabelValues(nodeType).Inc() }
func (m *Prometheus) IncEdgesCreated(edgeType string)     { m.edgesCreated.WithLabelValues(edgeType).Inc() }
func (m *Prometheus) IncPromptsSubmitted()                { m.promptsSubmitted.Inc() }
func (m *Prometheus) IncResponsesGenerated()              { m.responsesGenerated.Inc() }
func (m *Prometheus) IncToolsInvoked()                    { m.toolsInvoked.Inc() }
func (m *Prometheus) IncAgentHandoffs()                   { m.agentHandoffs.Inc() }
func (m *Prometheus) IncTemplateInstantiations()          { m.templateInstantiations.Inc() }
func (m *Prometheus) IncQueriesExecuted()                 { m.queriesExecuted.Inc() }

func (m *Prometheus) ObserveReadLatency(d time.Duration)  { m.readLatency.Observe(d.Seconds()) }
func (m *Prometheus) ObserveWriteLatency(d time.Duration) { m.writeLatency.Observe(d.Seconds()) }

func (m *Prometheus) SetActiveSessions(n int64) { m.activeSessions.Set(float64(n)) }
func (m *Prometheus) SetTotalNodes(n int64)     { m.totalNodes.Set(float64(n)) }
func (m *Prometheus) SetTotalEdges(n int64)     { m.totalEdges.Set(float64(n)) }

var _ Recorder = (*Prometheus)(nil)
