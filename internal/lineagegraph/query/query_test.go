package query_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/asyncstore"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/codec"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/engine"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/events"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/kv"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/metrics"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/query"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	c, err := codec.New(codec.FormatBinary)
	require.NoError(t, err)
	backend, err := kv.Open(filepath.Join(t.TempDir(), "test.db"), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	store := asyncstore.New(backend, 4)
	eng, err := engine.New(store, engine.Config{})
	require.NoError(t, err)
	return eng
}

func seedConversation(t *testing.T, eng *engine.Engine, n int) ids.SessionID {
	t.Helper()
	ctx := context.Background()
	sid, err := eng.CreateSession(ctx, nil)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		promptID, err := eng.AddPrompt(ctx, sid, "msg", nil)
		require.NoError(t, err)
		_, err = eng.AddResponse(ctx, promptID, "reply", graph.NewTokenUsage(1, 1), nil)
		require.NoError(t, err)
	}
	return sid
}

func TestExecutor_Execute_RequiresSessionFilter(t *testing.T) {
	eng := newTestEngine(t)
	x := query.NewExecutor(eng)

	_, err := x.Execute(context.Background(), query.NewFilter())
	require.Error(t, err)
}

func TestExecutor_Execute_FiltersByNodeTypeAndSortsNewestFirst(t *testing.T) {
	eng := newTestEngine(t)
	sid := seedConversation(t, eng, 3)
	x := query.NewExecutor(eng)

	nodes, err := x.Execute(context.Background(), query.NewFilter().WithSession(sid).WithNodeType(graph.NodeTypePrompt))
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	for _, n := range nodes {
		assert.Equal(t, graph.NodeTypePrompt, n.Type)
	}
	for i := 1; i < len(nodes); i++ {
		assert.False(t, nodes[i].PrimaryTimestamp().After(nodes[i-1].PrimaryTimestamp()))
	}
}

func TestExecutor_Execute_OffsetAndLimitPage(t *testing.T) {
	eng := newTestEngine(t)
	sid := seedConversation(t, eng, 5)
	x := query.NewExecutor(eng)

	all, err := x.Execute(context.Background(), query.NewFilter().WithSession(sid).WithNodeType(graph.NodeTypePrompt))
	require.NoError(t, err)
	require.Len(t, all, 5)

	page, err := x.Execute(context.Background(), query.NewFilter().WithSession(sid).WithNodeType(graph.NodeTypePrompt).WithOffset(2).WithLimit(2))
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[2].ID(), page[0].ID())
	assert.Equal(t, all[3].ID(), page[1].ID())
}

func TestExecutor_Count_SessionOnlyUsesCardinalityFastPath(t *testing.T) {
	eng := newTestEngine(t)
	sid := seedConversation(t, eng, 4)
	x := query.NewExecutor(eng)

	count, err := x.Count(context.Background(), query.NewFilter().WithSession(sid))
	require.NoError(t, err)
	assert.Equal(t, uint64(9), count) // session + 4 prompts + 4 responses
}

func TestExecutor_Count_FilteredIgnoresPagination(t *testing.T) {
	eng := newTestEngine(t)
	sid := seedConversation(t, eng, 4)
	x := query.NewExecutor(eng)

	count, err := x.Count(context.Background(), query.NewFilter().WithSession(sid).WithNodeType(graph.NodeTypePrompt).WithLimit(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)
}

func TestExecutor_Stream_AppliesFilterAndLimit(t *testing.T) {
	eng := newTestEngine(t)
	sid := seedConversation(t, eng, 5)
	x := query.NewExecutor(eng)

	stream := x.Stream(context.Background(), query.NewFilter().WithSession(sid).WithNodeType(graph.NodeTypeResponse).WithLimit(2))
	var got []*graph.Node
	for {
		n, ok := stream.Next(context.Background())
		if !ok {
			break
		}
		got = append(got, n)
	}
	assert.Len(t, got, 2)
	for _, n := range got {
		assert.Equal(t, graph.NodeTypeResponse, n.Type)
	}
}

func TestExecutor_Stream_WithoutSessionIsImmediatelyEmpty(t *testing.T) {
	eng := newTestEngine(t)
	x := query.NewExecutor(eng)

	stream := x.Stream(context.Background(), query.NewFilter())
	_, ok := stream.Next(context.Background())
	assert.False(t, ok)
}

func TestExecutor_Execute_RecordsQueriesExecutedAndPublishesEvent(t *testing.T) {
	c, err := codec.New(codec.FormatBinary)
	require.NoError(t, err)
	backend, err := kv.Open(filepath.Join(t.TempDir(), "test.db"), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	store := asyncstore.New(backend, 4)

	reg := prometheus.NewRegistry()
	recorder := metrics.NewWithRegistry("lineagegraph_query_test", reg)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	publisher := events.NewLogging(log)

	eng, err := engine.New(store, engine.Config{Recorder: recorder, Publisher: publisher})
	require.NoError(t, err)

	sid := seedConversation(t, eng, 2)
	x := query.NewExecutor(eng)

	_, err = x.Execute(context.Background(), query.NewFilter().WithSession(sid))
	require.NoError(t, err)
	_, err = x.Count(context.Background(), query.NewFilter().WithSession(sid))
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() != "lineagegraph_query_test_queries_executed_total" {
			continue
		}
		found = true
		require.NotEmpty(t, f.GetMetric())
		assert.Equal(t, float64(2), f.GetMetric()[0].GetCounter().GetValue())
	}
	assert.True(t, found, "queries_executed_total metric family not registered")

	assert.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Data["kind"] == string(events.KindQueryExecuted) {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond, "expected a QueryExecuted event to be published")
}

func TestTraversal_GetConversationThread_ResolvesFromToolInvocation(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	sid, err := eng.CreateSession(ctx, nil)
	require.NoError(t, err)
	promptID, err := eng.AddPrompt(ctx, sid, "what's the weather", nil)
	require.NoError(t, err)
	responseID, err := eng.AddResponse(ctx, promptID, "checking", graph.NewTokenUsage(1, 1), nil)
	require.NoError(t, err)
	toolID, err := eng.AddToolInvocation(ctx, responseID, "weather_lookup", nil)
	require.NoError(t, err)

	tr := query.NewTraversal(eng)
	thread, err := tr.GetConversationThread(ctx, toolID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, graph.NodeTypePrompt, thread[0].Type)
	assert.Equal(t, graph.NodeTypeResponse, thread[1].Type)
}

func TestTraversal_GetConversationThread_AgentStartFails(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	agent := graph.NewAgent("researcher", "assistant", nil)
	require.NoError(t, eng.AddAgent(ctx, agent))

	tr := query.NewTraversal(eng)
	_, err := tr.GetConversationThread(ctx, agent.NodeID)
	require.Error(t, err)
}

func TestTraversal_FindResponses_ReturnsOnlyRespondsToEdges(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	sid, err := eng.CreateSession(ctx, nil)
	require.NoError(t, err)
	promptID, err := eng.AddPrompt(ctx, sid, "hello", nil)
	require.NoError(t, err)
	responseID, err := eng.AddResponse(ctx, promptID, "hi", graph.NewTokenUsage(1, 1), nil)
	require.NoError(t, err)

	responses, err := query.NewTraversal(eng).FindResponses(ctx, promptID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, responseID, responses[0].ID())
}

func TestTraversal_BFS_VisitsConnectedSubgraph(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	sid, err := eng.CreateSession(ctx, nil)
	require.NoError(t, err)
	promptID, err := eng.AddPrompt(ctx, sid, "hello", nil)
	require.NoError(t, err)
	responseID, err := eng.AddResponse(ctx, promptID, "hi", graph.NewTokenUsage(1, 1), nil)
	require.NoError(t, err)

	nodes, err := query.NewTraversal(eng).BFS(ctx, promptID)
	require.NoError(t, err)

	var visited []ids.NodeID
	for _, n := range nodes {
		visited = append(visited, n.ID())
	}
	assert.Contains(t, visited, promptID)
	assert.Contains(t, visited, responseID)
}
