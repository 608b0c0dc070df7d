package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

func TestNewTokenUsage_TotalIsPromptPlusCompletion(t *testing.T) {
	u := graph.NewTokenUsage(120, 45)
	assert.Equal(t, uint32(165), u.TotalTokens)
}

func TestAgentMetrics_Record_CumulativeAverage(t *testing.T) {
	var m graph.AgentMetrics

	m.Record(true, 100, 10)
	assert.Equal(t, uint64(1), m.TotalPrompts)
	assert.Equal(t, uint64(1), m.SuccessfulTasks)
	assert.Equal(t, float64(100), m.AverageLatencyMs)
	assert.Equal(t, uint64(10), m.TotalTokensUsed)

	m.Record(false, 300, 20)
	assert.Equal(t, uint64(2), m.TotalPrompts)
	assert.Equal(t, uint64(1), m.FailedTasks)
	// (100*1 + 300) / 2 == 200
	assert.Equal(t, float64(200), m.AverageLatencyMs)
	assert.Equal(t, uint64(30), m.TotalTokensUsed)

	m.Record(true, 200, 0)
	// (200*2 + 200) / 3 == 200
	assert.InDelta(t, 200, m.AverageLatencyMs, 0.001)
	assert.InDelta(t, 200.0/3.0, m.SuccessRate(), 0.001)
}

func TestToolInvocation_MarkSuccessAndFailed(t *testing.T) {
	responseID := ids.NewNodeID()

	ti := graph.NewToolInvocation(responseID, "search", map[string]any{"q": "go"})
	require.True(t, ti.IsPending())
	require.Equal(t, graph.ToolStatusPending, ti.Status)

	ti.MarkSuccess(map[string]any{"hits": 3}, 42)
	assert.Equal(t, graph.ToolStatusSuccess, ti.Status)
	assert.False(t, ti.IsPending())
	assert.Equal(t, uint64(42), ti.DurationMs)
	assert.Nil(t, ti.Error)

	ti2 := graph.NewToolInvocation(responseID, "search", map[string]any{"q": "go"})
	ti2.MarkFailed("boom", 7)
	assert.Equal(t, graph.ToolStatusFailed, ti2.Status)
	require.NotNil(t, ti2.Error)
	assert.Equal(t, "boom", *ti2.Error)

	ti2.RecordRetry()
	assert.Equal(t, uint32(1), ti2.RetryCount)
}

func TestAgent_HasCapability(t *testing.T) {
	a := graph.NewAgent("researcher", "assistant", []string{"search", "summarize"})
	assert.True(t, a.HasCapability("search"))
	assert.False(t, a.HasCapability("deploy"))
}

func TestAgent_SetStatus_CanAcceptTasks(t *testing.T) {
	a := graph.NewAgent("researcher", "assistant", nil)
	a.SetStatus(graph.AgentStatusActive)
	assert.True(t, a.Status.CanAcceptTasks())
	a.SetStatus(graph.AgentStatusTerminated)
	assert.False(t, a.Status.CanAcceptTasks())
}

func TestTemplate_RecordUsageAndBumpVersion(t *testing.T) {
	tpl := graph.NewTemplate("greeting", "Hello {{name}}", nil)
	require.Equal(t, uint64(0), tpl.UsageCount)
	tpl.RecordUsage()
	assert.Equal(t, uint64(1), tpl.UsageCount)

	before := tpl.Version
	tpl.BumpVersion(graph.VersionLevelMinor)
	assert.True(t, before.Less(tpl.Version))
}
