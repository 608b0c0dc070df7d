package kv_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/codec"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/kv"
)

func openTestBackend(t *testing.T) *kv.BoltBackend {
	t.Helper()
	c, err := codec.New(codec.FormatBinary)
	require.NoError(t, err)
	b, err := kv.Open(filepath.Join(t.TempDir(), "test.db"), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBoltBackend_PutGetNode_RoundTrip(t *testing.T) {
	b := openTestBackend(t)

	session := graph.NewSession(nil)
	node := graph.WrapSession(session)
	require.NoError(t, b.PutNode(node))

	got, err := b.GetNode(session.NodeID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.Session.ID)
}

func TestBoltBackend_GetNode_MissingReturnsNotFound(t *testing.T) {
	b := openTestBackend(t)

	_, err := b.GetNode(ids.NewNodeID())
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNodeNotFound, e.Kind)
}

func TestBoltBackend_SessionIndex_PromptAndResponseResolveToSession(t *testing.T) {
	b := openTestBackend(t)

	session := graph.NewSession(nil)
	require.NoError(t, b.PutNode(graph.WrapSession(session)))

	prompt := graph.NewPrompt(session.ID, "hello")
	require.NoError(t, b.PutNode(graph.WrapPrompt(prompt)))

	response := graph.NewResponse(prompt.NodeID, "hi there", graph.NewTokenUsage(1, 1))
	require.NoError(t, b.PutNode(graph.WrapResponse(response)))

	nodes, err := b.SessionNodes(session.ID)
	require.NoError(t, err)
	assert.Len(t, nodes, 3)

	count, err := b.CountSessionNodes(session.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestBoltBackend_PutEdge_IndexesBothDirections(t *testing.T) {
	b := openTestBackend(t)

	from, to := ids.NewNodeID(), ids.NewNodeID()
	edge := graph.NewEdge(graph.EdgeTypeFollows, from, to)
	require.NoError(t, b.PutEdge(edge))

	out, err := b.OutgoingEdges(from)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, edge.ID, out[0].ID)

	in, err := b.IncomingEdges(to)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, edge.ID, in[0].ID)
}

func TestBoltBackend_DeleteNode_LeavesIndexDangling(t *testing.T) {
	b := openTestBackend(t)

	session := graph.NewSession(nil)
	require.NoError(t, b.PutNode(graph.WrapSession(session)))
	require.NoError(t, b.DeleteNode(session.NodeID))

	_, err := b.GetNode(session.NodeID)
	require.Error(t, err)

	// The dangling session_index entry is skipped, not surfaced as an error.
	nodes, err := b.SessionNodes(session.ID)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestBoltBackend_Stats(t *testing.T) {
	b := openTestBackend(t)

	session := graph.NewSession(nil)
	require.NoError(t, b.PutNode(graph.WrapSession(session)))
	edge := graph.NewEdge(graph.EdgeTypeFollows, ids.NewNodeID(), ids.NewNodeID())
	require.NoError(t, b.PutEdge(edge))

	stats, err := b.Stats()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.NodeCount)
	assert.Equal(t, uint64(1), stats.EdgeCount)
	assert.Equal(t, uint64(1), stats.SessionCount)
	assert.Greater(t, stats.StorageBytes, uint64(0), "StorageBytes should reflect the on-disk file size")
}
