package asyncstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/asyncstore"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/codec"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/kv"
)

func openTestStore(t *testing.T) *asyncstore.Store {
	t.Helper()
	c, err := codec.New(codec.FormatBinary)
	require.NoError(t, err)
	backend, err := kv.Open(filepath.Join(t.TempDir(), "test.db"), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return asyncstore.New(backend, 2)
}

func TestStore_PutGetNode_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	session := graph.NewSession(nil)
	node := graph.WrapSession(session)
	require.NoError(t, s.PutNode(ctx, node))

	got, err := s.GetNode(ctx, session.NodeID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.Session.ID)
}

func TestStore_StoreNodesBatch_PreservesOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	session := graph.NewSession(nil)
	nodes := []*graph.Node{
		graph.WrapSession(session),
		graph.WrapPrompt(graph.NewPrompt(session.ID, "a")),
		graph.WrapPrompt(graph.NewPrompt(session.ID, "b")),
	}

	assigned, err := s.StoreNodesBatch(ctx, nodes)
	require.NoError(t, err)
	require.Len(t, assigned, 3)
	for i, id := range assigned {
		assert.Equal(t, nodes[i].ID(), id)
	}
}

type failingBackend struct {
	kv.Backend
	failOn int
	calls  int
}

func (f *failingBackend) PutNode(n *graph.Node) error {
	f.calls++
	if f.calls == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func TestStore_StoreNodesBatch_FirstErrorWins(t *testing.T) {
	c, err := codec.New(codec.FormatBinary)
	require.NoError(t, err)
	backend, err := kv.Open(filepath.Join(t.TempDir(), "test.db"), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	fb := &failingBackend{Backend: backend, failOn: 2}
	s := asyncstore.New(fb, 1)

	session := graph.NewSession(nil)
	nodes := []*graph.Node{
		graph.WrapSession(session),
		graph.WrapPrompt(graph.NewPrompt(session.ID, "a")),
		graph.WrapPrompt(graph.NewPrompt(session.ID, "b")),
	}

	_, err = s.StoreNodesBatch(context.Background(), nodes)
	require.Error(t, err)
}

func TestStore_SessionNodesStream_EmitsAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	session := graph.NewSession(nil)
	require.NoError(t, s.PutNode(ctx, graph.WrapSession(session)))
	for i := 0; i < 3; i++ {
		p := graph.NewPrompt(session.ID, "msg")
		require.NoError(t, s.PutNode(ctx, graph.WrapPrompt(p)))
	}

	stream := s.SessionNodesStream(ctx, session.ID)
	count := 0
	for {
		_, ok := stream.Next(ctx)
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 4, count)
}

func TestStore_GetNode_RespectsContextCancellation(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetNode(ctx, ids.NewNodeID())
	require.Error(t, err)
}
