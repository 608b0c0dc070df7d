package graph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

func TestEdge_InvokesProps_RoundTrip(t *testing.T) {
	e := graph.NewEdge(graph.EdgeTypeInvokes, ids.NewNodeID(), ids.NewNodeID())
	e.SetInvokesProps(graph.InvokesProps{InvocationOrder: 2, Success: true, Required: true})

	got := e.InvokesProps()
	assert.Equal(t, 2, got.InvocationOrder)
	assert.True(t, got.Success)
	assert.True(t, got.Required)
}

func TestEdge_InstantiatesProps_RoundTrip(t *testing.T) {
	e := graph.NewEdge(graph.EdgeTypeInstantiates, ids.NewNodeID(), ids.NewNodeID())
	now := time.Now().UTC().Truncate(time.Second)
	err := e.SetInstantiatesProps(graph.InstantiatesProps{
		TemplateVersion:   "1.2.0",
		VariableBindings:  map[string]string{"name": "Ada"},
		InstantiationTime: now,
	})
	require.NoError(t, err)

	got := e.InstantiatesProps()
	assert.Equal(t, "1.2.0", got.TemplateVersion)
	assert.Equal(t, "Ada", got.VariableBindings["name"])
	assert.True(t, now.Equal(got.InstantiationTime))
}

func TestEdge_InheritsProps_RoundTrip(t *testing.T) {
	e := graph.NewEdge(graph.EdgeTypeInherits, ids.NewNodeID(), ids.NewNodeID())
	err := e.SetInheritsProps(graph.InheritsProps{
		OverrideSections: []string{"intro", "closing"},
		VersionDiff:      "1.0.0->1.1.0",
		InheritanceDepth: 3,
	})
	require.NoError(t, err)

	got := e.InheritsProps()
	assert.Equal(t, []string{"intro", "closing"}, got.OverrideSections)
	assert.Equal(t, uint32(3), got.InheritanceDepth)
}

func TestEdge_ReferencesProps_ClampsRelevanceScore(t *testing.T) {
	e := graph.NewEdge(graph.EdgeTypeReferences, ids.NewNodeID(), ids.NewNodeID())

	e.SetReferencesProps(graph.ReferencesProps{ContextType: graph.ContextTypeDocument, RelevanceScore: 5.0})
	assert.Equal(t, 1.0, e.ReferencesProps().RelevanceScore)

	e.SetReferencesProps(graph.ReferencesProps{ContextType: graph.ContextTypeDocument, RelevanceScore: -3.0})
	assert.Equal(t, 0.0, e.ReferencesProps().RelevanceScore)

	chunk := "chunk-7"
	e.SetReferencesProps(graph.ReferencesProps{ContextType: graph.ContextTypeVectorSearch, RelevanceScore: 0.42, ChunkID: &chunk})
	got := e.ReferencesProps()
	assert.Equal(t, 0.42, got.RelevanceScore)
	require.NotNil(t, got.ChunkID)
	assert.Equal(t, "chunk-7", *got.ChunkID)
}

func TestEndpointKinds_CoversAllEdgeTypes(t *testing.T) {
	types := []graph.EdgeType{
		graph.EdgeTypeFollows, graph.EdgeTypeRespondsTo, graph.EdgeTypeHandledBy,
		graph.EdgeTypePartOf, graph.EdgeTypeInvokes, graph.EdgeTypeTransfersTo,
		graph.EdgeTypeInstantiates, graph.EdgeTypeInherits, graph.EdgeTypeReferences,
	}
	for _, ty := range types {
		_, ok := graph.EndpointKinds[ty]
		assert.Truef(t, ok, "missing endpoint kind entry for %s", ty)
	}
}
