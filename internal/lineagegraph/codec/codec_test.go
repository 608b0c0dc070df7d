package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/codec"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

func sampleNodes() []*graph.Node {
	session := graph.NewSession(map[string]string{"env": "test"})
	prompt := graph.NewPrompt(session.ID, "what is the weather")
	response := graph.NewResponse(prompt.NodeID, "it is sunny", graph.NewTokenUsage(10, 5))
	tool := graph.NewToolInvocation(response.NodeID, "weather_lookup", map[string]any{"city": "SF"})
	agent := graph.NewAgent("researcher", "assistant", []string{"search"})
	tpl := graph.NewTemplate("greeting", "Hello {{name}}", []graph.VariableSpec{graph.NewVariableSpec("name", "string")})

	return []*graph.Node{
		graph.WrapSession(session),
		graph.WrapPrompt(prompt),
		graph.WrapResponse(response),
		graph.WrapToolInvocation(tool),
		graph.WrapAgent(agent),
		graph.WrapTemplate(tpl),
	}
}

func sampleEdges() []*graph.Edge {
	e := graph.NewEdge(graph.EdgeTypeFollows, ids.NewNodeID(), ids.NewNodeID())
	e.Properties["note"] = "sample"
	return []*graph.Edge{e}
}

func TestCodec_NodeRoundTrip(t *testing.T) {
	for _, format := range []codec.Format{codec.FormatBinary, codec.FormatText} {
		format := format
		t.Run(string(format), func(t *testing.T) {
			c, err := codec.New(format)
			require.NoError(t, err)

			for _, n := range sampleNodes() {
				encoded, err := c.EncodeNode(n)
				require.NoError(t, err)
				decoded, err := c.DecodeNode(encoded)
				require.NoError(t, err)
				assert.Equal(t, n.Type, decoded.Type)
				assert.Equal(t, n.ID(), decoded.ID())
			}
		})
	}
}

func TestCodec_EdgeRoundTrip(t *testing.T) {
	for _, format := range []codec.Format{codec.FormatBinary, codec.FormatText} {
		format := format
		t.Run(string(format), func(t *testing.T) {
			c, err := codec.New(format)
			require.NoError(t, err)

			for _, e := range sampleEdges() {
				encoded, err := c.EncodeEdge(e)
				require.NoError(t, err)
				decoded, err := c.DecodeEdge(encoded)
				require.NoError(t, err)
				assert.Equal(t, e.ID, decoded.ID)
				assert.Equal(t, e.Type, decoded.Type)
				assert.Equal(t, e.Properties["note"], decoded.Properties["note"])
			}
		})
	}
}

func TestCodec_DecodeNode_MalformedInputReturnsDeserializationError(t *testing.T) {
	c, err := codec.New(codec.FormatBinary)
	require.NoError(t, err)

	_, err = c.DecodeNode([]byte("not a valid payload"))
	require.Error(t, err)
}

func TestNew_UnknownFormatIsValidationError(t *testing.T) {
	_, err := codec.New("xml")
	require.Error(t, err)
}
