package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
)

func TestTemplate_Instantiate_Success(t *testing.T) {
	vars := []graph.VariableSpec{
		graph.NewVariableSpec("name", "string"),
		graph.NewVariableSpec("topic", "string").WithDefault("Go"),
	}
	tpl := graph.NewTemplate("greeting", "Hello {{name}}, let's talk about {{topic}}.", vars)

	out, err := tpl.Instantiate(map[string]string{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada, let's talk about Go.", out)
}

func TestTemplate_Instantiate_MissingRequiredVariableFails(t *testing.T) {
	vars := []graph.VariableSpec{graph.NewVariableSpec("name", "string")}
	tpl := graph.NewTemplate("greeting", "Hello {{name}}.", vars)

	_, err := tpl.Instantiate(map[string]string{})
	assert.Error(t, err)
}

func TestTemplate_Instantiate_ValidationRegexpFails(t *testing.T) {
	vars := []graph.VariableSpec{
		graph.NewVariableSpec("code", "string").WithValidation(`^[A-Z]{3}\d{3}$`),
	}
	tpl := graph.NewTemplate("ticket", "Ticket {{code}} opened.", vars)

	_, err := tpl.Instantiate(map[string]string{"code": "not-a-code"})
	assert.Error(t, err)

	out, err := tpl.Instantiate(map[string]string{"code": "ABC123"})
	require.NoError(t, err)
	assert.Equal(t, "Ticket ABC123 opened.", out)
}

func TestVariableSpec_Validate_OptionalWithDefaultNeedsNoValue(t *testing.T) {
	spec := graph.NewVariableSpec("topic", "string").WithDefault("Go")
	assert.NoError(t, spec.Validate(nil))
}
