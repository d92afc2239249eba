package reagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSystemTemplate(t *testing.T) {
	content, err := ExecuteSystemTemplate(DefaultSystemTemplate, SystemPromptData{
		Behavior:     "You are a careful assistant.",
		Catalog:      "Available tools:\n\n- echo: Echo text\n",
		AnswerMarker: DefaultAnswerMarker,
		ActionStart:  DefaultActionStart,
		ActionEnd:    DefaultActionEnd,
	})

	require.NoError(t, err)
	assert.Contains(t, content, "You are a careful assistant.")
	assert.Contains(t, content, "- echo: Echo text")
	assert.Contains(t, content, "[ACTION_START]")
	assert.Contains(t, content, "[ACTION_END]")
	assert.Contains(t, content, "Final Answer:")
	assert.Contains(t, content, `"tool"`)
	assert.Contains(t, content, `"args"`)
}

func TestDefaultSystemTemplateWithoutBehavior(t *testing.T) {
	content, err := ExecuteSystemTemplate(DefaultSystemTemplate, SystemPromptData{
		Catalog:      "Available tools:\n",
		AnswerMarker: DefaultAnswerMarker,
		ActionStart:  DefaultActionStart,
		ActionEnd:    DefaultActionEnd,
	})

	require.NoError(t, err)
	assert.NotContains(t, content, "{{")
	assert.Contains(t, content, "Available tools:")
}
