package reagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscriptSeedsSystemAndTask(t *testing.T) {
	tr := NewTranscript("be helpful", "add 1 and 2")

	require.Equal(t, 2, tr.Len())
	msgs := tr.Messages()
	assert.Equal(t, Message{Role: RoleSystem, Content: "be helpful"}, msgs[0])
	assert.Equal(t, Message{Role: RoleUser, Content: "add 1 and 2"}, msgs[1])
}

func TestTranscriptAppendPreservesOrder(t *testing.T) {
	tr := NewTranscript("sys", "task")
	tr.Append(RoleAssistant, "thinking")
	tr.Append(RoleObservation, "Observation: 3")
	tr.Append(RoleAssistant, "Final Answer: 3")

	require.Equal(t, 5, tr.Len())
	assert.Equal(t, Message{Role: RoleAssistant, Content: "Final Answer: 3"}, tr.Last())

	roles := make([]Role, 0, tr.Len())
	for _, m := range tr.Messages() {
		roles = append(roles, m.Role)
	}
	assert.Equal(t, []Role{
		RoleSystem, RoleUser, RoleAssistant, RoleObservation, RoleAssistant,
	}, roles)
}

func TestTranscriptLastWhenEmpty(t *testing.T) {
	tr := &Transcript{}

	assert.Equal(t, Message{}, tr.Last())
	assert.Equal(t, 0, tr.Len())
}

func TestTranscriptString(t *testing.T) {
	tr := NewTranscript("sys", "task")
	tr.Append(RoleAssistant, "done")

	s := tr.String()
	assert.Contains(t, s, "[system] sys")
	assert.Contains(t, s, "[user] task")
	assert.Contains(t, s, "[assistant] done")
}
