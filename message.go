package reagent

import "strings"

// Role identifies who produced a Message in the conversation.
type Role string

const (
	// RoleSystem is the system prompt. It is always the first message of a
	// Transcript and appears exactly once.
	RoleSystem Role = "system"

	// RoleUser is the task (or any other input) provided by the caller.
	RoleUser Role = "user"

	// RoleAssistant is a raw model reply, appended verbatim.
	RoleAssistant Role = "assistant"

	// RoleObservation is a synthetic turn injected by the loop after an
	// assistant action: a tool result, a tool error, or corrective feedback
	// for a malformed reply. Providers that have no dedicated role for this
	// receive observations as user turns (see models.LangChain).
	RoleObservation Role = "observation"
)

// Message is a single turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Transcript is the ordered conversation history for one task execution.
//
// It is append-only while a run is in progress and owned exclusively by the
// Agent that created it; it is handed back to the caller inside the LoopResult
// when the run terminates and is never reused across tasks. Because ownership
// is exclusive there is no locking.
type Transcript struct {
	messages []Message
}

// NewTranscript creates a Transcript seeded with the system prompt and the
// user task, the two messages every run starts from.
func NewTranscript(systemPrompt, task string) *Transcript {
	return &Transcript{
		messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: task},
		},
	}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(role Role, content string) {
	t.messages = append(t.messages, Message{Role: role, Content: content})
}

// Messages returns the messages in order. The returned slice is the
// transcript's backing store; callers must treat it as read-only.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message, or a zero Message when empty.
func (t *Transcript) Last() Message {
	if len(t.messages) == 0 {
		return Message{}
	}
	return t.messages[len(t.messages)-1]
}

// String renders the transcript for debugging, one role-prefixed block per
// message.
func (t *Transcript) String() string {
	var sb strings.Builder
	for i, msg := range t.messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("[")
		sb.WriteString(string(msg.Role))
		sb.WriteString("] ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
