// Package models implements the reagent.Client seam over LangChainGo,
// including failure classification and the retry/backoff decorator. Keeping
// retry policy here means the agent loop's state machine stays simple and
// deterministic for testing: tests inject a stub Client and never see a
// backoff.
package models

import (
	"context"
	"errors"
	"time"

	"github.com/reagentlib/reagent"
	"github.com/tmc/langchaingo/llms"
)

// LangChain adapts an llms.Model to the reagent.Client interface. It
// serializes the transcript into provider messages, applies sampling
// parameters, and enforces a per-attempt timeout. Failures come back as
// classified *reagent.ClientError values; reply text is returned unmodified.
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	client := models.NewLangChain(llm).
//	    WithModelName("gpt-4o-mini").
//	    WithTemperature(0.1).
//	    WithMaxTokens(2000).
//	    WithTimeout(30 * time.Second)
//
// LangChain performs a single attempt per Complete call; wrap it in Retry for
// backoff.
type LangChain struct {
	model       llms.Model
	modelName   string
	temperature *float64
	maxTokens   int
	timeout     time.Duration
}

// NewLangChain creates a client over the given llms.Model.
func NewLangChain(model llms.Model) *LangChain {
	return &LangChain{model: model}
}

// WithModelName sets the backend model identifier sent with each request.
func (m *LangChain) WithModelName(name string) *LangChain {
	m.modelName = name
	return m
}

// WithTemperature sets the sampling temperature in [0, 1].
func (m *LangChain) WithTemperature(t float64) *LangChain {
	m.temperature = &t
	return m
}

// WithMaxTokens caps the reply length.
func (m *LangChain) WithMaxTokens(n int) *LangChain {
	m.maxTokens = n
	return m
}

// WithTimeout sets the per-attempt wall-clock limit. Zero means no limit
// beyond the caller's context.
func (m *LangChain) WithTimeout(d time.Duration) *LangChain {
	m.timeout = d
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LangChain) Unwrap() llms.Model {
	return m.model
}

// Complete implements reagent.Client with a single provider attempt.
func (m *LangChain) Complete(
	ctx context.Context,
	transcript *reagent.Transcript,
) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	resp, err := m.model.GenerateContent(ctx, messagesFor(transcript), m.callOptions()...)
	if err != nil {
		return "", Classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &reagent.ClientError{
			Kind: reagent.KindTransport,
			Err:  errors.New("provider returned no choices"),
		}
	}
	return resp.Choices[0].Content, nil
}

func (m *LangChain) callOptions() []llms.CallOption {
	var opts []llms.CallOption
	if m.modelName != "" {
		opts = append(opts, llms.WithModel(m.modelName))
	}
	if m.temperature != nil {
		opts = append(opts, llms.WithTemperature(*m.temperature))
	}
	if m.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(m.maxTokens))
	}
	return opts
}

// messagesFor serializes the transcript into provider messages. Observations
// become user turns: chat-completions providers have no role for synthetic
// tool feedback outside their own function-calling protocol, and the model
// reads them the same way.
func messagesFor(transcript *reagent.Transcript) []llms.MessageContent {
	msgs := make([]llms.MessageContent, 0, transcript.Len())
	for _, m := range transcript.Messages() {
		var role llms.ChatMessageType
		switch m.Role {
		case reagent.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case reagent.RoleAssistant:
			role = llms.ChatMessageTypeAI
		case reagent.RoleUser, reagent.RoleObservation:
			role = llms.ChatMessageTypeHuman
		default:
			role = llms.ChatMessageTypeHuman
		}
		msgs = append(msgs, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextContent{Text: m.Content}},
		})
	}
	return msgs
}

// Compile-time check that LangChain implements reagent.Client.
var _ reagent.Client = (*LangChain)(nil)
