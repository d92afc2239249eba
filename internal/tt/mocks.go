// Package tt holds shared test doubles for the agent loop and client tests.
package tt

import (
	"context"
	"errors"

	"github.com/reagentlib/reagent"
)

// -----------------------------------------------------------------------------
// MockClient - implements reagent.Client with scripted replies
// -----------------------------------------------------------------------------

// MockClient is a configurable mock that implements reagent.Client. Replies
// and errors are consumed in queue order, one per Complete call.
type MockClient struct {
	replies   []string
	errors    []error
	callCount int

	// CapturedTranscripts stores a snapshot of the transcript messages passed
	// to each Complete call. Populated automatically on every call.
	CapturedTranscripts [][]reagent.Message

	// OnComplete, when set, runs at the start of every Complete call with the
	// 1-based call number. Useful for cancelling a context mid-run.
	OnComplete func(call int)
}

// NewMockClient creates an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// AddReply queues a reply for the next call.
func (m *MockClient) AddReply(text string) *MockClient {
	// Extend errors slice so replies and errors stay index-aligned.
	for len(m.errors) < len(m.replies) {
		m.errors = append(m.errors, nil)
	}
	m.replies = append(m.replies, text)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues an error for the next call.
func (m *MockClient) AddError(err error) *MockClient {
	for len(m.errors) < len(m.replies) {
		m.errors = append(m.errors, nil)
	}
	m.replies = append(m.replies, "")
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times Complete has been called.
func (m *MockClient) CallCount() int {
	return m.callCount
}

// Complete implements reagent.Client.
func (m *MockClient) Complete(
	ctx context.Context,
	transcript *reagent.Transcript,
) (string, error) {
	idx := m.callCount
	m.callCount++

	if m.OnComplete != nil {
		m.OnComplete(m.callCount)
	}

	snapshot := make([]reagent.Message, transcript.Len())
	copy(snapshot, transcript.Messages())
	m.CapturedTranscripts = append(m.CapturedTranscripts, snapshot)

	if idx < len(m.errors) && m.errors[idx] != nil {
		return "", m.errors[idx]
	}
	if idx < len(m.replies) {
		return m.replies[idx], nil
	}
	return "", errors.New("mock client: no reply queued")
}

// Compile-time check that MockClient implements reagent.Client.
var _ reagent.Client = (*MockClient)(nil)
