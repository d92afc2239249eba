package models

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reagentlib/reagent"
)

// statusErr mimics provider errors that carry a typed status accessor.
type statusErr struct {
	status int
	msg    string
}

func (e *statusErr) Error() string       { return e.msg }
func (e *statusErr) HTTPStatusCode() int { return e.status }

// timeoutErr mimics a net.Error timeout.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	original := &reagent.ClientError{
		Kind:       reagent.KindAuth,
		StatusCode: 401,
		Err:        errors.New("bad key"),
	}

	assert.Same(t, original, Classify(original))
}

func TestClassifyKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   reagent.FailureKind
		wantStatus int
	}{
		{
			name:     "deadline exceeded",
			err:      fmt.Errorf("call: %w", context.DeadlineExceeded),
			wantKind: reagent.KindTransport,
		},
		{
			name:     "network timeout",
			err:      timeoutErr{},
			wantKind: reagent.KindTransport,
		},
		{
			name:       "typed 401",
			err:        &statusErr{status: 401, msg: "unauthorized"},
			wantKind:   reagent.KindAuth,
			wantStatus: 401,
		},
		{
			name:       "typed 403",
			err:        &statusErr{status: 403, msg: "forbidden"},
			wantKind:   reagent.KindAuth,
			wantStatus: 403,
		},
		{
			name:       "typed 429",
			err:        &statusErr{status: 429, msg: "too many requests"},
			wantKind:   reagent.KindRateLimit,
			wantStatus: 429,
		},
		{
			name:       "typed 400",
			err:        &statusErr{status: 400, msg: "bad request"},
			wantKind:   reagent.KindBadRequest,
			wantStatus: 400,
		},
		{
			name:       "typed 500",
			err:        &statusErr{status: 500, msg: "internal"},
			wantKind:   reagent.KindTransport,
			wantStatus: 500,
		},
		{
			name:       "status in message",
			err:        errors.New("API returned unexpected status code: 429"),
			wantKind:   reagent.KindRateLimit,
			wantStatus: 429,
		},
		{
			name:       "status in message with colon",
			err:        errors.New("request failed: status: 503 service unavailable"),
			wantKind:   reagent.KindTransport,
			wantStatus: 503,
		},
		{
			name:     "unidentifiable",
			err:      errors.New("something strange happened"),
			wantKind: reagent.KindTransport,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)

			var ce *reagent.ClientError
			require.ErrorAs(t, got, &ce)
			assert.Equal(t, tc.wantKind, ce.Kind)
			assert.Equal(t, tc.wantStatus, ce.StatusCode)
			assert.ErrorIs(t, got, tc.err)
		})
	}
}
