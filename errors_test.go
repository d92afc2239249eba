package reagent

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArgumentErrorMessage(t *testing.T) {
	err := &ArgumentError{
		Tool:   "add_numbers",
		Issues: []string{"missing property 'a'", "missing property 'b'"},
	}

	assert.Contains(t, err.Error(), `"add_numbers"`)
	assert.Contains(t, err.Error(), "missing property 'a'; missing property 'b'")
}

func TestToolErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ToolError{Tool: "flaky", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"flaky"`)
}

func TestClientErrorRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *ClientError
		want bool
	}{
		{
			name: "transport",
			err:  &ClientError{Kind: KindTransport},
			want: true,
		},
		{
			name: "rate limit with hint",
			err:  &ClientError{Kind: KindRateLimit, RetryAfter: time.Second},
			want: true,
		},
		{
			name: "rate limit without hint",
			err:  &ClientError{Kind: KindRateLimit},
			want: false,
		},
		{
			name: "auth",
			err:  &ClientError{Kind: KindAuth},
			want: false,
		},
		{
			name: "bad request",
			err:  &ClientError{Kind: KindBadRequest},
			want: false,
		},
		{
			name: "unavailable",
			err:  &ClientError{Kind: KindUnavailable},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Retryable())
		})
	}
}

func TestClientErrorMessage(t *testing.T) {
	withStatus := &ClientError{
		Kind:       KindRateLimit,
		StatusCode: 429,
		Err:        errors.New("too many requests"),
	}
	assert.Contains(t, withStatus.Error(), "rate_limit")
	assert.Contains(t, withStatus.Error(), "429")

	withoutStatus := &ClientError{
		Kind: KindTransport,
		Err:  errors.New("connection reset"),
	}
	assert.Contains(t, withoutStatus.Error(), "transport")
	assert.NotContains(t, withoutStatus.Error(), "status")
}
