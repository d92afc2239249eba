package reagent

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors returned by the Registry and the Agent loop.
// Use errors.Is to test for them.
var (
	// ErrDuplicateTool is returned by Registry.Register when a tool with the
	// same name is already registered.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrUnknownTool is returned by Registry.Lookup and Registry.Invoke when
	// no tool with the requested name exists.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrCancelled is reported by LoopResult.Err when the caller's context
	// was cancelled between steps.
	ErrCancelled = errors.New("run cancelled")
)

// ArgumentError reports that a tool invocation's arguments failed schema
// validation. The handler is never called when this error is returned.
type ArgumentError struct {
	// Tool is the name of the tool whose arguments were rejected.
	Tool string

	// Issues lists the individual validation failures (missing required
	// keys, type mismatches, constraint violations).
	Issues []string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf(
		"invalid arguments for tool %q: %s",
		e.Tool, strings.Join(e.Issues, "; "),
	)
}

// ToolError wraps a failure raised by a tool handler itself, including
// recovered panics. It exists so handler failures never propagate uncaught
// into the agent loop.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %q failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// FailureKind classifies an LLM client failure. The Retry decorator uses the
// kind to decide whether another attempt is worthwhile; the agent loop
// surfaces any client failure as a fatal LoopResult.
type FailureKind int

const (
	// KindTransport covers connection errors, per-attempt timeouts, and
	// 5xx-class server errors. Retried with backoff.
	KindTransport FailureKind = iota

	// KindAuth covers invalid or missing credentials (401/403). Not retried.
	KindAuth

	// KindRateLimit covers 429 responses. Retried only when the response
	// carried a Retry-After hint, in which case the hint is the delay.
	KindRateLimit

	// KindBadRequest covers the remaining 4xx-class client errors. Not
	// retried.
	KindBadRequest

	// KindUnavailable is the terminal classification after all retry
	// attempts are exhausted; the wrapped error is the last underlying
	// cause.
	KindUnavailable
)

// String returns a short label for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindBadRequest:
		return "bad_request"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ClientError is a classified LLM client failure.
type ClientError struct {
	// Kind classifies the failure.
	Kind FailureKind

	// StatusCode is the HTTP status that produced the classification, when
	// one was observed. Zero for pure network failures.
	StatusCode int

	// RetryAfter is the provider's Retry-After hint for rate-limit
	// responses. Zero when absent.
	RetryAfter time.Duration

	// Err is the underlying cause.
	Err error
}

func (e *ClientError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm client: %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm client: %s: %v", e.Kind, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the Retry decorator may attempt the call again.
func (e *ClientError) Retryable() bool {
	switch e.Kind {
	case KindTransport:
		return true
	case KindRateLimit:
		return e.RetryAfter > 0
	default:
		return false
	}
}
