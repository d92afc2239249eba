package reagent

import (
	"context"
	"time"
)

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// BeforeStepEvent fires before each loop step, ahead of the model call.
type BeforeStepEvent struct {
	// Step is the 1-based step number about to execute.
	Step int
}

// AfterStepEvent fires after a step completes, whatever its outcome.
type AfterStepEvent struct {
	Step     int
	Reply    *ParsedReply
	Duration time.Duration
}

// BeforeModelCallEvent fires immediately before the Client is invoked.
type BeforeModelCallEvent struct {
	Step       int
	Transcript *Transcript
}

// AfterModelCallEvent fires when the Client returns.
type AfterModelCallEvent struct {
	Step     int
	Raw      string
	Duration time.Duration
	Err      error
}

// BeforeToolCallEvent fires before a parsed action is dispatched to the
// Registry.
type BeforeToolCallEvent struct {
	Step     int
	ToolName string
	Args     map[string]any
}

// AfterToolCallEvent fires when the Registry invocation returns.
type AfterToolCallEvent struct {
	Step     int
	ToolName string
	Args     map[string]any
	Output   any
	Duration time.Duration
	Err      error
}

// -----------------------------------------------------------------------------
// Hook interfaces
// -----------------------------------------------------------------------------

// A hook implements any combination of the interfaces below; it only receives
// the events it declares. Hooks observe and cannot alter the loop's behavior;
// they run synchronously in registration order.

// BeforeStepHook observes step starts.
type BeforeStepHook interface {
	OnBeforeStep(ctx context.Context, e BeforeStepEvent)
}

// AfterStepHook observes step completions.
type AfterStepHook interface {
	OnAfterStep(ctx context.Context, e AfterStepEvent)
}

// BeforeModelCallHook observes model calls before they are issued.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, e BeforeModelCallEvent)
}

// AfterModelCallHook observes model call results.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, e AfterModelCallEvent)
}

// BeforeToolCallHook observes tool invocations before dispatch.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, e BeforeToolCallEvent)
}

// AfterToolCallHook observes tool invocation results.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, e AfterToolCallEvent)
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// Hooks stores registered hooks and dispatches events to those implementing
// the relevant interface.
//
// Not thread-safe: register everything before starting a run. Fire methods
// are called only by the Agent.
type Hooks struct {
	hooks []any
}

// NewHooks creates an empty hook registry.
func NewHooks() *Hooks {
	return &Hooks{hooks: make([]any, 0)}
}

// Register adds a hook. The hook can implement any combination of the hook
// interfaces. Returns the registry for chaining.
func (h *Hooks) Register(hook any) *Hooks {
	h.hooks = append(h.hooks, hook)
	return h
}

func (h *Hooks) fireBeforeStep(ctx context.Context, e BeforeStepEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if v, ok := hook.(BeforeStepHook); ok {
			v.OnBeforeStep(ctx, e)
		}
	}
}

func (h *Hooks) fireAfterStep(ctx context.Context, e AfterStepEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if v, ok := hook.(AfterStepHook); ok {
			v.OnAfterStep(ctx, e)
		}
	}
}

func (h *Hooks) fireBeforeModelCall(ctx context.Context, e BeforeModelCallEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if v, ok := hook.(BeforeModelCallHook); ok {
			v.OnBeforeModelCall(ctx, e)
		}
	}
}

func (h *Hooks) fireAfterModelCall(ctx context.Context, e AfterModelCallEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if v, ok := hook.(AfterModelCallHook); ok {
			v.OnAfterModelCall(ctx, e)
		}
	}
}

func (h *Hooks) fireBeforeToolCall(ctx context.Context, e BeforeToolCallEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if v, ok := hook.(BeforeToolCallHook); ok {
			v.OnBeforeToolCall(ctx, e)
		}
	}
}

func (h *Hooks) fireAfterToolCall(ctx context.Context, e AfterToolCallEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if v, ok := hook.(AfterToolCallHook); ok {
			v.OnAfterToolCall(ctx, e)
		}
	}
}
