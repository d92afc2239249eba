package reagent

import (
	"context"
	"encoding/json"
	"fmt"
	"text/template"
	"time"
)

// DefaultMaxSteps bounds a run when the caller does not configure a limit.
// A step is one model call.
const DefaultMaxSteps = 10

// Status is the terminal outcome of a run.
type Status int

const (
	// StatusSuccess: the model produced a final answer.
	StatusSuccess Status = iota

	// StatusStepLimit: the configured step limit was reached before a final
	// answer. The partial transcript is returned for inspection.
	StatusStepLimit

	// StatusFatal: the LLM client failed (after its own internal retries),
	// or the run was cancelled. The loop performs no retries of its own at
	// this layer.
	StatusFatal
)

// String returns a short label for the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusStepLimit:
		return "step_limit_exceeded"
	case StatusFatal:
		return "fatal_error"
	default:
		return "unknown"
	}
}

// LoopResult is the outcome of one task execution. Whatever the status, the
// Transcript carries the full reasoning trace accumulated so far.
type LoopResult struct {
	Status     Status
	Answer     string
	Steps      int
	Transcript *Transcript
	Err        error
}

// Agent drives the ReAct loop: call the model, parse the reply, dispatch tool
// calls, append observations, repeat until a final answer or the step limit.
//
// One Agent may run many tasks, sequentially or concurrently: each Run owns
// its Transcript exclusively and the Registry is read-only, so Agent values
// are safe for concurrent use once configured.
//
//	agent := reagent.New(client).
//	    WithRegistry(registry).
//	    WithMaxSteps(8)
//	result := agent.Run(ctx, "Compute 123 + 456")
type Agent struct {
	client         Client
	registry       *Registry
	parser         *Parser
	hooks          *Hooks
	maxSteps       int
	behavior       string
	systemTemplate *template.Template
}

// New creates an Agent with the given client and defaults: an empty Registry,
// the default Parser and system prompt template, and DefaultMaxSteps.
func New(client Client) *Agent {
	return &Agent{
		client:         client,
		registry:       NewRegistry(),
		parser:         NewParser(),
		maxSteps:       DefaultMaxSteps,
		systemTemplate: DefaultSystemTemplate,
	}
}

// WithRegistry sets the tool registry.
func (a *Agent) WithRegistry(r *Registry) *Agent {
	a.registry = r
	return a
}

// WithParser sets the response parser. The parser's markers feed the system
// prompt, so custom markers only need to be configured once.
func (a *Agent) WithParser(p *Parser) *Agent {
	a.parser = p
	return a
}

// WithMaxSteps sets the step limit. Values below one fall back to
// DefaultMaxSteps.
func (a *Agent) WithMaxSteps(n int) *Agent {
	if n < 1 {
		n = DefaultMaxSteps
	}
	a.maxSteps = n
	return a
}

// WithBehavior adds behavior instructions and context to the system prompt.
// This is appended to the default ReAct instructions, not a replacement; use
// WithSystemTemplate to replace the whole prompt.
func (a *Agent) WithBehavior(behavior string) *Agent {
	a.behavior = behavior
	return a
}

// WithSystemTemplate replaces the system prompt template. See
// SystemPromptData for the fields available to the template.
func (a *Agent) WithSystemTemplate(tmpl *template.Template) *Agent {
	a.systemTemplate = tmpl
	return a
}

// WithHooks sets the hook registry.
func (a *Agent) WithHooks(h *Hooks) *Agent {
	a.hooks = h
	return a
}

// RegisterTool registers a tool on the agent's registry. Panics on duplicate
// names or invalid schemas, matching MustRegister.
func (a *Agent) RegisterTool(tool Tool) *Agent {
	a.registry.MustRegister(tool)
	return a
}

// Run executes one task to completion. It owns the Transcript for the
// lifetime of the run and returns it in the LoopResult regardless of outcome.
//
// Cancellation is checked between steps; a cancellation observed there
// produces StatusFatal with an error wrapping ErrCancelled, before the next
// model call is issued. Mid-call cancellation is the Client's concern (its
// per-attempt timeout and context handling).
func (a *Agent) Run(ctx context.Context, task string) *LoopResult {
	transcript := NewTranscript(a.systemPrompt(), task)

	for step := 1; step <= a.maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return &LoopResult{
				Status:     StatusFatal,
				Steps:      step - 1,
				Transcript: transcript,
				Err:        fmt.Errorf("%w: %v", ErrCancelled, err),
			}
		}

		a.hooks.fireBeforeStep(ctx, BeforeStepEvent{Step: step})
		stepStart := time.Now()

		raw, err := a.callModel(ctx, step, transcript)
		if err != nil {
			return &LoopResult{
				Status:     StatusFatal,
				Steps:      step,
				Transcript: transcript,
				Err:        fmt.Errorf("model call failed: %w", err),
			}
		}

		transcript.Append(RoleAssistant, raw)
		reply := a.parser.Parse(raw)

		switch reply.Kind {
		case ReplyFinalAnswer:
			a.hooks.fireAfterStep(ctx, AfterStepEvent{
				Step: step, Reply: reply, Duration: time.Since(stepStart),
			})
			return &LoopResult{
				Status:     StatusSuccess,
				Answer:     reply.Answer,
				Steps:      step,
				Transcript: transcript,
			}

		case ReplyAction:
			observation := a.executeAction(ctx, step, reply)
			transcript.Append(RoleObservation, observation)

		case ReplyMalformed:
			transcript.Append(RoleObservation, a.correctiveObservation(reply))
		}

		a.hooks.fireAfterStep(ctx, AfterStepEvent{
			Step: step, Reply: reply, Duration: time.Since(stepStart),
		})
	}

	return &LoopResult{
		Status:     StatusStepLimit,
		Steps:      a.maxSteps,
		Transcript: transcript,
		Err:        fmt.Errorf("no final answer after %d steps", a.maxSteps),
	}
}

// systemPrompt renders the system prompt from the template, registry catalog,
// and parser markers.
func (a *Agent) systemPrompt() string {
	start, end := a.parser.ActionMarkers()
	data := SystemPromptData{
		Behavior:     a.behavior,
		Catalog:      a.registry.Catalog(),
		AnswerMarker: a.parser.AnswerMarker(),
		ActionStart:  start,
		ActionEnd:    end,
	}

	content, err := ExecuteSystemTemplate(a.systemTemplate, data)
	if err != nil {
		// Degraded but usable: the catalog alone still names the tools.
		return data.Catalog
	}
	return content
}

// callModel invokes the client with model-call hooks around it.
func (a *Agent) callModel(
	ctx context.Context,
	step int,
	transcript *Transcript,
) (string, error) {
	a.hooks.fireBeforeModelCall(ctx, BeforeModelCallEvent{
		Step: step, Transcript: transcript,
	})

	start := time.Now()
	raw, err := a.client.Complete(ctx, transcript)

	a.hooks.fireAfterModelCall(ctx, AfterModelCallEvent{
		Step: step, Raw: raw, Duration: time.Since(start), Err: err,
	})
	return raw, err
}

// executeAction dispatches a parsed action to the registry and formats the
// outcome as an observation. Tool-layer failures become observations too:
// the model is expected to read them and self-correct, so they never
// terminate the run.
func (a *Agent) executeAction(ctx context.Context, step int, reply *ParsedReply) string {
	a.hooks.fireBeforeToolCall(ctx, BeforeToolCallEvent{
		Step: step, ToolName: reply.ToolName, Args: reply.Args,
	})

	start := time.Now()
	output, err := a.registry.Invoke(ctx, reply.ToolName, reply.Args)

	a.hooks.fireAfterToolCall(ctx, AfterToolCallEvent{
		Step:     step,
		ToolName: reply.ToolName,
		Args:     reply.Args,
		Output:   output,
		Duration: time.Since(start),
		Err:      err,
	})

	if err != nil {
		return fmt.Sprintf(
			"Observation: tool call failed: %v\n"+
				"Fix the tool name or arguments and try again, or give your %s",
			err, a.parser.AnswerMarker(),
		)
	}
	return "Observation: " + formatToolOutput(output)
}

// correctiveObservation tells the model why its reply could not be parsed and
// restates the format contract.
func (a *Agent) correctiveObservation(reply *ParsedReply) string {
	start, end := a.parser.ActionMarkers()
	return fmt.Sprintf(
		"Observation: your reply could not be processed: %s\n"+
			"Reply with either a tool call (a JSON object with exactly the keys "+
			`"tool" and "args" wrapped in %s and %s) or your %s`,
		reply.Reason, start, end, a.parser.AnswerMarker(),
	)
}

// formatToolOutput renders a tool result for the model. Strings pass through;
// everything else is marshaled as JSON so structured results stay readable.
func formatToolOutput(output any) string {
	switch v := output.(type) {
	case nil:
		return "(no output)"
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
