// Package loggers provides ready-made observer hooks for agent runs.
package loggers

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/reagentlib/reagent"
	"gopkg.in/yaml.v3"
)

// SlogHook logs every loop event through a slog.Logger. Tool arguments and
// outputs are rendered as YAML block scalars so multi-line content stays
// readable. Nothing is truncated.
type SlogHook struct {
	logger *slog.Logger
}

// NewSlogHook creates a hook that logs to the given logger. A nil logger
// defaults to a text handler on stderr at debug level.
func NewSlogHook(logger *slog.Logger) *SlogHook {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return &SlogHook{logger: logger}
}

// OnBeforeStep logs step starts.
func (h *SlogHook) OnBeforeStep(ctx context.Context, e reagent.BeforeStepEvent) {
	h.logger.DebugContext(ctx, "step start", "step", e.Step)
}

// OnAfterStep logs step completions with the parsed reply kind.
func (h *SlogHook) OnAfterStep(ctx context.Context, e reagent.AfterStepEvent) {
	attrs := []any{
		"step", e.Step,
		"duration", e.Duration,
	}
	if e.Reply != nil {
		attrs = append(attrs, "kind", e.Reply.Kind.String())
		if e.Reply.ToolName != "" {
			attrs = append(attrs, "tool", e.Reply.ToolName)
		}
		if e.Reply.Reason != "" {
			attrs = append(attrs, "reason", e.Reply.Reason)
		}
	}
	h.logger.InfoContext(ctx, "step done", attrs...)
}

// OnBeforeModelCall logs the transcript length ahead of a model call.
func (h *SlogHook) OnBeforeModelCall(ctx context.Context, e reagent.BeforeModelCallEvent) {
	h.logger.DebugContext(ctx, "model call start",
		"step", e.Step,
		"messages", e.Transcript.Len(),
	)
}

// OnAfterModelCall logs the raw reply or the failure.
func (h *SlogHook) OnAfterModelCall(ctx context.Context, e reagent.AfterModelCallEvent) {
	if e.Err != nil {
		h.logger.ErrorContext(ctx, "model call failed",
			"step", e.Step,
			"duration", e.Duration,
			"error", e.Err,
		)
		return
	}
	h.logger.DebugContext(ctx, "model call done",
		"step", e.Step,
		"duration", e.Duration,
		"reply", e.Raw,
	)
}

// OnBeforeToolCall logs the tool name and YAML-rendered arguments.
func (h *SlogHook) OnBeforeToolCall(ctx context.Context, e reagent.BeforeToolCallEvent) {
	h.logger.InfoContext(ctx, "tool call start",
		"step", e.Step,
		"tool", e.ToolName,
		"args", asYAML(e.Args),
	)
}

// OnAfterToolCall logs the tool result or the failure.
func (h *SlogHook) OnAfterToolCall(ctx context.Context, e reagent.AfterToolCallEvent) {
	if e.Err != nil {
		h.logger.WarnContext(ctx, "tool call failed",
			"step", e.Step,
			"tool", e.ToolName,
			"duration", e.Duration,
			"error", e.Err,
		)
		return
	}
	h.logger.InfoContext(ctx, "tool call done",
		"step", e.Step,
		"tool", e.ToolName,
		"duration", e.Duration,
		"output", asYAML(e.Output),
	)
}

func asYAML(v any) string {
	if v == nil {
		return ""
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return "(failed to marshal)"
	}
	return strings.TrimRight(string(data), "\n")
}

// Compile-time checks that SlogHook implements all hook interfaces.
var (
	_ reagent.BeforeStepHook      = (*SlogHook)(nil)
	_ reagent.AfterStepHook       = (*SlogHook)(nil)
	_ reagent.BeforeModelCallHook = (*SlogHook)(nil)
	_ reagent.AfterModelCallHook  = (*SlogHook)(nil)
	_ reagent.BeforeToolCallHook  = (*SlogHook)(nil)
	_ reagent.AfterToolCallHook   = (*SlogHook)(nil)
)
