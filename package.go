// Package reagent implements a linear ReAct agent loop: a model reasons in
// free text, requests tool calls through a strict marker protocol, reads the
// observations fed back to it, and terminates with a final answer.
//
// The core is four pieces:
//
//   - [Registry]: named tools with JSON-Schema-validated arguments.
//   - [Client]: the LLM provider seam. The models package implements it over
//     LangChainGo with classified failures and retry/backoff.
//   - [Parser]: classifies each raw reply as an action request, a final
//     answer, or malformed output.
//   - [Agent]: owns the conversation [Transcript], drives the
//     call→parse→dispatch→observe cycle, and enforces the step limit.
//
// # Quick start
//
//	client, err := models.NewDeepSeek("deepseek-chat", os.Getenv("DEEPSEEK_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry := reagent.NewRegistry().MustRegister(reagent.NewToolFunc(
//	    "add_numbers",
//	    "Add two numbers together",
//	    schema.Object(map[string]*schema.Property{
//	        "a": schema.Number("First operand"),
//	        "b": schema.Number("Second operand"),
//	    }, "a", "b"),
//	    func(ctx context.Context, args map[string]any) (any, error) {
//	        return args["a"].(float64) + args["b"].(float64), nil
//	    },
//	))
//
//	agent := reagent.New(client).
//	    WithRegistry(registry).
//	    WithMaxSteps(5)
//
//	result := agent.Run(ctx, "Compute 123 + 456")
//	switch result.Status {
//	case reagent.StatusSuccess:
//	    fmt.Println(result.Answer)
//	case reagent.StatusStepLimit:
//	    fmt.Println("gave up after", result.Steps, "steps")
//	case reagent.StatusFatal:
//	    log.Fatal(result.Err)
//	}
//
// # Error policy
//
// Tool-layer and parse-layer failures never terminate a run: they are
// rendered as Observation messages so the model can self-correct, bounded by
// the step limit. Only client failures (after the client's own retries) and
// cancellation produce [StatusFatal]. Whatever the outcome, the LoopResult
// carries the full transcript for debugging.
//
// # Concurrency
//
// A run is strictly sequential. Concurrent runs are fine: each Run owns its
// transcript, and the Registry is read-only after process-start registration.
// Register an observer with [Hooks] for logging and metrics; the loggers
// package has a ready-made slog hook.
package reagent
