package reagent

import "context"

// Tool is a single named capability the model may ask the loop to invoke.
//
// Responsibility split:
//   - Tool: accept validated arguments, execute business logic, return a raw
//     result.
//   - Registry: validate arguments against the schema, call the handler,
//     contain handler failures.
//
// The argument mapping mirrors the wire contract exactly: the model emits
// `{"tool": ..., "args": {...}}` and the args object arrives here as decoded
// JSON. Tools that want stricter typing should validate via their schema and
// convert inside the handler.
type Tool interface {
	// Name returns the identifier used in action blocks. Must be unique
	// within a Registry.
	Name() string

	// Description returns a human-readable description shown to the LLM in
	// the tool catalog.
	Description() string

	// ParameterSchema returns the JSON Schema for the tool's arguments.
	// Nil means the tool takes no arguments and none are validated.
	ParameterSchema() map[string]any

	// Call executes the tool. The arguments have already passed schema
	// validation when called through Registry.Invoke.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ToolFunc adapts a plain function into a Tool.
type ToolFunc struct {
	name        string
	description string
	schema      map[string]any
	fn          func(ctx context.Context, args map[string]any) (any, error)
}

// NewToolFunc creates a Tool from a function.
//
//	add := reagent.NewToolFunc(
//	    "add_numbers",
//	    "Add two numbers together",
//	    schema.Object(map[string]*schema.Property{
//	        "a": schema.Number("First operand"),
//	        "b": schema.Number("Second operand"),
//	    }, "a", "b"),
//	    func(ctx context.Context, args map[string]any) (any, error) {
//	        return args["a"].(float64) + args["b"].(float64), nil
//	    },
//	)
func NewToolFunc(
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Description returns the description shown in the tool catalog.
func (t *ToolFunc) Description() string {
	return t.description
}

// ParameterSchema returns the JSON Schema for the tool's arguments.
func (t *ToolFunc) ParameterSchema() map[string]any {
	return t.schema
}

// Call executes the wrapped function.
func (t *ToolFunc) Call(ctx context.Context, args map[string]any) (any, error) {
	return t.fn(ctx, args)
}

// Compile-time check that ToolFunc implements Tool.
var _ Tool = (*ToolFunc)(nil)
