package reagent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/reagentlib/reagent/schema"
)

// Registry maps tool names to their implementations and compiled argument
// schemas.
//
// A Registry is built once at process start and treated as read-only from
// then on: Lookup and Invoke perform no writes, so a single Registry is safe
// to share across concurrently running Agent instances without locking.
// Register is not synchronized; finish registration before starting any run.
type Registry struct {
	tools   map[string]Tool
	schemas map[string]*schema.Schema
	order   []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:   make(map[string]Tool),
		schemas: make(map[string]*schema.Schema),
	}
}

// Register adds a tool. It fails with ErrDuplicateTool when a tool with the
// same name is already present, and with a compile error when the tool's
// parameter schema is not a valid JSON Schema. Schemas are compiled eagerly
// so an invalid one surfaces at startup, not mid-run.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("register: tool is nil")
	}
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("register: tool has empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateTool)
	}

	compiled, err := schema.Compile(tool.ParameterSchema())
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}

	r.tools[name] = tool
	r.schemas[name] = compiled
	r.order = append(r.order, name)
	return nil
}

// MustRegister is like Register but panics on error and returns the Registry
// for chaining. Use at process start where a bad registration is a
// programming error.
func (r *Registry) MustRegister(tool Tool) *Registry {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the named tool, or ErrUnknownTool.
func (r *Registry) Lookup(name string) (Tool, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return tool, nil
}

// Names returns the registered tool names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Invoke validates args against the tool's schema and calls its handler.
//
// Failure modes, in order:
//   - ErrUnknownTool: no tool with that name; nothing is executed.
//   - *ArgumentError: args violate the schema; the handler is never called.
//   - *ToolError: the handler returned an error or panicked; the cause is
//     wrapped so it cannot propagate uncaught into the loop.
func (r *Registry) Invoke(
	ctx context.Context,
	name string,
	args map[string]any,
) (result any, err error) {
	tool, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	if issues := r.schemas[name].Validate(args); len(issues) > 0 {
		return nil, &ArgumentError{Tool: name, Issues: issues}
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = &ToolError{Tool: name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	out, callErr := tool.Call(ctx, args)
	if callErr != nil {
		return nil, &ToolError{Tool: name, Err: callErr}
	}
	return out, nil
}

// Catalog renders the tool catalog for the system prompt: each tool's name,
// description, and parameter schema, in registration order.
func (r *Registry) Catalog() string {
	var sb strings.Builder
	sb.WriteString("Available tools:\n")

	for _, name := range r.order {
		tool := r.tools[name]
		fmt.Fprintf(&sb, "\n- %s: %s\n", tool.Name(), tool.Description())
		if raw := tool.ParameterSchema(); raw != nil {
			schemaJSON, err := json.MarshalIndent(raw, "  ", "  ")
			if err == nil {
				sb.WriteString("  Parameters: ")
				sb.Write(schemaJSON)
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}
