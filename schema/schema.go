// Package schema builds and validates JSON Schemas for tool arguments.
//
// Tools declare their argument schema with the fluent builders:
//
//	schema.Object(map[string]*schema.Property{
//	    "a": schema.Number("First operand"),
//	    "b": schema.Number("Second operand"),
//	}, "a", "b") // "a" and "b" are required
//
// The Registry compiles each tool's schema at registration time and validates
// every invocation against it, so handlers only ever see arguments that passed
// the required-key and type checks.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema pairs the raw map representation (serialized into prompts) with a
// compiled validator (used at invocation time).
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map representation, suitable for marshaling into
// the tool catalog prompt.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate checks args against the schema. On failure it returns the list of
// individual defects (one per violated constraint) so callers can show the
// model exactly which keys were missing or mistyped. A nil Schema accepts
// anything.
func (s *Schema) Validate(args map[string]any) []string {
	if s == nil || s.compiled == nil {
		return nil
	}

	// The validator expects plain decoded-JSON values; a nil args map is the
	// same as an empty object.
	var instance any = map[string]any{}
	if args != nil {
		instance = anyify(args)
	}

	err := s.compiled.Validate(instance)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return leafMessages(ve)
	}
	return []string{err.Error()}
}

// leafMessages collects the most specific failure messages from a validation
// error tree. Interior nodes repeat their children's messages, so only leaves
// are reported.
func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		return []string{ve.Error()}
	}
	var msgs []string
	for _, cause := range ve.Causes {
		msgs = append(msgs, leafMessages(cause)...)
	}
	return msgs
}

// anyify round-trips args through JSON so that values produced in Go code
// (ints, typed structs) validate the same as values decoded from a model's
// action block.
func anyify(args map[string]any) any {
	data, err := json.Marshal(args)
	if err != nil {
		return args
	}
	decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return args
	}
	return decoded
}

// Compile compiles a raw schema map. A nil map compiles to a nil Schema,
// which accepts any arguments.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error. Use for schemas defined at
// init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Builders
// -----------------------------------------------------------------------------

// Object creates an object schema from named properties. Trailing arguments
// name the required properties.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	m := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		m["required"] = required
	}
	return m
}

// Property is a single object property under construction.
type Property struct {
	typ         string
	description string
	enum        []any
	minimum     *float64
	maximum     *float64
	minLength   *int
	maxLength   *int
	items       map[string]any
	def         any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}
	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.maxLength != nil {
		m["maxLength"] = *p.maxLength
	}
	if p.items != nil {
		m["items"] = p.items
	}
	if p.def != nil {
		m["default"] = p.def
	}
	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a floating-point property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Array creates an array property with the given item schema.
func Array(description string, items map[string]any) *Property {
	return &Property{typ: "array", description: description, items: items}
}

// Enum restricts the property to the given values.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Min sets the minimum for number/integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum for number/integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// MaxLength sets the maximum length for string properties.
func (p *Property) MaxLength(max int) *Property {
	p.maxLength = &max
	return p
}

// Default records a default value in the schema. Defaults are advisory for
// the model; the Registry does not inject them.
func (p *Property) Default(value any) *Property {
	p.def = value
	return p
}
