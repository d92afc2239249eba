package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func operandSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := Compile(Object(map[string]*Property{
		"a": Number("First operand"),
		"b": Number("Second operand"),
	}, "a", "b"))
	require.NoError(t, err)
	return s
}

func TestCompileNilSchema(t *testing.T) {
	s, err := Compile(nil)

	require.NoError(t, err)
	assert.Nil(t, s)
	// A nil Schema accepts anything.
	assert.Empty(t, s.Validate(map[string]any{"whatever": true}))
	assert.Nil(t, s.Raw())
}

func TestCompileInvalidSchema(t *testing.T) {
	_, err := Compile(map[string]any{"type": 42})

	assert.Error(t, err)
}

func TestValidateAccepts(t *testing.T) {
	s := operandSchema(t)

	assert.Empty(t, s.Validate(map[string]any{"a": 1.5, "b": 2.0}))
	// Go ints round-trip to JSON numbers before validation.
	assert.Empty(t, s.Validate(map[string]any{"a": 1, "b": 2}))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing required key", args: map[string]any{"a": 1.0}},
		{name: "nil args with required keys", args: nil},
		{name: "type mismatch", args: map[string]any{"a": "one", "b": 2.0}},
	}

	s := operandSchema(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues := s.Validate(tc.args)
			assert.NotEmpty(t, issues)
		})
	}
}

func TestValidateConstraints(t *testing.T) {
	s, err := Compile(Object(map[string]*Property{
		"count": Integer("How many").Min(1).Max(10),
		"mode":  String("Mode").Enum("fast", "slow"),
	}, "count"))
	require.NoError(t, err)

	assert.Empty(t, s.Validate(map[string]any{"count": 5, "mode": "fast"}))
	assert.NotEmpty(t, s.Validate(map[string]any{"count": 0}))
	assert.NotEmpty(t, s.Validate(map[string]any{"count": 5, "mode": "medium"}))
}

func TestObjectBuilder(t *testing.T) {
	raw := Object(map[string]*Property{
		"name": String("A name").MinLength(1),
		"tags": Array("Tags", map[string]any{"type": "string"}),
		"size": Number("Size").Default(1.0),
		"on":   Boolean("Enabled"),
	}, "name")

	assert.Equal(t, "object", raw["type"])
	assert.Equal(t, []string{"name"}, raw["required"])

	props, ok := raw["properties"].(map[string]any)
	require.True(t, ok)
	require.Len(t, props, 4)

	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
	assert.Equal(t, "A name", name["description"])
	assert.Equal(t, 1, name["minLength"])

	size := props["size"].(map[string]any)
	assert.Equal(t, 1.0, size["default"])
}

func TestMustCompilePanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(map[string]any{"type": 42})
	})
}
