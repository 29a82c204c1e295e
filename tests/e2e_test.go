package tests

import (
	"strings"
	"testing"

	"github.com/kaptinlin/schemakit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEndToEndScenarios exercises the six literal schema/input/verdict pairs
// used to validate the compiler and runtime end to end.
func TestEndToEndScenarios(t *testing.T) {
	compiler := jsonschema.NewCompiler()

	t.Run("minimum rejects negative integer", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{"type":"integer","minimum":0}`))
		require.NoError(t, err)

		result := schema.Validate(-1)
		assert.False(t, result.IsValid())

		errs := result.ToErrors()
		require.NotEmpty(t, errs)
		found := false
		for _, e := range errs {
			if e.Keyword == "minimum" {
				found = true
				assert.Equal(t, "0", e.Params["minimum"])
			}
		}
		assert.True(t, found, "expected a minimum keyword error")
	})

	t.Run("required reports the missing property", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{
			"type": "object",
			"properties": {"name": {"type": "string"}},
			"required": ["name"]
		}`))
		require.NoError(t, err)

		result := schema.ValidateMap(map[string]any{})
		assert.False(t, result.IsValid())

		errs := result.ToErrors()
		found := false
		for _, e := range errs {
			if e.Keyword == "required" {
				found = true
				assert.Equal(t, "'name'", e.Params["property"])
			}
		}
		assert.True(t, found, "expected a required keyword error naming 'name'")
	})

	t.Run("uniqueItems rejects a repeated element", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{
			"type": "array",
			"items": {"type": "string"},
			"uniqueItems": true
		}`))
		require.NoError(t, err)

		result := schema.Validate([]any{"a", "b", "a"})
		assert.False(t, result.IsValid())

		errs := result.ToErrors()
		found := false
		for _, e := range errs {
			if e.Keyword == "uniqueItems" {
				found = true
			}
		}
		assert.True(t, found, "expected a uniqueItems keyword error")
	})

	t.Run("self-referential $ref validates a recursive structure", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{
			"$defs": {
				"Node": {
					"type": "object",
					"properties": {
						"next": {"$ref": "#/$defs/Node"}
					}
				}
			},
			"$ref": "#/$defs/Node"
		}`))
		require.NoError(t, err)

		result := schema.ValidateMap(map[string]any{
			"next": map[string]any{
				"next": map[string]any{},
			},
		})
		assert.True(t, result.IsValid())
	})

	t.Run("anyOf picks the first matching branch", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{
			"anyOf": [
				{"type": "string", "minLength": 3},
				{"type": "integer", "minimum": 100}
			]
		}`))
		require.NoError(t, err)

		assert.True(t, schema.Validate("abcd").IsValid())
		assert.False(t, schema.Validate(42).IsValid())
	})

	t.Run("unevaluatedProperties rejects an extra property", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{
			"type": "object",
			"properties": {"a": {"type": "integer"}},
			"unevaluatedProperties": false
		}`))
		require.NoError(t, err)

		result := schema.ValidateMap(map[string]any{"a": 1, "b": 2})
		assert.False(t, result.IsValid())

		errs := result.ToErrors()
		found := false
		for _, e := range errs {
			if e.Keyword == "properties" && e.Params["property"] == "'b'" {
				found = true
			}
		}
		assert.True(t, found, "expected unevaluatedProperties to reject property 'b'")
	})
}

// TestBoundaryBehaviors covers the edge cases called out alongside the
// six end-to-end scenarios.
func TestBoundaryBehaviors(t *testing.T) {
	compiler := jsonschema.NewCompiler()

	t.Run("minLength counts Unicode code points, not code units", func(t *testing.T) {
		// Each of these is a single code point outside the BMP (surrogate pair in UTF-16).
		schema, err := compiler.Compile([]byte(`{"type":"string","minLength":2,"maxLength":2}`))
		require.NoError(t, err)

		assert.True(t, schema.Validate("𝄞𝄞").IsValid(), "two astral code points should satisfy minLength/maxLength 2")
		assert.False(t, schema.Validate("𝄞").IsValid())
	})

	t.Run("multipleOf tolerates decimal representation error", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{"type":"number","multipleOf":0.1}`))
		require.NoError(t, err)

		assert.True(t, schema.Validate(0.3).IsValid(), "0.3 should be treated as a multiple of 0.1")
		assert.False(t, schema.Validate(0.35).IsValid())
	})

	t.Run("minContains 0 is trivially satisfied by an empty array", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{
			"type": "array",
			"contains": {"type": "string"},
			"minContains": 0
		}`))
		require.NoError(t, err)

		assert.True(t, schema.Validate([]any{}).IsValid())
		assert.True(t, schema.Validate([]any{1, 2, 3}).IsValid(), "minContains:0 is satisfied even with zero matches")
	})

	t.Run("uniqueItems detects objects equal under key reordering", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{"type":"array","uniqueItems":true}`))
		require.NoError(t, err)

		result := schema.ValidateJSON([]byte(`[{"a":1,"b":2},{"b":2,"a":1}]`))
		assert.False(t, result.IsValid(), "objects equal up to key order must count as duplicates")
	})

	t.Run("property names that shadow Go map builtins are plain map keys", func(t *testing.T) {
		schema, err := compiler.Compile([]byte(`{
			"type": "object",
			"properties": {
				"constructor": {"type": "string"},
				"toString": {"type": "string"}
			},
			"required": ["constructor", "toString"]
		}`))
		require.NoError(t, err)

		result := schema.ValidateMap(map[string]any{"constructor": "x", "toString": "y"})
		assert.True(t, result.IsValid())

		result = schema.ValidateMap(map[string]any{"constructor": "x"})
		assert.False(t, result.IsValid())
	})
}

// TestIdempotentCompilation checks that compiling the same schema twice
// produces validators that agree on every input.
func TestIdempotentCompilation(t *testing.T) {
	schemaJSON := []byte(`{"type":"object","properties":{"n":{"type":"integer","minimum":0}},"required":["n"]}`)

	first, err := jsonschema.NewCompiler().Compile(schemaJSON)
	require.NoError(t, err)
	second, err := jsonschema.NewCompiler().Compile(schemaJSON)
	require.NoError(t, err)

	inputs := []any{
		map[string]any{"n": 1},
		map[string]any{"n": -1},
		map[string]any{},
		"not an object",
	}
	for _, input := range inputs {
		assert.Equal(t, first.Validate(input).IsValid(), second.Validate(input).IsValid())
	}
}

// TestLocalDanglingRefFailsCompile verifies that a $ref into the same
// document that can never resolve is a hard compile-time error, unlike an
// external absolute URI that simply hasn't been registered yet.
func TestLocalDanglingRefFailsCompile(t *testing.T) {
	compiler := jsonschema.NewCompiler()

	_, err := compiler.Compile([]byte(`{
		"type": "object",
		"properties": {
			"child": {"$ref": "#/$defs/DoesNotExist"}
		}
	}`))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "#/$defs/DoesNotExist"))
}

// TestLocalDanglingRefInConditionalFailsCompile checks that a dangling local
// ref hidden under "if"/"then"/"else" - fields outside the more commonly
// exercised properties/allOf tree - is still caught at compile time rather
// than silently validating as an always-true condition.
func TestLocalDanglingRefInConditionalFailsCompile(t *testing.T) {
	compiler := jsonschema.NewCompiler()

	_, err := compiler.Compile([]byte(`{
		"type": "object",
		"if": {"$ref": "#/$defs/DoesNotExist"},
		"then": {"required": ["name"]}
	}`))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "#/$defs/DoesNotExist"))
}

// TestLocalDanglingRefInUnevaluatedPropertiesFailsCompile covers the
// unevaluatedProperties branch of the same gap.
func TestLocalDanglingRefInUnevaluatedPropertiesFailsCompile(t *testing.T) {
	compiler := jsonschema.NewCompiler()

	_, err := compiler.Compile([]byte(`{
		"type": "object",
		"unevaluatedProperties": {"$ref": "#/$defs/DoesNotExist"}
	}`))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "#/$defs/DoesNotExist"))
}
