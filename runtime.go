package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ValidateJSON decodes raw JSON bytes and validates the result against the
// schema. Numbers are decoded as json.Number so integer/number
// discrimination in evaluateType and multipleOf's exact-rational arithmetic
// behave the same as for a schema compiled from the same bytes.
func (s *Schema) ValidateJSON(data []byte) *EvaluationResult {
	var instance any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&instance); err != nil {
		result := NewEvaluationResult(s).SetInvalid()
		//nolint:errcheck
		result.AddError(NewEvaluationError("$root", "invalid_json", "Instance is not valid JSON: {error}", map[string]any{
			"error": err.Error(),
		}))
		return result
	}
	return s.Validate(instance)
}

// ValidateMap validates a decoded JSON object directly, without a
// marshal/unmarshal round trip.
func (s *Schema) ValidateMap(data map[string]any) *EvaluationResult {
	return s.Validate(data)
}

// ValidateStruct validates an arbitrary Go value by marshaling it to JSON
// and decoding the result the same way ValidateJSON does. Struct field tags
// (json:"...") determine the property names seen by the schema.
func (s *Schema) ValidateStruct(v any) *EvaluationResult {
	data, err := s.GetCompiler().jsonEncoder(v)
	if err != nil {
		result := NewEvaluationResult(s).SetInvalid()
		//nolint:errcheck
		result.AddError(NewEvaluationError("$root", "invalid_struct", "Value could not be marshaled to JSON: {error}", map[string]any{
			"error": err.Error(),
		}))
		return result
	}
	return s.ValidateJSON(data)
}

// IsValid reports whether instance conforms to the schema. It is a
// convenience wrapper around Validate for callers that don't need the
// detailed error tree.
func (s *Schema) IsValid(instance any) bool {
	return s.Validate(instance).IsValid()
}

// ValidationError wraps a failed EvaluationResult as a Go error, suitable
// for returning from Assert.
type ValidationError struct {
	Result *EvaluationResult
}

func (e *ValidationError) Error() string {
	errs := e.Result.GetDetailedErrors()
	if len(errs) == 0 {
		return "instance does not satisfy schema"
	}
	// GetDetailedErrors returns a map, so iteration order is randomized;
	// sort by path to keep Error() deterministic across calls.
	paths := make([]string, 0, len(errs))
	for path := range errs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	msg, sep := "instance does not satisfy schema", ": "
	for _, path := range paths {
		if path == "" {
			msg += sep + errs[path]
		} else {
			msg += fmt.Sprintf("%sat %s: %s", sep, path, errs[path])
		}
		sep = "; "
	}
	return msg
}

// Assert validates instance and returns it back on success, or a
// *ValidationError whose message lists every failing path when invalid. It
// lets callers that want err != nil control flow avoid inspecting an
// EvaluationResult, while still handing back the instance - coerced into an
// admitted type first, when the compiler has coercion enabled - for
// assignment in the same statement as the check.
func (s *Schema) Assert(instance any) (any, error) {
	coerced := coerceInstance(s, instance)
	result := s.Validate(coerced)
	if result.IsValid() {
		return coerced, nil
	}
	return nil, &ValidationError{Result: result}
}

// FlatError is one failed keyword evaluation, flattened out of the
// EvaluationResult's Details tree into a single-level shape that's easy to
// range over or serialize without walking recursive structures.
type FlatError struct {
	InstancePath string         `json:"instancePath"`
	SchemaPath   string         `json:"schemaPath"`
	Keyword      string         `json:"keyword"`
	Params       map[string]any `json:"params,omitempty"`
	Message      string         `json:"message"`
}

// ToErrors flattens the evaluation result's Details hierarchy into a list of
// FlatError values, one per failed keyword, in the style of other JSON
// Schema validator libraries' "errors" output.
func (e *EvaluationResult) ToErrors() []FlatError {
	var out []FlatError
	e.collectFlatErrors(&out)
	return out
}

func (e *EvaluationResult) collectFlatErrors(out *[]FlatError) {
	for _, err := range e.Errors {
		*out = append(*out, FlatError{
			InstancePath: e.InstanceLocation,
			SchemaPath:   e.EvaluationPath,
			Keyword:      err.Keyword,
			Params:       err.Params,
			Message:      err.Error(),
		})
	}
	for _, detail := range e.Details {
		detail.collectFlatErrors(out)
	}
}
