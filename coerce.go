package jsonschema

import (
	"strconv"
	"strings"
)

// coercionTargets lists the target types a coercion pass may produce,
// matching the keys accepted in Compiler.Coerce's map[string]bool form.
var coercionTargets = []string{"string", "number", "integer", "boolean", "null", "array"}

// coerceEnabled reports whether target is an enabled coercion target for
// compiler's configuration. Coerce may be nil/false (disabled), true (every
// target enabled), or a map[string]bool selecting individual targets.
func coerceEnabled(compiler *Compiler, target string) bool {
	if compiler == nil {
		return false
	}
	switch cfg := compiler.Coerce.(type) {
	case nil:
		return false
	case bool:
		return cfg
	case map[string]bool:
		return cfg[target]
	default:
		return false
	}
}

// coerceAny reports whether any coercion target is enabled, used to skip
// the coercion pass entirely for schemas compiled with the default
// (disabled) configuration.
func coerceAny(compiler *Compiler) bool {
	if compiler == nil {
		return false
	}
	switch cfg := compiler.Coerce.(type) {
	case nil:
		return false
	case bool:
		return cfg
	case map[string]bool:
		for _, t := range coercionTargets {
			if cfg[t] {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// coerceInstance attempts to convert instance into one of the types
// schema.Type admits, consulting the compiler's Coerce configuration for
// which conversions are allowed. It returns the original instance
// unchanged whenever no configured, applicable conversion succeeds, so
// callers can use the result unconditionally without checking an "ok"
// flag - a failed coercion simply falls through to the existing
// type-mismatch error from evaluateType.
func coerceInstance(schema *Schema, instance any) any {
	if schema == nil || len(schema.Type) == 0 {
		return instance
	}
	compiler := schema.GetCompiler()
	if !coerceAny(compiler) {
		return instance
	}

	currentType := getDataType(instance)
	for _, target := range schema.Type {
		if target == currentType || (target == "number" && currentType == "integer") {
			return instance // Already satisfies one admitted type, nothing to coerce.
		}
	}

	for _, target := range schema.Type {
		if !coerceEnabled(compiler, target) {
			continue
		}
		if coerced, ok := coerceTo(instance, currentType, target); ok {
			return coerced
		}
	}
	return instance
}

// coerceTo converts instance (of currentType) to target, per the
// conversion table: string<->number/integer, string->boolean, string->null,
// number->boolean, number/boolean->string, and value->array (wrapping).
func coerceTo(instance any, currentType, target string) (any, bool) {
	switch target {
	case "string":
		return coerceToString(instance, currentType)
	case "number", "integer":
		return coerceToNumber(instance, currentType, target)
	case "boolean":
		return coerceToBoolean(instance, currentType)
	case "null":
		return coerceToNull(instance, currentType)
	case "array":
		return coerceToArray(instance, currentType)
	default:
		return instance, false
	}
}

func coerceToString(instance any, currentType string) (any, bool) {
	switch currentType {
	case "number", "integer":
		return formatNumberInstance(instance), true
	case "boolean":
		b, ok := instance.(bool)
		if !ok {
			return instance, false
		}
		if b {
			return "true", true
		}
		return "false", true
	default:
		return instance, false
	}
}

func coerceToNumber(instance any, currentType, target string) (any, bool) {
	if currentType != "string" {
		return instance, false
	}
	str, ok := instance.(string)
	if !ok {
		return instance, false
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return instance, false
	}

	if target == "integer" {
		if i, err := strconv.ParseInt(str, 10, 64); err == nil {
			return i, true
		}
		// Accept a whole-valued float string ("3.0") as an integer coercion
		// only when it has no fractional part, so "3.5" correctly fails.
		if f, err := strconv.ParseFloat(str, 64); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
		return instance, false
	}

	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return instance, false
	}
	return f, true
}

func coerceToBoolean(instance any, currentType string) (any, bool) {
	switch currentType {
	case "string":
		str, _ := instance.(string)
		switch str {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		default:
			return instance, false
		}
	case "number", "integer":
		f, ok := numericValue(instance)
		if !ok {
			return instance, false
		}
		if f == 0 {
			return false, true
		}
		if f == 1 {
			return true, true
		}
		return instance, false
	default:
		return instance, false
	}
}

func coerceToNull(instance any, currentType string) (any, bool) {
	if currentType != "string" {
		return instance, false
	}
	str, _ := instance.(string)
	if str == "" || str == "null" {
		return nil, true
	}
	return instance, false
}

// coerceToArray wraps a scalar instance in a single-element array. It never
// applies to values that are already arrays or objects, since those have
// no single-value interpretation.
func coerceToArray(instance any, currentType string) (any, bool) {
	switch currentType {
	case "array", "object":
		return instance, false
	default:
		return []any{instance}, true
	}
}

func numericValue(instance any) (float64, bool) {
	switch v := instance.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	r := NewRat(instance)
	if r == nil {
		return 0, false
	}
	f, _ := r.Float64()
	return f, true
}

func formatNumberInstance(instance any) string {
	r := NewRat(instance)
	if r == nil {
		return ""
	}
	return FormatRat(r)
}
