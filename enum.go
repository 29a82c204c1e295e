package jsonschema

import (
	"encoding/json"
	"reflect"
)

// enumStrategyKind identifies which of the precomputed enum-matching
// approaches a schema's "enum" keyword was compiled into.
type enumStrategyKind int

const (
	enumStrategyChain enumStrategyKind = iota // small, all-primitive: direct slice scan
	enumStrategySet                           // large, all-primitive: map lookup
	enumStrategyScan                          // at least one complex (array/object) member: DeepEqual scan
)

// enumLargeThreshold is the element count above which an all-primitive enum
// switches from a linear chain to a map lookup.
const enumLargeThreshold = 15

// enumStrategy is the result of classifying a schema's "enum" values once,
// at compile time, so Validate never has to decide how to compare again.
type enumStrategy struct {
	kind   enumStrategyKind
	values []any            // enumStrategyChain, enumStrategyScan: compared in order
	set    map[any]struct{} // enumStrategySet: O(1) membership test
}

// buildEnumStrategy classifies values into the cheapest applicable
// comparison strategy. Values are "primitive" (and therefore hashable as a
// map key) when every one of them is a string, bool, float64, json.Number,
// or nil; the presence of a single array or object value forces the scan
// strategy for the whole enum, since Go can't use a slice/map as a map key
// and reflect.DeepEqual is the only comparator that handles them uniformly.
func buildEnumStrategy(values []any) *enumStrategy {
	if allPrimitive(values) {
		if len(values) > enumLargeThreshold {
			set := make(map[any]struct{}, len(values))
			for _, v := range values {
				set[v] = struct{}{}
			}
			return &enumStrategy{kind: enumStrategySet, values: values, set: set}
		}
		return &enumStrategy{kind: enumStrategyChain, values: values}
	}
	return &enumStrategy{kind: enumStrategyScan, values: values}
}

func allPrimitive(values []any) bool {
	for _, v := range values {
		switch v.(type) {
		case nil, string, bool, float64, float32,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			json.Number:
		default:
			return false
		}
	}
	return true
}

// match reports whether instance equals one of the enum's values, using
// whichever strategy was selected at compile time.
func (es *enumStrategy) match(instance any) bool {
	switch es.kind {
	case enumStrategySet:
		// instance itself may be a map/slice (an object or array value)
		// even though every enum member is primitive; indexing a map with
		// an unhashable key panics, so only attempt the O(1) lookup when
		// instance's type supports ==.
		if isComparable(instance) {
			if _, ok := es.set[instance]; ok {
				return true
			}
		}
		// A map keyed by primitives still misses cross-representation
		// matches (e.g. instance is json.Number("1") but the schema wrote
		// the enum literal as float64(1)); fall back to a DeepEqual pass
		// for those rather than a false negative.
		for _, v := range es.values {
			if reflect.DeepEqual(instance, v) {
				return true
			}
		}
		return false
	default: // enumStrategyChain, enumStrategyScan
		for _, v := range es.values {
			if reflect.DeepEqual(instance, v) {
				return true
			}
		}
		return false
	}
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

// EvaluateEnum checks if the data's value matches one of the enumerated values specified in the schema.
// According to the JSON Schema Draft 2020-12:
//   - The value of the "enum" keyword must be an array.
//   - This array should have at least one element, and all elements should be unique.
//   - An instance validates successfully against this keyword if its value is equal to one of the elements in the array.
//   - Elements in the array might be of any type, including null.
//
// The comparison strategy (direct chain, set lookup, or DeepEqual scan) was
// chosen once when the schema was compiled; see buildEnumStrategy.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-enum
func evaluateEnum(schema *Schema, instance interface{}) *EvaluationError {
	if schema.compiledEnum != nil {
		if schema.compiledEnum.match(instance) {
			return nil
		}
		return NewEvaluationError("enum", "value_not_in_enum", "Value should match one of the values specified by the enum")
	}
	return nil
}
