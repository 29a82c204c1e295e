// Package emit assembles the small pieces of text a schema compiler needs
// to hand out: JSON Pointer-escaped path segments, interpolated error
// message templates, and stable names for compiled reference targets.
//
// There is no code generation here - Go has no runtime eval, so "compiling"
// a schema means resolving and caching work on the *Schema tree that the
// evaluator walks, not building a source string. What this package
// generates is pointer syntax and message text, not Go source.
package emit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Escape applies JSON Pointer token escaping to a single property name or
// array index: "~" becomes "~0" and "/" becomes "~1". Every error path or
// schema path assembled from a schema-controlled property name must pass
// the name through Escape first, since property names may themselves
// contain "/" or "~".
func Escape(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

// Pointer joins already-unescaped tokens into a "#/a/b/c"-shaped JSON
// Pointer, escaping each token along the way.
func Pointer(tokens ...string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(t))
	}
	return b.String()
}

// Segment builds a single "/token" path fragment, escaping token. It's the
// building block evaluation-path helpers use for a single keyword/property
// step, e.g. Segment("properties") + Segment(propName).
func Segment(token string) string {
	return "/" + Escape(token)
}

// IndexSegment builds a "/N" path fragment for an array index. Indices
// never contain "~" or "/", so no escaping is needed.
func IndexSegment(i int) string {
	return "/" + strconv.Itoa(i)
}

// Interpolate substitutes "{placeholder}" tokens in template with the
// string form of the matching entry in params. Every caller of Interpolate
// gets identical formatting and identical failure behavior for non-finite
// floats. The root package's EvaluationError messages do not go through
// it: they use that package's own replace helper, which has no
// non-finite check.
//
// A float64/float32 param that is NaN or +/-Inf returns an error instead of
// silently interpolating "NaN"/"+Inf", since either would corrupt a
// JSON-encoded error payload the caller marshals downstream.
func Interpolate(template string, params map[string]any) (string, error) {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template, nil
	}

	out := template
	for key, value := range params {
		rendered, err := renderParam(value)
		if err != nil {
			return "", fmt.Errorf("emit: param %q: %w", key, err)
		}
		out = strings.ReplaceAll(out, "{"+key+"}", rendered)
	}
	return out, nil
}

func renderParam(value any) (string, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("non-finite float %v cannot be interpolated", v)
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("non-finite float %v cannot be interpolated", v)
		}
		return strconv.FormatFloat(f, 'g', -1, 32), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// NameGenerator hands out stable, monotonically increasing names sharing a
// prefix (e.g. "ref0", "ref1", ...), for callers that need a unique debug
// label per compiled schema node (for instance, naming an anonymous $ref
// target in a diagnostic). Not currently wired into the compiler itself.
type NameGenerator struct {
	prefix string
	next   int
}

// NewNameGenerator creates a NameGenerator that prefixes every generated
// name with prefix.
func NewNameGenerator(prefix string) *NameGenerator {
	return &NameGenerator{prefix: prefix}
}

// Next returns the next name in the sequence and advances the generator.
func (g *NameGenerator) Next() string {
	name := fmt.Sprintf("%s%d", g.prefix, g.next)
	g.next++
	return name
}
