package jsonschema

// annotationScanner walks a schema tree once to determine whether any
// reachable node carries unevaluatedProperties or unevaluatedItems. Schemas
// that never use either keyword don't need their evaluate() calls to track
// per-call annotation state as carefully, since nothing downstream ever
// reads it.
//
// Results are memoized by *Schema pointer identity: two structurally
// identical schema nodes compiled as distinct objects are scanned
// independently, matching the rule that schema-node identity (not
// structural equality) is what annotation tracking keys off of.
type annotationScanner struct {
	visited map[*Schema]bool
}

func newAnnotationScanner() *annotationScanner {
	return &annotationScanner{visited: make(map[*Schema]bool)}
}

// needsTracking reports whether root or any schema reachable from it uses
// unevaluatedProperties or unevaluatedItems.
func (sc *annotationScanner) needsTracking(root *Schema) bool {
	if root == nil || root.Boolean != nil {
		return false
	}
	if sc.visited[root] {
		// Already visited this node on this scan; treat as "nothing new
		// found here" to break cycles through $ref loops.
		return false
	}
	sc.visited[root] = true

	if root.UnevaluatedProperties != nil || root.UnevaluatedItems != nil {
		return true
	}

	for _, child := range root.childSchemas() {
		if sc.needsTracking(child) {
			return true
		}
	}
	return false
}

// childSchemas enumerates every subschema directly reachable from s, the
// same set initializeNestedSchemasCore walks to initialize children.
func (s *Schema) childSchemas() []*Schema {
	var children []*Schema

	appendIfSet := func(child *Schema) {
		if child != nil {
			children = append(children, child)
		}
	}

	for _, def := range s.Defs {
		appendIfSet(def)
	}
	children = append(children, s.AllOf...)
	children = append(children, s.AnyOf...)
	children = append(children, s.OneOf...)
	appendIfSet(s.Not)
	appendIfSet(s.If)
	appendIfSet(s.Then)
	appendIfSet(s.Else)
	for _, dep := range s.DependentSchemas {
		appendIfSet(dep)
	}
	children = append(children, s.PrefixItems...)
	appendIfSet(s.Items)
	appendIfSet(s.Contains)
	appendIfSet(s.AdditionalProperties)
	if s.Properties != nil {
		for _, prop := range *s.Properties {
			appendIfSet(prop)
		}
	}
	if s.PatternProperties != nil {
		for _, prop := range *s.PatternProperties {
			appendIfSet(prop)
		}
	}
	appendIfSet(s.UnevaluatedProperties)
	appendIfSet(s.UnevaluatedItems)
	appendIfSet(s.ContentSchema)
	appendIfSet(s.PropertyNames)
	// A resolved $ref/$dynamicRef can introduce unevaluated* reachable only
	// through the reference target; that target is scanned as part of its
	// own document's initialization, so it isn't walked again here to avoid
	// double-counting across documents.

	return children
}

// NeedsAnnotationTracking reports whether this schema (or anything it
// references internally) uses unevaluatedProperties/unevaluatedItems. The
// result is computed once per root schema and cached.
func (s *Schema) NeedsAnnotationTracking() bool {
	root := s.getRootSchema()
	if root == nil {
		root = s
	}
	if root.annotationScanDone {
		return root.needsAnnotationTracking
	}
	root.needsAnnotationTracking = newAnnotationScanner().needsTracking(root)
	root.annotationScanDone = true
	return root.needsAnnotationTracking
}
