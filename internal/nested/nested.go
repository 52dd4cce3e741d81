// Package nested provides helpers for working with JSON-like nested maps:
// deep cloning, deep merging and path addressing. All functions treat their
// inputs as read-only.
package nested

// Clone returns a deep copy of tree. Nested maps and slices are copied;
// scalar leaves are shared (strings are immutable in Go).
func Clone(tree map[string]any) map[string]any {
	if tree == nil {
		return nil
	}
	out := make(map[string]any, len(tree))
	for key, value := range tree {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return Clone(typed)
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = cloneValue(typed[i])
		}
		return out
	default:
		return value
	}
}

// Merge combines strong over weak without mutating either: keys present in
// strong win on leaf conflicts, nested maps are merged recursively.
func Merge(strong, weak map[string]any) map[string]any {
	if strong == nil && weak == nil {
		return nil
	}
	out := Clone(weak)
	if out == nil {
		out = make(map[string]any, len(strong))
	}
	for key, value := range strong {
		strongMap, strongIsMap := value.(map[string]any)
		weakMap, weakIsMap := out[key].(map[string]any)
		if strongIsMap && weakIsMap {
			out[key] = Merge(strongMap, weakMap)
			continue
		}
		out[key] = cloneValue(value)
	}
	return out
}

// Get walks tree along segments and reports whether the addressed value
// exists. Intermediate segments must address nested maps.
func Get(tree map[string]any, segments []string) (any, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	var current any = tree
	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Normalize rewrites decoder-specific container types into the canonical
// map[string]any / []any shape. Maps keyed by non-strings are rejected by
// returning ok=false.
func Normalize(value any) (any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			normalized, ok := Normalize(nested)
			if !ok {
				return nil, false
			}
			out[key] = normalized
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			name, ok := key.(string)
			if !ok {
				return nil, false
			}
			normalized, ok := Normalize(nested)
			if !ok {
				return nil, false
			}
			out[name] = normalized
		}
		return out, true
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			normalized, ok := Normalize(typed[i])
			if !ok {
				return nil, false
			}
			out[i] = normalized
		}
		return out, true
	default:
		return value, true
	}
}
