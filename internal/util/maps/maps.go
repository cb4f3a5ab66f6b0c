// Package maps provides structural helpers for the untyped JSON mappings the
// launcher moves around: flattening nested mappings and deep copying values.
package maps

import "fmt"

// FlattenSeparator joins nested keys when a mapping is flattened.
const FlattenSeparator = "."

// Flatten converts a nested mapping into a single-level mapping whose keys
// encode the original nesting path (joined with FlattenSeparator). Non-mapping
// values are carried over as-is.
func Flatten(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	flattenInto(out, "", src)
	return out
}

func flattenInto(out map[string]any, prefix string, src map[string]any) {
	for key, value := range src {
		full := key
		if prefix != "" {
			full = prefix + FlattenSeparator + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(out, full, nested)
			continue
		}
		out[full] = value
	}
}

// DeepCopy returns a structural copy of a JSON-shaped value. Maps and slices
// are copied recursively; scalars are returned unchanged.
func DeepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = DeepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = DeepCopy(item)
		}
		return out
	default:
		return v
	}
}

// ToStringMap attempts to view a value as a string-keyed mapping. It accepts
// map[string]any directly and converts map[any]any (as produced by some YAML
// decoders) by stringifying keys.
func ToStringMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = item
		}
		return out, true
	default:
		return nil, false
	}
}
