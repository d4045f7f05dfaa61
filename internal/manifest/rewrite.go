package manifest

import "strings"

// RewritePaths replaces from with to in every string stored under a "path"
// key, at any depth. Maps and slices are rebuilt so the input is untouched;
// slice order is preserved.
func RewritePaths(v any, from, to string) any {
	if from == "" {
		return v
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			if s, ok := child.(string); ok && k == "path" {
				out[k] = strings.ReplaceAll(s, from, to)
				continue
			}
			out[k] = RewritePaths(child, from, to)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = RewritePaths(child, from, to)
		}
		return out
	default:
		return v
	}
}
