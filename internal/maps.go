package internal

import "strings"

// IsMap reports whether v is a keyed mapping.
func IsMap(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// GetPath resolves a dot-separated path inside nested maps. The boolean is
// false when any segment is missing or a non-map value is traversed.
func GetPath(m map[string]any, path string) (any, bool) {
	if m == nil || path == "" {
		return nil, false
	}

	var current any = m
	for _, part := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// SetPath writes value at a dot-separated path, creating intermediate maps.
// Existing intermediate maps are shallow-copied first so shared or frozen
// maps are never mutated in place.
func SetPath(m map[string]any, path string, value any) {
	if m == nil || path == "" {
		return
	}

	parts := strings.Split(path, ".")
	node := m
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
		} else {
			copied := make(map[string]any, len(child))
			for k, v := range child {
				copied[k] = v
			}
			child = copied
		}
		node[part] = child
		node = child
	}
	node[parts[len(parts)-1]] = value
}

// DeletePath removes the value at a dot-separated path. Missing segments
// are a no-op.
func DeletePath(m map[string]any, path string) {
	if m == nil || path == "" {
		return
	}

	parts := strings.Split(path, ".")
	node := m
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			return
		}
		node = child
	}
	delete(node, parts[len(parts)-1])
}

// CloneMap returns a deep copy of m. Nested maps are copied recursively;
// slices are copied element-wise, other values are assigned as-is.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Merge deep-merges src into dst and returns the result as a new map.
// Keys whose values are maps on both sides merge recursively; everything
// else is overwritten by src. Neither input is mutated.
func Merge(dst, src map[string]any) map[string]any {
	out := CloneMap(dst)
	if out == nil {
		out = map[string]any{}
	}
	mergeInto(out, src)
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if ok {
			existing, ok := dst[k].(map[string]any)
			if ok {
				merged := CloneMap(existing)
				mergeInto(merged, sub)
				dst[k] = merged
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
}

// IsEmpty reports whether v is nil, an empty string, or an empty map/slice.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
