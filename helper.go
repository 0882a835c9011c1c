// FILE: lixenwraith/confinit/helper.go
package confinit

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// flattenTable converts a nested Table to a flat map with dot-notation paths.
// Only leaves are listed; a sub-table contributes its own leaves.
func flattenTable(nested Table, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if sub, isTable := value.(Table); isTable {
			for subPath, subValue := range flattenTable(sub, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested Table using a dot-notation path.
// Intermediate tables are created as needed; a non-table segment is replaced.
func setNestedValue(nested Table, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(Table)
		if !ok {
			next = make(Table)
			current[segment] = next
		}
		current = next
	}

	current[segments[len(segments)-1]] = value
}

// navigateToPath traverses a nested Table to reach the specified path.
// The second result is false when any segment is missing or not a table.
func navigateToPath(nested Table, path string) (any, bool) {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested, true
	}

	current := any(nested)
	for _, segment := range strings.Split(path, ".") {
		currentTable, ok := current.(Table)
		if !ok {
			return nil, false
		}
		value, exists := currentTable[segment]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, true
}

// isValidKeySegment checks if a single path segment is a valid TOML bare key.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// deepCopy clones tables and sequences; scalars are immutable and shared.
func deepCopy(v any) any {
	switch val := v.(type) {
	case Table:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

// normalizeValue converts parser-native values into the Table value domain:
// int64, float64, bool, string, time.Time, []any and Table.
func normalizeValue(path string, v any) (any, error) {
	switch val := v.(type) {
	case Table:
		return normalizeMap(path, val)
	case map[string]any:
		return normalizeMap(path, val)
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v (type %T) at %q", k, k, path)
			}
			converted[key] = item
		}
		return normalizeMap(path, converted)
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalizeMap(fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalizeValue(fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case string, bool, float64, int64, time.Time, nil:
		return val, nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case uint:
		return normalizeUnsigned(path, uint64(val))
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case uint64:
		return normalizeUnsigned(path, val)
	case float32:
		return float64(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at %q: %w", val.String(), path, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T at %q", v, path)
	}
}

func normalizeUnsigned(path string, u uint64) (any, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d at %q overflows int64", u, path)
	}
	return int64(u), nil
}

// normalizeMap builds a Table; null entries are dropped so they read as absent.
func normalizeMap(path string, m map[string]any) (Table, error) {
	out := make(Table, len(m))
	for key, item := range m {
		if item == nil {
			continue
		}
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}
		n, err := normalizeValue(childPath, item)
		if err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, nil
}
