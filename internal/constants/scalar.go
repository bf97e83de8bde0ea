package constants

import (
	"fmt"
	"strconv"
)

// scalarString converts a YAML scalar to its replacement text.
// Whole floats are formatted without a fraction; mappings and sequences
// are rejected.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10), true
		}
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case map[string]any, map[any]any, []any:
		return "", false
	default:
		return fmt.Sprintf("%v", val), true
	}
}
