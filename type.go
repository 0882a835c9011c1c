// File: lixenwraith/confinit/type.go
package confinit

import (
	"fmt"
	"strconv"
	"time"
)

// String retrieves a string value at path.
// Scalars of other kinds are formatted; tables and sequences are rejected.
func (t Table) String(path string) (string, error) {
	val, found := t.Lookup(path)
	if !found {
		return "", fmt.Errorf("path not found: %s", path)
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for path %s", val, path)
	}
}

// Int64 retrieves an int64 value at path.
// Integral floats and parsable strings are converted.
func (t Table) Int64(path string) (int64, error) {
	val, found := t.Lookup(path)
	if !found {
		return 0, fmt.Errorf("path not found: %s", path)
	}

	switch v := val.(type) {
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("cannot convert float %v to int64 for path %s: not integral", v, path)
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(v, 0, 64) // Base 0 for auto-detection (e.g., "0xFF")
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64 for path %s: %w", v, path, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot convert type %T to int64 for path %s", val, path)
	}
}

// Float64 retrieves a float64 value at path.
func (t Table) Float64(path string) (float64, error) {
	val, found := t.Lookup(path)
	if !found {
		return 0, fmt.Errorf("path not found: %s", path)
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64 for path %s: %w", v, path, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert type %T to float64 for path %s", val, path)
	}
}

// Bool retrieves a boolean value at path.
func (t Table) Bool(path string) (bool, error) {
	val, found := t.Lookup(path)
	if !found {
		return false, fmt.Errorf("path not found: %s", path)
	}

	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool for path %s: %w", v, path, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot convert type %T to bool for path %s", val, path)
	}
}
