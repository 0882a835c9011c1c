// FILE: lixenwraith/confinit/overrides.go
package confinit

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Source represents a configuration source, used to define override precedence
type Source string

const (
	// SourceFile represents values loaded from a configuration file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line arguments
	SourceCLI Source = "cli"
)

// DefaultSources is the standard precedence, highest first
var DefaultSources = []Source{SourceCLI, SourceEnv, SourceFile}

// EnvTransformFunc converts a table path to an environment variable name
type EnvTransformFunc func(path string) string

// defaultEnvTransform maps "server.port" to PREFIX + "SERVER_PORT"
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(path string) string {
		env := strings.ReplaceAll(path, ".", "_")
		env = strings.ReplaceAll(env, "-", "_")
		return prefix + strings.ToUpper(env)
	}
}

// envOverrides looks up one environment variable per existing leaf path.
// Values are coerced to the kind of the value they replace.
func envOverrides(base Table, transform EnvTransformFunc) map[string]any {
	found := make(map[string]any)
	for path, existing := range flattenTable(base, "") {
		if raw, ok := os.LookupEnv(transform(path)); ok {
			found[path] = coerceOverride(existing, raw)
		}
	}
	return found
}

// cliOverrides parses "--a.b=value", "--a.b value" and bare "--flag" arguments.
// Paths need not exist in base; values are coerced when they do.
func cliOverrides(base Table, args []string) (map[string]any, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}

	found := make(map[string]any, len(parsed))
	for path, raw := range parsed {
		existing, _ := navigateToPath(base, path)
		found[path] = coerceOverride(existing, raw)
	}
	return found, nil
}

// parseArgs processes command-line arguments into a flat path -> raw string map.
func parseArgs(args []string) (map[string]string, error) {
	result := make(map[string]string)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			// Skip non-flag arguments
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// "--" separator
			i++
			continue
		}

		var keyPath, valueStr string
		if key, value, hasValue := strings.Cut(argContent, "="); hasValue {
			keyPath, valueStr = key, value
			i++
		} else if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
			// Bare flag
			keyPath, valueStr = argContent, "true"
			i++
		} else {
			keyPath, valueStr = argContent, args[i+1]
			i += 2
		}

		for _, segment := range strings.Split(keyPath, ".") {
			if !isValidKeySegment(segment) {
				return nil, fmt.Errorf("invalid command-line key segment %q in path %q", segment, keyPath)
			}
		}

		result[keyPath] = valueStr
	}

	return result, nil
}

// coerceOverride converts a raw override string toward the kind of the value it replaces.
// Strings stay strings; sequences split on commas; anything else goes through parseValue.
func coerceOverride(existing any, raw string) any {
	switch existing.(type) {
	case string:
		return unquote(raw)
	case []any:
		if raw == "" {
			return []any{}
		}
		parts := strings.Split(raw, ",")
		out := make([]any, len(parts))
		for i, part := range parts {
			out[i] = parseValue(strings.TrimSpace(part))
		}
		return out
	default:
		return parseValue(raw)
	}
}

// parseValue attempts to parse a string into bool, int64 or float64
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return unquote(s)
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// mergeTables deep-merges src into dst; src wins on conflicting leaves.
func mergeTables(dst, src Table) {
	for key, value := range src {
		if srcSub, ok := value.(Table); ok {
			if dstSub, ok := dst[key].(Table); ok {
				mergeTables(dstSub, srcSub)
				continue
			}
		}
		dst[key] = deepCopy(value)
	}
}
