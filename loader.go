// FILE: lixenwraith/confinit/loader.go
package confinit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Format names a configuration text grammar.
type Format string

const (
	// FormatAuto detects the format from the file extension, then from content
	FormatAuto Format = "auto"
	// FormatTOML is the default grammar
	FormatTOML Format = "toml"
	// FormatYAML parses YAML documents
	FormatYAML Format = "yaml"
	// FormatJSON parses JSON objects
	FormatJSON Format = "json"
)

// Load parses TOML text into a Table.
func Load(text string) (Table, error) {
	return Parse([]byte(text), FormatTOML)
}

// LoadFile reads and parses a configuration file from the local disk.
// The format is detected from the extension, then from content.
func LoadFile(path string) (Table, error) {
	return NewLoader().Load(path)
}

// Parse decodes data in the given format into a Table.
// A document whose top level is not a table is rejected with ErrMalformedConfig.
func Parse(data []byte, format Format) (Table, error) {
	var raw any

	switch format {
	case FormatTOML:
		doc := make(map[string]any)
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: invalid TOML: %w", ErrMalformedConfig, err)
		}
		raw = doc
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: invalid YAML: %w", ErrMalformedConfig, err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Keep integers distinct from floats
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %w", ErrMalformedConfig, err)
		}
		if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: invalid JSON: trailing data after top-level value", ErrMalformedConfig)
		}
	case FormatAuto, "":
		detected := detectFormatFromContent(data)
		if detected == "" {
			return nil, fmt.Errorf("%w: unable to determine configuration format", ErrMalformedConfig)
		}
		return Parse(data, detected)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrMalformedConfig, format)
	}

	return toTable(raw)
}

// toTable normalizes a decoded document, requiring a table at the top level.
func toTable(raw any) (Table, error) {
	if raw == nil {
		return make(Table), nil // Empty document
	}

	normalized, err := normalizeValue("", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}

	tbl, ok := normalized.(Table)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %T, not a table", ErrMalformedConfig, normalized)
	}
	return tbl, nil
}

// Loader reads configuration files through a FileReader.
type Loader struct {
	fs          FileReader
	format      Format
	maxFileSize int64
	logger      *zap.Logger
}

// NewLoader creates a loader over the OS file system with format auto-detection.
func NewLoader() *Loader {
	return &Loader{
		fs:     OSFS{},
		format: FormatAuto,
		logger: zap.NewNop(),
	}
}

// WithFS sets the file system used to read sources
func (l *Loader) WithFS(fs FileReader) *Loader {
	l.fs = fs
	return l
}

// WithFormat forces a format instead of detection
func (l *Loader) WithFormat(format Format) *Loader {
	l.format = format
	return l
}

// WithMaxFileSize rejects sources larger than limit bytes (0 disables the check)
func (l *Loader) WithMaxFileSize(limit int64) *Loader {
	l.maxFileSize = limit
	return l
}

// WithLogger sets the logger
func (l *Loader) WithLogger(logger *zap.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load reads path and parses it into a Table.
func (l *Loader) Load(path string) (Table, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file '%s': %w", ErrSourceUnreadable, path, err)
	}

	if l.maxFileSize > 0 && int64(len(data)) > l.maxFileSize {
		return nil, fmt.Errorf("%w: config file '%s' exceeds maximum size %d bytes",
			ErrSourceUnreadable, path, l.maxFileSize)
	}

	format := l.format
	if format == "" || format == FormatAuto {
		// Try extension first, content detection happens inside Parse
		format = detectFileFormat(path)
	}

	tbl, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	l.logger.Debug("configuration loaded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
		zap.Strings("sections", tbl.Sections()),
	)

	return tbl, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// detectFormatFromContent attempts to detect format by parsing.
// A candidate only counts when the document is a table.
func detectFormatFromContent(data []byte) Format {
	// JSON first (strictest)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		if _, ok := jsonTest.(map[string]any); ok {
			return FormatJSON
		}
	}

	// TOML before YAML: bare "key = value" lines are valid YAML scalars
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		switch yamlTest.(type) {
		case map[string]any, map[any]any:
			return FormatYAML
		}
	}

	return ""
}
