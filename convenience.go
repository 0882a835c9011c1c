// File: lixenwraith/confinit/convenience.go
package confinit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Quick loads path and initializes a target from one of its sections.
// This is the shortest route from a file on disk to a domain object.
func Quick[A any, T any](path, section string, fn DeriveFunc[A, T]) (T, error) {
	var zero T
	tbl, err := LoadFile(path)
	if err != nil {
		return zero, err
	}
	return FromConfigFunc(tbl, section, fn)
}

// MustQuick is like Quick but panics on error
func MustQuick[A any, T any](path, section string, fn DeriveFunc[A, T]) T {
	t, err := Quick(path, section, fn)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return t
}

// Encode writes the table to w in the given format (TOML when format is auto or empty).
func (t Table) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML, FormatAuto, "":
		encoder := toml.NewEncoder(w)
		if err := encoder.Encode(map[string]any(t)); err != nil {
			return fmt.Errorf("failed to marshal table to TOML: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(map[string]any(t)); err != nil {
			return fmt.Errorf("failed to marshal table to YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML encoder: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(map[string]any(t)); err != nil {
			return fmt.Errorf("failed to marshal table to JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// Dump writes the table to stdout in TOML format
func (t Table) Dump() error {
	return t.Encode(os.Stdout, FormatTOML)
}

// Save writes the table to path atomically, in the format implied by its extension.
func (t Table) Save(path string) error {
	var buf bytes.Buffer
	if err := t.Encode(&buf, detectFileFormat(path)); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes(), 0644)
}
