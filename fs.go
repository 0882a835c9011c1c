// FILE: lixenwraith/confinit/fs.go
package confinit

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// FileReader is the read side the loader needs.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// FileWriter is the write side the renderer needs. Implementations must
// replace the whole file or leave it untouched.
type FileWriter interface {
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// OSFS implements FileReader and FileWriter against the local disk.
type OSFS struct{}

var (
	_ FileReader = OSFS{}
	_ FileWriter = OSFS{}
)

// ReadFile delegates to os.ReadFile.
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// WriteFile writes data atomically through a temporary file in the target directory.
func (OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return atomicWriteFile(path, data, perm)
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in '%s': %w", dir, err)
	}

	tempPath := tempFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return multierr.Append(
			fmt.Errorf("failed to write temporary file '%s': %w", tempPath, err),
			tempFile.Close(),
		)
	}

	if err := tempFile.Sync(); err != nil {
		return multierr.Append(
			fmt.Errorf("failed to sync temporary file '%s': %w", tempPath, err),
			tempFile.Close(),
		)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file '%s': %w", tempPath, err)
	}

	if err := os.Chmod(tempPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on '%s': %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file '%s' to '%s': %w", tempPath, path, err)
	}
	renamed = true

	return nil
}
