// FILE: lixenwraith/confinit/errors.go
package confinit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnreadable is returned when configuration text cannot be obtained
	ErrSourceUnreadable = errors.New("configuration source unreadable")
	// ErrMalformedConfig is returned when text does not parse into a table
	ErrMalformedConfig = errors.New("malformed configuration")
	// ErrMissingSection is returned when a requested section is absent
	ErrMissingSection = errors.New("missing section")
	// ErrWrongShape is returned when a requested section exists but is not a table
	ErrWrongShape = errors.New("section is not a table")
	// ErrFieldMismatch is returned when section entries do not satisfy an argument record
	ErrFieldMismatch = errors.New("field mismatch")
	// ErrSemanticInvalid is returned when argument values fail cross-field validation
	ErrSemanticInvalid = errors.New("invalid arguments")
	// ErrSummaryLengthMismatch is returned when a summary's parameter and state sequences differ in length
	ErrSummaryLengthMismatch = errors.New("summary length mismatch")

	// ErrCLIParse is returned when command-line overrides cannot be parsed
	ErrCLIParse = errors.New("failed to parse command-line arguments")
	// ErrValidation is returned when a builder validator rejects the assembled table
	ErrValidation = errors.New("configuration validation failed")
)

// SectionError reports a section that is absent or not table-shaped.
type SectionError struct {
	Section string
	Found   string // Go type of the entry when present but not a table
	Err     error  // ErrMissingSection or ErrWrongShape
}

func (e *SectionError) Error() string {
	if e.Found != "" {
		return fmt.Sprintf("%v: %q holds %s", e.Err, e.Section, e.Found)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Section)
}

func (e *SectionError) Unwrap() error { return e.Err }

// FieldMismatchError lists every field of a section that could not be bound.
type FieldMismatchError struct {
	Section  string
	Target   string
	Problems []string
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("%v: section %q into %s: %s",
		ErrFieldMismatch, e.Section, e.Target, strings.Join(e.Problems, "; "))
}

func (e *FieldMismatchError) Unwrap() error { return ErrFieldMismatch }

// LengthMismatchError reports misaligned summary sequences.
// It indicates a faulty Summarizer, not bad input.
type LengthMismatchError struct {
	Parameters int
	State      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v: %d parameter items, %d state items",
		ErrSummaryLengthMismatch, e.Parameters, e.State)
}

func (e *LengthMismatchError) Unwrap() error { return ErrSummaryLengthMismatch }

// Invalid builds an ErrSemanticInvalid error for use inside a derivation.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSemanticInvalid, fmt.Sprintf(format, args...))
}
