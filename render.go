// FILE: lixenwraith/confinit/render.go
package confinit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Summarizer is implemented by objects that can report their parameters and state.
type Summarizer interface {
	Summary() Summary
}

// Collect combines the summaries of items in order.
// Composite objects use it to build their own Summary from their parts.
func Collect(items ...Summarizer) Summary {
	out := EmptySummary()
	for _, item := range items {
		if item == nil {
			continue
		}
		out = Combine(out, item.Summary())
	}
	return out
}

// View selects which sequences of a Summary are rendered.
type View int

const (
	// ViewParameters renders parameter blocks only
	ViewParameters View = iota
	// ViewState renders state blocks only
	ViewState
	// ViewFull interleaves parameter and state blocks by position
	ViewFull
)

func (v View) String() string {
	switch v {
	case ViewParameters:
		return "parameters"
	case ViewState:
		return "state"
	case ViewFull:
		return "summary"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Render formats s as one line per present block.
// Absent blocks produce no line. Misaligned summaries are rejected before any text is built.
func Render(s Summary, view View) (string, error) {
	if err := s.CheckAligned(); err != nil {
		return "", err
	}

	var b strings.Builder
	writeBlock := func(block Block) {
		if text, ok := block.Get(); ok {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}

	switch view {
	case ViewParameters:
		for _, block := range s.parameters {
			writeBlock(block)
		}
	case ViewState:
		for _, block := range s.state {
			writeBlock(block)
		}
	case ViewFull:
		for i := range s.parameters {
			writeBlock(s.parameters[i])
			writeBlock(s.state[i])
		}
	default:
		return "", fmt.Errorf("unknown summary view %d", int(view))
	}

	return b.String(), nil
}

// Renderer prints summaries to a console writer and saves them through a FileWriter.
type Renderer struct {
	out    io.Writer
	fs     FileWriter
	perm   os.FileMode
	logger *zap.Logger
}

// NewRenderer creates a renderer printing to out and saving to the local disk.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:    out,
		fs:     OSFS{},
		perm:   0644,
		logger: zap.NewNop(),
	}
}

// WithFS sets the file system used by the Save methods
func (r *Renderer) WithFS(fs FileWriter) *Renderer {
	r.fs = fs
	return r
}

// WithFileMode sets the permissions of saved files
func (r *Renderer) WithFileMode(perm os.FileMode) *Renderer {
	r.perm = perm
	return r
}

// WithLogger sets the logger
func (r *Renderer) WithLogger(logger *zap.Logger) *Renderer {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// PrintParameters writes the present parameter blocks, one per line.
func (r *Renderer) PrintParameters(s Summarizer) error { return r.print(s, ViewParameters) }

// PrintState writes the present state blocks, one per line.
func (r *Renderer) PrintState(s Summarizer) error { return r.print(s, ViewState) }

// PrintSummary writes parameter and state blocks interleaved by position.
func (r *Renderer) PrintSummary(s Summarizer) error { return r.print(s, ViewFull) }

// SaveParameters writes the PrintParameters text to path.
func (r *Renderer) SaveParameters(s Summarizer, path string) error {
	return r.save(s, ViewParameters, path)
}

// SaveState writes the PrintState text to path.
func (r *Renderer) SaveState(s Summarizer, path string) error {
	return r.save(s, ViewState, path)
}

// SaveSummary writes the PrintSummary text to path.
func (r *Renderer) SaveSummary(s Summarizer, path string) error {
	return r.save(s, ViewFull, path)
}

func (r *Renderer) print(s Summarizer, view View) error {
	text, err := Render(s.Summary(), view)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", view, err)
	}
	if _, err := io.WriteString(r.out, text); err != nil {
		return fmt.Errorf("failed to print %s: %w", view, err)
	}
	return nil
}

func (r *Renderer) save(s Summarizer, view View, path string) error {
	text, err := Render(s.Summary(), view)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", view, err)
	}
	if err := r.fs.WriteFile(path, []byte(text), r.perm); err != nil {
		return fmt.Errorf("failed to save %s to '%s': %w", view, path, err)
	}

	r.logger.Debug("summary saved",
		zap.String("path", path),
		zap.Stringer("view", view),
		zap.Int("lines", strings.Count(text, "\n")),
	)
	return nil
}

// PrintParameters prints s's parameters to stdout.
func PrintParameters(s Summarizer) error { return NewRenderer(os.Stdout).PrintParameters(s) }

// PrintState prints s's state to stdout.
func PrintState(s Summarizer) error { return NewRenderer(os.Stdout).PrintState(s) }

// PrintSummary prints s's full summary to stdout.
func PrintSummary(s Summarizer) error { return NewRenderer(os.Stdout).PrintSummary(s) }

// SaveParameters saves s's parameters to path on the local disk.
func SaveParameters(s Summarizer, path string) error {
	return NewRenderer(os.Stdout).SaveParameters(s, path)
}

// SaveState saves s's state to path on the local disk.
func SaveState(s Summarizer, path string) error {
	return NewRenderer(os.Stdout).SaveState(s, path)
}

// SaveSummary saves s's full summary to path on the local disk.
func SaveSummary(s Summarizer, path string) error {
	return NewRenderer(os.Stdout).SaveSummary(s, path)
}
