// FILE: lixenwraith/confinit/summary.go
package confinit

// Block is an optional block of summary text. The zero value is absent.
type Block struct {
	text    string
	present bool
}

// Some returns a present block holding text.
func Some(text string) Block { return Block{text: text, present: true} }

// None returns an absent block.
func None() Block { return Block{} }

// Get returns the text and whether the block is present.
func (b Block) Get() (string, bool) { return b.text, b.present }

// IsPresent reports whether the block holds text.
func (b Block) IsPresent() bool { return b.present }

// Summary pairs parameter blocks with state blocks, index by index.
// It is an immutable value: constructors and accessors copy, Combine allocates.
//
// Summaries form a monoid under Combine with EmptySummary as identity, so
// composite objects can fold their children's summaries in any grouping.
type Summary struct {
	parameters []Block
	state      []Block
}

// NewSummary builds a summary from copies of the two sequences.
// Lengths are not checked here; CheckAligned runs before every render.
func NewSummary(parameters, state []Block) Summary {
	return Summary{
		parameters: cloneBlocks(parameters),
		state:      cloneBlocks(state),
	}
}

// Entry builds a one-position summary.
func Entry(parameters, state Block) Summary {
	return Summary{
		parameters: []Block{parameters},
		state:      []Block{state},
	}
}

// EmptySummary returns the identity element of Combine.
func EmptySummary() Summary { return Summary{} }

// Parameters returns a copy of the parameter blocks.
func (s Summary) Parameters() []Block { return cloneBlocks(s.parameters) }

// State returns a copy of the state blocks.
func (s Summary) State() []Block { return cloneBlocks(s.state) }

// Len returns the number of positions, or -1 when the sequences are misaligned.
func (s Summary) Len() int {
	if len(s.parameters) != len(s.state) {
		return -1
	}
	return len(s.parameters)
}

// Combine returns s followed by other.
func (s Summary) Combine(other Summary) Summary {
	return Combine(s, other)
}

// Equal reports whether both sequences match block for block.
func (s Summary) Equal(other Summary) bool {
	return blocksEqual(s.parameters, other.parameters) && blocksEqual(s.state, other.state)
}

// CheckAligned fails with a *LengthMismatchError when the sequences differ in length.
func (s Summary) CheckAligned() error {
	if len(s.parameters) != len(s.state) {
		return &LengthMismatchError{Parameters: len(s.parameters), State: len(s.state)}
	}
	return nil
}

// Combine concatenates both sequences of a and b, preserving each side's pairing.
func Combine(a, b Summary) Summary {
	return Summary{
		parameters: concatBlocks(a.parameters, b.parameters),
		state:      concatBlocks(a.state, b.state),
	}
}

// Concat folds summaries left to right starting from EmptySummary.
func Concat(summaries ...Summary) Summary {
	out := EmptySummary()
	for _, s := range summaries {
		out = Combine(out, s)
	}
	return out
}

func cloneBlocks(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}

func concatBlocks(a, b []Block) []Block {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]Block, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func blocksEqual(a, b []Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
