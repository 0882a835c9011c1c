// File: lixenwraith/confinit/doc.go

// Package confinit turns structured configuration into validated, strongly typed
// domain objects, and lets those objects report their parameters and state as
// composable text summaries.
//
// Pipeline:
//
//	text --Load/LoadFile--> Table --Bind--> argument record --derive--> target
//
// Features:
//   - TOML, YAML and JSON sources parsed into a generic nested Table
//   - Section binding into argument structs through `toml` tags (mapstructure)
//   - Strict binding: missing fields, wrong scalar kinds, integer overflow and
//     fixed-array arity are reported, never defaulted
//   - Target derivation via DerivableFrom or plain DeriveFunc functions
//   - Summary monoid (Combine / EmptySummary) with parameter/state rendering to
//     the console or to files written atomically
//   - Builder layering environment variables and command-line overrides over a file
//
// Quick Start:
//
//	type BoxArgs struct {
//	    X uint32 `toml:"x"`
//	    Y uint32 `toml:"y"`
//	}
//
//	type Box struct{ Area uint32 }
//
//	func (b *Box) DeriveFrom(a *BoxArgs) error {
//	    b.Area = a.X * a.Y
//	    return nil
//	}
//
//	tbl, err := confinit.Load("[box]\nx = 3\ny = 4\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	box, err := confinit.FromConfig[Box, BoxArgs](tbl, "box")
//
// Summaries:
//
//	func (b *Box) Summary() confinit.Summary {
//	    return confinit.Entry(
//	        confinit.Some(fmt.Sprintf("x=%d,y=%d", b.x, b.y)),
//	        confinit.Some(fmt.Sprintf("area=%d", b.Area)),
//	    )
//	}
//
//	confinit.PrintSummary(box) // x=3,y=4 then area=12
//
// Errors:
// Every failure is returned to the caller and matches one sentinel via errors.Is:
// ErrSourceUnreadable, ErrMalformedConfig, ErrMissingSection, ErrWrongShape,
// ErrFieldMismatch, ErrSemanticInvalid or ErrSummaryLengthMismatch. The Must*
// variants panic instead.
//
// Concurrency:
// The package starts no goroutines and keeps no shared state. Tables, argument
// records, targets and summaries are independent values; callers sharing them
// across goroutines provide their own synchronization.
package confinit
