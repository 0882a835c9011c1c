// FILE: lixenwraith/confinit/initialize.go
package confinit

import (
	"errors"
	"fmt"
)

// DerivableFrom is implemented by a target type T (on *T) that is built from an
// argument record A. DeriveFrom must only read args and must be deterministic.
// Cross-field validation belongs here; failures surface as ErrSemanticInvalid.
type DerivableFrom[A any] interface {
	DeriveFrom(args *A) error
}

// target constrains PT to *T implementing DerivableFrom[A].
type target[T any, A any] interface {
	*T
	DerivableFrom[A]
}

// DeriveFunc is a pure transformation from an argument record to a target value.
type DeriveFunc[A any, T any] func(args *A) (T, error)

// FromArgs builds a new T from args.
//
//	box, err := confinit.FromArgs[Box](&BoxArgs{X: 3, Y: 4})
func FromArgs[T any, A any, PT target[T, A]](args *A) (*T, error) {
	if args == nil {
		return nil, fmt.Errorf("%w: nil arguments", ErrSemanticInvalid)
	}
	t := new(T)
	if err := PT(t).DeriveFrom(args); err != nil {
		return nil, semanticError("", err)
	}
	return t, nil
}

// FromConfig binds section of tbl into an A and derives a T from it.
//
//	box, err := confinit.FromConfig[Box, BoxArgs](tbl, "box")
func FromConfig[T any, A any, PT target[T, A]](tbl Table, section string) (*T, error) {
	args, err := Bind[A](tbl, section)
	if err != nil {
		return nil, err
	}
	t := new(T)
	if err := PT(t).DeriveFrom(args); err != nil {
		return nil, semanticError(section, err)
	}
	return t, nil
}

// MustFromConfig is like FromConfig but panics on error
func MustFromConfig[T any, A any, PT target[T, A]](tbl Table, section string) *T {
	t, err := FromConfig[T, A, PT](tbl, section)
	if err != nil {
		panic(fmt.Sprintf("initialization from section %q failed: %v", section, err))
	}
	return t
}

// Derive applies fn to args, surfacing failures as ErrSemanticInvalid.
func Derive[A any, T any](args *A, fn DeriveFunc[A, T]) (T, error) {
	var zero T
	if args == nil {
		return zero, fmt.Errorf("%w: nil arguments", ErrSemanticInvalid)
	}
	t, err := fn(args)
	if err != nil {
		return zero, semanticError("", err)
	}
	return t, nil
}

// FromConfigFunc binds section of tbl into an A and applies fn.
//
//	box, err := confinit.FromConfigFunc(tbl, "box", NewBox)
func FromConfigFunc[A any, T any](tbl Table, section string, fn DeriveFunc[A, T]) (T, error) {
	var zero T
	args, err := Bind[A](tbl, section)
	if err != nil {
		return zero, err
	}
	t, err := fn(args)
	if err != nil {
		return zero, semanticError(section, err)
	}
	return t, nil
}

// MustFromConfigFunc is like FromConfigFunc but panics on error
func MustFromConfigFunc[A any, T any](tbl Table, section string, fn DeriveFunc[A, T]) T {
	t, err := FromConfigFunc(tbl, section, fn)
	if err != nil {
		panic(fmt.Sprintf("initialization from section %q failed: %v", section, err))
	}
	return t
}

// semanticError tags a derivation failure with ErrSemanticInvalid and the section name
func semanticError(section string, err error) error {
	if !errors.Is(err, ErrSemanticInvalid) {
		err = fmt.Errorf("%w: %w", ErrSemanticInvalid, err)
	}
	if section != "" {
		return fmt.Errorf("section %q: %w", section, err)
	}
	return err
}
