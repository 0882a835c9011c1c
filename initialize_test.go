// FILE: lixenwraith/confinit/initialize_test.go
package confinit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairArgs struct {
	X int64 `toml:"x"`
	Y int64 `toml:"y"`
}

type products struct {
	X2 int64
	XY int64
	Y2 int64
}

func (p *products) DeriveFrom(a *pairArgs) error {
	p.X2 = a.X * a.X
	p.XY = a.X * a.Y
	p.Y2 = a.Y * a.Y
	return nil
}

// box is the end-to-end target: area derived from validated sides
type box struct {
	x, y uint32
	Area uint32
}

func (b *box) DeriveFrom(a *boxArgs) error {
	if a.X == 0 || a.Y == 0 {
		return Invalid("box sides must be positive, got x=%d y=%d", a.X, a.Y)
	}
	b.x, b.y = a.X, a.Y
	b.Area = a.X * a.Y
	return nil
}

func newProducts(a *pairArgs) (products, error) {
	return products{X2: a.X * a.X, XY: a.X * a.Y, Y2: a.Y * a.Y}, nil
}

// TestFromArgs tests derivation from an already-built argument record
func TestFromArgs(t *testing.T) {
	t.Run("Composition", func(t *testing.T) {
		p, err := FromArgs[products](&pairArgs{X: 1, Y: 2})
		require.NoError(t, err)
		assert.Equal(t, products{X2: 1, XY: 2, Y2: 4}, *p)
	})

	t.Run("Deterministic", func(t *testing.T) {
		args := &pairArgs{X: 5, Y: -3}
		first, err := FromArgs[products](args)
		require.NoError(t, err)
		second, err := FromArgs[products](&pairArgs{X: 5, Y: -3})
		require.NoError(t, err)
		assert.Equal(t, *first, *second)
		assert.Equal(t, pairArgs{X: 5, Y: -3}, *args, "arguments are read only")
	})

	t.Run("NilArgs", func(t *testing.T) {
		_, err := FromArgs[products, pairArgs](nil)
		assert.ErrorIs(t, err, ErrSemanticInvalid)
	})

	t.Run("SemanticInvalid", func(t *testing.T) {
		_, err := FromArgs[box](&boxArgs{X: 0, Y: 4})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSemanticInvalid)
		assert.Contains(t, err.Error(), "x=0")
	})

	t.Run("PlainErrorIsTagged", func(t *testing.T) {
		failing := func(*pairArgs) (products, error) { return products{}, errors.New("boom") }
		_, err := Derive(&pairArgs{}, failing)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSemanticInvalid)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("DeriveFunc", func(t *testing.T) {
		p, err := Derive(&pairArgs{X: 1, Y: 2}, newProducts)
		require.NoError(t, err)
		assert.Equal(t, products{X2: 1, XY: 2, Y2: 4}, p)

		_, err = Derive[pairArgs](nil, newProducts)
		assert.ErrorIs(t, err, ErrSemanticInvalid)
	})
}

// TestFromConfig tests the load, bind and derive pipeline
func TestFromConfig(t *testing.T) {
	t.Run("BoxScenario", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 3\ny = 4\n")
		require.NoError(t, err)

		b, err := FromConfig[box, boxArgs](tbl, "box")
		require.NoError(t, err)
		assert.Equal(t, uint32(12), b.Area)
	})

	t.Run("FunctionStyle", func(t *testing.T) {
		tbl, err := Load("[pair]\nx = 1\ny = 2\n")
		require.NoError(t, err)

		p, err := FromConfigFunc(tbl, "pair", newProducts)
		require.NoError(t, err)
		assert.Equal(t, products{X2: 1, XY: 2, Y2: 4}, p)
	})

	t.Run("BindErrorsPassThrough", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 3\n")
		require.NoError(t, err)

		_, err = FromConfig[box, boxArgs](tbl, "box")
		assert.ErrorIs(t, err, ErrFieldMismatch)
		assert.NotErrorIs(t, err, ErrSemanticInvalid)

		_, err = FromConfig[box, boxArgs](tbl, "crate")
		assert.ErrorIs(t, err, ErrMissingSection)

		_, err = FromConfigFunc(tbl, "crate", newProducts)
		assert.ErrorIs(t, err, ErrMissingSection)
	})

	t.Run("SemanticErrorNamesSection", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 0\ny = 4\n")
		require.NoError(t, err)

		_, err = FromConfig[box, boxArgs](tbl, "box")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSemanticInvalid)
		assert.Contains(t, err.Error(), `section "box"`)
	})

	t.Run("MustVariants", func(t *testing.T) {
		good, err := Load("[box]\nx = 2\ny = 5\n")
		require.NoError(t, err)
		bad, err := Load("[box]\nx = 0\ny = 5\n")
		require.NoError(t, err)

		assert.NotPanics(t, func() {
			b := MustFromConfig[box, boxArgs](good, "box")
			assert.Equal(t, uint32(10), b.Area)
		})
		assert.Panics(t, func() { MustFromConfig[box, boxArgs](bad, "box") })
		assert.Panics(t, func() { MustFromConfigFunc(good, "missing", newProducts) })
	})
}
