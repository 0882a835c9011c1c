// FILE: lixenwraith/confinit/bind_test.go
package confinit

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boxArgs struct {
	X uint32 `toml:"x"`
	Y uint32 `toml:"y"`
}

type tlsArgs struct {
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

type serverArgs struct {
	Host     string        `toml:"host"`
	Port     uint16        `toml:"port"`
	Ratio    float64       `toml:"ratio"`
	Enabled  bool          `toml:"enabled"`
	Tags     []string      `toml:"tags"`
	Timeout  time.Duration `toml:"timeout"`
	Started  time.Time     `toml:"started"`
	Addr     net.IP        `toml:"addr"`
	Subnet   net.IPNet     `toml:"subnet"`
	Endpoint *url.URL      `toml:"endpoint"`
	TLS      tlsArgs       `toml:"tls"`
}

// TestBindRoundTrip tests binding well-formed sections
func TestBindRoundTrip(t *testing.T) {
	t.Run("Box", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 3\ny = 4\n")
		require.NoError(t, err)

		args, err := Bind[boxArgs](tbl, "box")
		require.NoError(t, err)
		assert.Equal(t, boxArgs{X: 3, Y: 4}, *args)
	})

	t.Run("AllKinds", func(t *testing.T) {
		tbl, err := Load(`
[server]
host = "localhost"
port = 8443
ratio = 2
enabled = true
tags = ["a", "b"]
timeout = "5s"
started = 2024-01-02T03:04:05Z
addr = "192.168.1.1"
subnet = "10.0.0.0/8"
endpoint = "https://example.com/api"

[server.tls]
cert = "c.pem"
key = "k.pem"
`)
		require.NoError(t, err)

		args, err := Bind[serverArgs](tbl, "server")
		require.NoError(t, err)

		assert.Equal(t, "localhost", args.Host)
		assert.Equal(t, uint16(8443), args.Port)
		assert.Equal(t, 2.0, args.Ratio, "integers widen into float fields")
		assert.True(t, args.Enabled)
		assert.Equal(t, []string{"a", "b"}, args.Tags)
		assert.Equal(t, 5*time.Second, args.Timeout)
		assert.True(t, args.Started.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
		assert.Equal(t, "192.168.1.1", args.Addr.String())
		assert.Equal(t, "10.0.0.0/8", args.Subnet.String())
		require.NotNil(t, args.Endpoint)
		assert.Equal(t, "example.com", args.Endpoint.Host)
		assert.Equal(t, tlsArgs{Cert: "c.pem", Key: "k.pem"}, args.TLS)
	})

	t.Run("DottedSection", func(t *testing.T) {
		tbl, err := Load("[server.tls]\ncert = \"c\"\nkey = \"k\"\n")
		require.NoError(t, err)

		args, err := Bind[tlsArgs](tbl, "server.tls")
		require.NoError(t, err)
		assert.Equal(t, "c", args.Cert)
	})

	t.Run("FixedArray", func(t *testing.T) {
		type pointArgs struct {
			Coords [3]int64 `toml:"coords"`
		}
		tbl, err := Load("[p]\ncoords = [1, 2, 3]\n")
		require.NoError(t, err)

		args, err := Bind[pointArgs](tbl, "p")
		require.NoError(t, err)
		assert.Equal(t, [3]int64{1, 2, 3}, args.Coords)
	})

	t.Run("UnknownKeysIgnored", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 1\ny = 2\ncolor = \"red\"\n")
		require.NoError(t, err)

		args, err := Bind[boxArgs](tbl, "box")
		require.NoError(t, err)
		assert.Equal(t, boxArgs{X: 1, Y: 2}, *args)
	})

	t.Run("Deterministic", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 7\ny = 9\n")
		require.NoError(t, err)

		first, err := Bind[boxArgs](tbl, "box")
		require.NoError(t, err)
		second, err := Bind[boxArgs](tbl, "box")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.NotSame(t, first, second)
	})
}

// TestBindSectionErrors tests section lookup failures
func TestBindSectionErrors(t *testing.T) {
	tbl, err := Load("box = 5\n\n[circle]\nr = 1\n")
	require.NoError(t, err)

	t.Run("MissingSection", func(t *testing.T) {
		_, err := Bind[boxArgs](tbl, "square")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingSection)
		assert.Contains(t, err.Error(), "square")

		var secErr *SectionError
		require.True(t, errors.As(err, &secErr))
		assert.Equal(t, "square", secErr.Section)
	})

	t.Run("EmptySectionName", func(t *testing.T) {
		_, err := Bind[boxArgs](tbl, "")
		assert.ErrorIs(t, err, ErrMissingSection)
	})

	t.Run("WrongShape", func(t *testing.T) {
		_, err := Bind[boxArgs](tbl, "box")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrWrongShape)
		assert.NotErrorIs(t, err, ErrMissingSection)

		var secErr *SectionError
		require.True(t, errors.As(err, &secErr))
		assert.Equal(t, "int64", secErr.Found)
	})
}

// TestBindFieldMismatch tests every way a section can fail to fit its record
func TestBindFieldMismatch(t *testing.T) {
	type pointArgs struct {
		Coords [3]int64 `toml:"coords"`
	}

	tests := []struct {
		name    string
		content string
		bind    func(Table) error
		mention string
	}{
		{
			name:    "MissingField",
			content: "[box]\nx = 3\n",
			bind:    func(tbl Table) error { _, err := Bind[boxArgs](tbl, "box"); return err },
			mention: "missing fields: y",
		},
		{
			name:    "WrongScalarKind",
			content: "[box]\nx = \"three\"\ny = 4\n",
			bind:    func(tbl Table) error { _, err := Bind[boxArgs](tbl, "box"); return err },
			mention: "'x'",
		},
		{
			name:    "NegativeUnsigned",
			content: "[box]\nx = -1\ny = 4\n",
			bind:    func(tbl Table) error { _, err := Bind[boxArgs](tbl, "box"); return err },
			mention: "out of range",
		},
		{
			name:    "Overflow",
			content: "[box]\nx = 5000000000\ny = 4\n",
			bind:    func(tbl Table) error { _, err := Bind[boxArgs](tbl, "box"); return err },
			mention: "out of range for uint32",
		},
		{
			name:    "FloatIntoInteger",
			content: "[box]\nx = 3.5\ny = 4\n",
			bind:    func(tbl Table) error { _, err := Bind[boxArgs](tbl, "box"); return err },
			mention: "expected integer",
		},
		{
			name:    "ArrayTooShort",
			content: "[p]\ncoords = [1, 2]\n",
			bind:    func(tbl Table) error { _, err := Bind[pointArgs](tbl, "p"); return err },
			mention: "expected 3 elements, got 2",
		},
		{
			name:    "ArrayTooLong",
			content: "[p]\ncoords = [1, 2, 3, 4]\n",
			bind:    func(tbl Table) error { _, err := Bind[pointArgs](tbl, "p"); return err },
			mention: "expected 3 elements, got 4",
		},
		{
			name:    "BoolIntoInteger",
			content: "[box]\nx = true\ny = 4\n",
			bind:    func(tbl Table) error { _, err := Bind[boxArgs](tbl, "box"); return err },
			mention: "'x'",
		},
		{
			name:    "IntegerIntoString",
			content: "[server.tls]\ncert = 1\nkey = \"k\"\n",
			bind:    func(tbl Table) error { _, err := Bind[tlsArgs](tbl, "server.tls"); return err },
			mention: "'cert'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Load(tt.content)
			require.NoError(t, err)

			err = tt.bind(tbl)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFieldMismatch)

			var fmErr *FieldMismatchError
			require.True(t, errors.As(err, &fmErr))
			assert.NotEmpty(t, fmErr.Problems)
			assert.Contains(t, strings.Join(fmErr.Problems, "; "), tt.mention)
		})
	}

	t.Run("AllProblemsReported", func(t *testing.T) {
		tbl, err := Load("[box]\nx = \"wide\"\n")
		require.NoError(t, err)

		_, err = Bind[boxArgs](tbl, "box")
		var fmErr *FieldMismatchError
		require.True(t, errors.As(err, &fmErr))
		assert.Len(t, fmErr.Problems, 2)
		assert.Equal(t, "box", fmErr.Section)
		assert.Contains(t, fmErr.Target, "boxArgs")
	})
}

// TestBinderOptions tests strict, allow-missing, tag and hook configuration
func TestBinderOptions(t *testing.T) {
	t.Run("Strict", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 1\ny = 2\nz = 3\n")
		require.NoError(t, err)

		_, err = BindWith[boxArgs](NewBinder().WithStrict(), tbl, "box")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFieldMismatch)
		assert.Contains(t, err.Error(), "unknown keys: z")
	})

	t.Run("AllowMissing", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 1\n")
		require.NoError(t, err)

		args, err := BindWith[boxArgs](NewBinder().WithAllowMissing(), tbl, "box")
		require.NoError(t, err)
		assert.Equal(t, boxArgs{X: 1}, *args)
	})

	t.Run("TagName", func(t *testing.T) {
		type jsonArgs struct {
			Name string `json:"name"`
		}
		tbl, err := Parse([]byte(`{"svc": {"name": "api"}}`), FormatJSON)
		require.NoError(t, err)

		args, err := BindWith[jsonArgs](NewBinder().WithTagName("json"), tbl, "svc")
		require.NoError(t, err)
		assert.Equal(t, "api", args.Name)
	})

	t.Run("NilBinder", func(t *testing.T) {
		tbl, err := Load("[box]\nx = 1\ny = 2\n")
		require.NoError(t, err)

		args, err := BindWith[boxArgs](nil, tbl, "box")
		require.NoError(t, err)
		assert.Equal(t, uint32(2), args.Y)
	})

	t.Run("CustomHook", func(t *testing.T) {
		type level int
		type logArgs struct {
			Level level `toml:"level"`
		}
		levels := map[string]level{"debug": 0, "info": 1, "warn": 2}
		hook := func(f reflect.Type, to reflect.Type, data any) (any, error) {
			if f.Kind() != reflect.String || to != reflect.TypeOf(level(0)) {
				return data, nil
			}
			l, ok := levels[data.(string)]
			if !ok {
				return nil, fmt.Errorf("unknown level %q", data)
			}
			return l, nil
		}

		tbl, err := Load("[log]\nlevel = \"warn\"\n")
		require.NoError(t, err)

		args, err := BindWith[logArgs](NewBinder().WithDecodeHook(mapstructure.DecodeHookFuncType(hook)), tbl, "log")
		require.NoError(t, err)
		assert.Equal(t, level(2), args.Level)
	})

	t.Run("DecodeRequiresPointer", func(t *testing.T) {
		var args boxArgs
		err := NewBinder().Decode(Table{"x": int64(1), "y": int64(2)}, args)
		assert.Error(t, err)

		require.NoError(t, NewBinder().Decode(Table{"x": int64(1), "y": int64(2)}, &args))
		assert.Equal(t, boxArgs{X: 1, Y: 2}, args)
	})
}

type rangeArgs struct {
	Low  int64
	High int64
}

// BindTable decodes "lo..hi" strings
func (r *rangeArgs) BindTable(section Table) error {
	raw, ok := section["span"].(string)
	if !ok {
		return errors.New("span must be a string")
	}
	_, err := fmt.Sscanf(raw, "%d..%d", &r.Low, &r.High)
	return err
}

// TestBindable tests records that decode themselves
func TestBindable(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		tbl, err := Load("[r]\nspan = \"2..9\"\n")
		require.NoError(t, err)

		args, err := Bind[rangeArgs](tbl, "r")
		require.NoError(t, err)
		assert.Equal(t, rangeArgs{Low: 2, High: 9}, *args)
	})

	t.Run("FailureBecomesMismatch", func(t *testing.T) {
		tbl, err := Load("[r]\nspan = 3\n")
		require.NoError(t, err)

		_, err = Bind[rangeArgs](tbl, "r")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFieldMismatch)
		assert.Contains(t, err.Error(), "span must be a string")
	})
}

// TestBindIndependence tests that bound records share no storage with the table
func TestBindIndependence(t *testing.T) {
	type listArgs struct {
		Items []string       `toml:"items"`
		Meta  map[string]any `toml:"meta"`
	}

	tbl, err := Load("[l]\nitems = [\"a\", \"b\"]\n\n[l.meta]\nowner = \"ops\"\n")
	require.NoError(t, err)

	args, err := Bind[listArgs](tbl, "l")
	require.NoError(t, err)

	args.Items[0] = "mutated"
	args.Meta["owner"] = "mutated"

	items, _ := tbl.Lookup("l.items")
	assert.Equal(t, []any{"a", "b"}, items)
	owner, _ := tbl.String("l.meta.owner")
	assert.Equal(t, "ops", owner)
}
