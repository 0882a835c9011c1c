// FILE: lixenwraith/confinit/decode.go
package confinit

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// decodeHook returns the composite decode hook for all type conversions.
// Extra hooks run after the built-in ones.
func decodeHook(extra ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFunc {
	hooks := []mapstructure.DecodeHookFunc{
		// Shape checks
		arrayArityHookFunc(),
		integerRangeHookFunc(),
		floatToIntegerHookFunc(),

		// Network types; lengths cap IPv6 text and IPv6 CIDR forms
		stringParserHookFunc(45, parseIP),
		stringParserHookFunc(49, parseCIDR),
		stringParserHookFunc(2048, parseURL),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
	}
	hooks = append(hooks, extra...)
	return mapstructure.ComposeDecodeHookFunc(hooks...)
}

// arrayArityHookFunc rejects sequences whose length differs from a fixed-size array field
func arrayArityHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t.Kind() != reflect.Array || f.Kind() != reflect.Slice {
			return data, nil
		}
		if n := reflect.ValueOf(data).Len(); n != t.Len() {
			return nil, fmt.Errorf("expected %d elements, got %d", t.Len(), n)
		}
		return data, nil
	}
}

// integerRangeHookFunc rejects integers that do not fit the sized target field
func integerRangeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.Int64 {
			return data, nil
		}
		i := reflect.ValueOf(data).Int()
		target := reflect.New(t).Elem()

		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
			if target.OverflowInt(i) {
				return nil, fmt.Errorf("value %d overflows %s", i, t)
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if i < 0 || target.OverflowUint(uint64(i)) {
				return nil, fmt.Errorf("value %d out of range for %s", i, t)
			}
		}
		return data, nil
	}
}

// floatToIntegerHookFunc rejects floats bound to integer fields instead of truncating them
func floatToIntegerHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.Float64 && f.Kind() != reflect.Float32 {
			return data, nil
		}
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return nil, fmt.Errorf("expected integer for %s, got float %v", t, data)
		}
		return data, nil
	}
}

// stringParserHookFunc converts strings into V or *V fields using parse.
// Inputs longer than maxLen are rejected before parsing.
func stringParserHookFunc[V any](maxLen int, parse func(string) (*V, error)) mapstructure.DecodeHookFunc {
	want := reflect.TypeOf((*V)(nil)).Elem()
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		asPtr := t.Kind() == reflect.Ptr && t.Elem() == want
		if t != want && !asPtr {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > maxLen {
			return nil, fmt.Errorf("%s value too long: %d bytes", want, len(str))
		}
		v, err := parse(str)
		if err != nil {
			return nil, err
		}
		if asPtr {
			return v, nil
		}
		return *v, nil
	}
}

func parseIP(s string) (*net.IP, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address: %s", s)
	}
	return &ip, nil
}

func parseCIDR(s string) (*net.IPNet, error) {
	_, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR: %w", err)
	}
	return ipnet, nil
}

func parseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	return u, nil
}
