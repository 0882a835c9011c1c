// FILE: lixenwraith/confinit/register.go
package confinit

import (
	"fmt"
	"math"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
	ipType       = reflect.TypeOf(net.IP{})
	ipNetType    = reflect.TypeOf(net.IPNet{})
	urlType      = reflect.TypeOf(url.URL{})
)

// StructTable converts an argument record into a Table using its `toml` tags.
// It is the inverse of Bind: binding the result back yields an equal record.
// Nil pointers and fields tagged "-" are skipped.
func StructTable(args any) (Table, error) {
	v := reflect.ValueOf(args)

	// Handle pointer or direct struct value
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("StructTable requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("StructTable requires a struct or struct pointer, got %T", args)
	}

	var problems []string
	tbl := structFields(v, "", &problems)
	if len(problems) > 0 {
		return nil, fmt.Errorf("failed to convert %d field(s): %s", len(problems), strings.Join(problems, "; "))
	}
	return tbl, nil
}

// WithDefaults places args, converted by StructTable, under section as the
// lowest layer: the file and every override take precedence over it.
// An empty section merges the fields at the top level.
func (b *Builder) WithDefaults(section string, args any) *Builder {
	tbl, err := StructTable(args)
	if err != nil {
		b.err = fmt.Errorf("invalid defaults for section %q: %w", section, err)
		return b
	}

	if b.defaults == nil {
		b.defaults = make(Table)
	}
	if section == "" {
		mergeTables(b.defaults, tbl)
		return b
	}

	layer := make(Table)
	setNestedValue(layer, section, tbl)
	mergeTables(b.defaults, layer)
	return b
}

// structFields walks exported fields, recursing into nested structs
func structFields(v reflect.Value, fieldPath string, problems *[]string) Table {
	t := v.Type()
	out := make(Table)

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		// Get tag value or use field name
		tag := field.Tag.Get("toml")
		if tag == "-" {
			continue
		}
		key := field.Name
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			key = name
		}

		value, skip, err := fieldValue(v.Field(i), fieldPath+field.Name+".", problems)
		if err != nil {
			*problems = append(*problems, fmt.Sprintf("field %s%s: %v", fieldPath, field.Name, err))
			continue
		}
		if !skip {
			out[key] = value
		}
	}

	return out
}

// fieldValue converts one field into the Table value domain
func fieldValue(fv reflect.Value, fieldPath string, problems *[]string) (value any, skip bool, err error) {
	switch fv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if fv.IsNil() {
			return nil, true, nil
		}
		return fieldValue(fv.Elem(), fieldPath, problems)
	}

	// Types the decode hooks read back from strings
	switch fv.Type() {
	case durationType:
		return time.Duration(fv.Int()).String(), false, nil
	case timeType:
		return fv.Interface().(time.Time), false, nil
	case ipType:
		if fv.Len() == 0 {
			return nil, true, nil
		}
		return fv.Interface().(net.IP).String(), false, nil
	case ipNetType:
		ipnet := fv.Interface().(net.IPNet)
		return ipnet.String(), false, nil
	case urlType:
		u := fv.Interface().(url.URL)
		return u.String(), false, nil
	}

	switch fv.Kind() {
	case reflect.Bool:
		return fv.Bool(), false, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fv.Int(), false, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := fv.Uint()
		if u > math.MaxInt64 {
			return nil, false, fmt.Errorf("value %d overflows int64", u)
		}
		return int64(u), false, nil
	case reflect.Float32, reflect.Float64:
		return fv.Float(), false, nil
	case reflect.String:
		return fv.String(), false, nil
	case reflect.Slice, reflect.Array:
		if fv.Kind() == reflect.Slice && fv.IsNil() {
			return nil, true, nil
		}
		items := make([]any, 0, fv.Len())
		for i := 0; i < fv.Len(); i++ {
			item, skip, err := fieldValue(fv.Index(i), fmt.Sprintf("%s%d.", fieldPath, i), problems)
			if err != nil {
				return nil, false, fmt.Errorf("element %d: %w", i, err)
			}
			if skip {
				return nil, false, fmt.Errorf("element %d is nil", i)
			}
			items = append(items, item)
		}
		return items, false, nil
	case reflect.Map:
		if fv.Type().Key().Kind() != reflect.String {
			return nil, false, fmt.Errorf("map key type %s is not a string", fv.Type().Key())
		}
		if fv.IsNil() {
			return nil, true, nil
		}
		out := make(Table, fv.Len())
		iter := fv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			item, skip, err := fieldValue(iter.Value(), fieldPath+key+".", problems)
			if err != nil {
				return nil, false, fmt.Errorf("key %q: %w", key, err)
			}
			if !skip {
				out[key] = item
			}
		}
		return out, false, nil
	case reflect.Struct:
		return structFields(fv, fieldPath, problems), false, nil
	default:
		return nil, false, fmt.Errorf("unsupported kind %s", fv.Kind())
	}
}
