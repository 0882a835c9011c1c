// FILE: lixenwraith/confinit/bind.go
package confinit

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Bindable lets an argument record decode its own section instead of the
// default struct-tag decoding. Implement it on the pointer type.
type Bindable interface {
	BindTable(section Table) error
}

// Binder decodes sections of a Table into argument records.
// The zero value is not usable; create one with NewBinder.
type Binder struct {
	tagName      string
	strict       bool
	allowMissing bool
	hooks        []mapstructure.DecodeHookFunc
}

// NewBinder creates a binder using "toml" struct tags, requiring every field
// to be present and ignoring unknown keys.
func NewBinder() *Binder {
	return &Binder{tagName: "toml"}
}

// WithTagName sets the struct tag used to map keys to fields
func (b *Binder) WithTagName(tagName string) *Binder {
	if tagName != "" {
		b.tagName = tagName
	}
	return b
}

// WithStrict makes keys without a matching field a FieldMismatch
func (b *Binder) WithStrict() *Binder {
	b.strict = true
	return b
}

// WithAllowMissing leaves fields absent from the section at their zero value
func (b *Binder) WithAllowMissing() *Binder {
	b.allowMissing = true
	return b
}

// WithDecodeHook appends an application-specific conversion hook
func (b *Binder) WithDecodeHook(hook mapstructure.DecodeHookFunc) *Binder {
	if hook != nil {
		b.hooks = append(b.hooks, hook)
	}
	return b
}

// Bind extracts section from tbl and decodes it into a new A using the default binder.
func Bind[A any](tbl Table, section string) (*A, error) {
	return BindWith[A](NewBinder(), tbl, section)
}

// BindWith is Bind with an explicit binder.
// The section is cloned first, so the result shares no storage with tbl.
func BindWith[A any](b *Binder, tbl Table, section string) (*A, error) {
	if b == nil {
		b = NewBinder()
	}

	sub, err := tbl.Section(section)
	if err != nil {
		return nil, err
	}

	args := new(A)
	if err := b.decode(section, sub, args); err != nil {
		return nil, err
	}
	return args, nil
}

// Decode binds a section table into target, which must be a non-nil pointer.
func (b *Binder) Decode(section Table, target any) error {
	return b.decode("", section.Clone(), target)
}

func (b *Binder) decode(name string, section Table, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("bind target must be non-nil pointer, got %T", target)
	}
	targetName := rv.Type().Elem().String()

	if bindable, ok := target.(Bindable); ok {
		if err := bindable.BindTable(section); err != nil {
			if errors.Is(err, ErrFieldMismatch) {
				return err
			}
			return &FieldMismatchError{Section: name, Target: targetName, Problems: []string{err.Error()}}
		}
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          b.tagName,
		WeaklyTypedInput: false,
		ErrorUnset:       !b.allowMissing,
		ErrorUnused:      b.strict,
		ZeroFields:       true,
		DecodeHook:       decodeHook(b.hooks...),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(map[string]any(section)); err != nil {
		return &FieldMismatchError{Section: name, Target: targetName, Problems: decodeProblems(err)}
	}
	return nil
}

// decodeProblems flattens a mapstructure error into one message per field
func decodeProblems(err error) []string {
	var msErr *mapstructure.Error
	if !errors.As(err, &msErr) {
		return []string{err.Error()}
	}

	problems := make([]string, 0, len(msErr.Errors))
	for _, p := range msErr.Errors {
		p = strings.Replace(p, "'' has unset fields:", "missing fields:", 1)
		p = strings.Replace(p, "'' has invalid keys:", "unknown keys:", 1)
		problems = append(problems, p)
	}
	return problems
}
