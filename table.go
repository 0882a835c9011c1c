// FILE: lixenwraith/confinit/table.go
package confinit

import (
	"fmt"
)

// Table is a parsed configuration document: string keys mapping to scalars
// (int64, float64, bool, string, time.Time), sequences ([]any) or nested Tables.
// Tables produced by this package are treated as read-only; accessors hand out copies.
type Table map[string]any

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = deepCopy(v)
	}
	return out
}

// Has reports whether key is present at the top level.
func (t Table) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Keys returns the top-level keys in lexical order.
func (t Table) Keys() []string {
	return sortedKeys(t)
}

// Sections returns the top-level keys whose values are sub-tables, in lexical order.
func (t Table) Sections() []string {
	var names []string
	for _, k := range sortedKeys(t) {
		if _, ok := t[k].(Table); ok {
			names = append(names, k)
		}
	}
	return names
}

// Paths returns every leaf path in dot notation, in lexical order.
func (t Table) Paths() []string {
	return sortedKeys(flattenTable(t, ""))
}

// Lookup returns a copy of the value at a dot-separated path.
func (t Table) Lookup(path string) (any, bool) {
	if v, ok := t[path]; ok {
		return deepCopy(v), true
	}
	v, ok := navigateToPath(t, path)
	if !ok {
		return nil, false
	}
	return deepCopy(v), true
}

// Section returns a copy of the named sub-table.
// An exact top-level key wins; otherwise a dotted name addresses a nested table.
// Absent sections yield ErrMissingSection, non-table entries ErrWrongShape.
func (t Table) Section(name string) (Table, error) {
	value, ok := t[name]
	if !ok {
		value, ok = navigateToPath(t, name)
	}
	if !ok || name == "" {
		return nil, &SectionError{Section: name, Err: ErrMissingSection}
	}

	sub, isTable := value.(Table)
	if !isTable {
		return nil, &SectionError{Section: name, Found: fmt.Sprintf("%T", value), Err: ErrWrongShape}
	}

	return sub.Clone(), nil
}
