// internal/app/system/filterset/criteria.go
package filterset

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a single selected filter value, or unset.
// The zero Value is unset.
type Value struct {
	v   any
	set bool
}

// Unset is the "no constraint" value.
var Unset = Value{}

// String returns a string criterion. The empty string is unset, matching
// the "All" option of a select box.
func String(s string) Value {
	if s == "" {
		return Unset
	}
	return Value{v: s, set: true}
}

// BoolValue returns a boolean criterion.
func BoolValue(b bool) Value {
	return Value{v: b, set: true}
}

// IsSet reports whether the value constrains anything.
func (v Value) IsSet() bool { return v.set }

// Raw returns the underlying string or bool (nil when unset).
func (v Value) Raw() any { return v.v }

// String renders the value the way it appears in a query string.
func (v Value) String() string {
	switch t := v.v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// matches compares a record field against the criterion by exact,
// type-sensitive equality.
func (v Value) matches(field any, present bool) bool {
	if !v.set {
		return true
	}
	if !present {
		return false
	}
	switch want := v.v.(type) {
	case string:
		got, ok := field.(string)
		return ok && got == want
	case bool:
		got, ok := field.(bool)
		return ok && got == want
	}
	return false
}

// Criteria maps a record field path to the value it must equal.
// A missing path and an Unset value both mean "no constraint".
type Criteria map[string]Value

// Active returns the number of set criteria.
func (c Criteria) Active() int {
	n := 0
	for _, v := range c {
		if v.IsSet() {
			n++
		}
	}
	return n
}

// Key is a canonical encoding of the set criteria, stable across map
// iteration order. It is used to tag in-flight fetches.
func (c Criteria) Key() string {
	paths := make([]string, 0, len(c))
	for p, v := range c {
		if v.IsSet() {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var b strings.Builder
	for i, p := range paths {
		if i > 0 {
			b.WriteByte('&')
		}
		v := c[p]
		b.WriteString(p)
		b.WriteByte('=')
		if _, isBool := v.v.(bool); isBool {
			b.WriteString("b:")
		}
		b.WriteString(v.String())
	}
	return b.String()
}
