// internal/app/system/filterset/dimension.go
package filterset

import (
	"net/url"
	"strings"
)

// Kind is the canonical type of a filter dimension.
type Kind int

const (
	// KindString dimensions match string fields and get a distinct-value
	// option list.
	KindString Kind = iota
	// KindBool dimensions match JSON booleans. At the HTTP boundary only the
	// literals "true" and "false" are accepted.
	KindBool
)

// Dimension declares one filterable field of a list page.
type Dimension struct {
	Name  string // query/form parameter name
	Label string // shown next to the select box
	Path  string // dot path inside the record
	Kind  Kind
}

// ParseCriteria converts request values into typed criteria keyed by record
// path. Unknown parameters are ignored; a bool dimension with anything other
// than "true"/"false" stays unset.
func ParseCriteria(dims []Dimension, vals url.Values) Criteria {
	c := make(Criteria, len(dims))
	for _, d := range dims {
		raw := strings.TrimSpace(vals.Get(d.Name))
		switch d.Kind {
		case KindBool:
			switch raw {
			case "true":
				c[d.Path] = BoolValue(true)
			case "false":
				c[d.Path] = BoolValue(false)
			default:
				c[d.Path] = Unset
			}
		default:
			c[d.Path] = String(raw)
		}
	}
	return c
}

// Query is the inverse of ParseCriteria: it renders the set criteria back
// into request values, for pagination and export links.
func Query(dims []Dimension, c Criteria) url.Values {
	vals := url.Values{}
	for _, d := range dims {
		if v, ok := c[d.Path]; ok && v.IsSet() {
			vals.Set(d.Name, v.String())
		}
	}
	return vals
}

// Selected returns the current value of every dimension by name ("" when
// unset), for pre-selecting options in templates.
func Selected(dims []Dimension, c Criteria) map[string]string {
	out := make(map[string]string, len(dims))
	for _, d := range dims {
		out[d.Name] = c[d.Path].String()
	}
	return out
}

// Options computes the distinct-value list of every string dimension.
// Bool dimensions are omitted; their options are fixed.
func Options(records []Record, dims []Dimension) map[string][]string {
	out := make(map[string][]string, len(dims))
	for _, d := range dims {
		if d.Kind != KindString {
			continue
		}
		out[d.Name] = DistinctStrings(records, d.Path)
	}
	return out
}
