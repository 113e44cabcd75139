// Package filterset derives filter options from records loaded from the
// TruePortMe API and narrows those records by several criteria at once.
//
// Records are the JSON objects exactly as the API returned them. Nothing in
// this package mutates a record or the slice holding it, so the same snapshot
// can back the option lists, the filtered table, and an export.
package filterset

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one decoded JSON object from an API list response.
type Record = map[string]any

// Lookup resolves a dot-separated path ("address.state") inside rec.
// A missing key, a nil value, or a non-object intermediate all report
// ok=false; Lookup never fails otherwise.
func Lookup(rec Record, path string) (any, bool) {
	if rec == nil || path == "" {
		return nil, false
	}
	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// Str returns the value at path formatted for display, or "" when absent.
func Str(rec Record, path string) string {
	v, ok := Lookup(rec, path)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// Bool reports the boolean at path. Anything that is not a JSON boolean
// (including the strings "true"/"false") reads as false.
func Bool(rec Record, path string) bool {
	v, ok := Lookup(rec, path)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Int returns the number at path truncated to int, or 0 when absent.
func Int(rec Record, path string) int {
	v, ok := Lookup(rec, path)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case json.Number:
		n, _ := t.Int64()
		return int(n)
	}
	return 0
}

// ID returns the record's identifier, preferring "_id" over "id".
func ID(rec Record) string {
	if s := Str(rec, "_id"); s != "" {
		return s
	}
	return Str(rec, "id")
}
