// internal/app/system/filterset/filter.go
package filterset

import "encoding/json"

// DistinctValues returns the unique non-empty scalar values found at path
// across records, in first-seen order. Absent paths, nil, "" and non-scalar
// values (objects, arrays) are skipped.
func DistinctValues(records []Record, path string) []any {
	out := []any{}
	seen := make(map[any]struct{})
	for _, rec := range records {
		v, ok := Lookup(rec, path)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if t == "" {
				continue
			}
		case json.Number:
			if t == "" {
				continue
			}
		case bool, float64:
		default:
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DistinctStrings is DistinctValues restricted to string values.
func DistinctStrings(records []Record, path string) []string {
	out := []string{}
	for _, v := range DistinctValues(records, path) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Apply returns the records that satisfy every set criterion, in their
// original order. The input slice and records are left untouched; with no
// set criteria the result holds the same records in the same order.
func Apply(records []Record, criteria Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if Match(rec, criteria) {
			out = append(out, rec)
		}
	}
	return out
}

// Match reports whether a single record satisfies every set criterion.
func Match(rec Record, criteria Criteria) bool {
	for path, want := range criteria {
		if !want.IsSet() {
			continue
		}
		got, present := Lookup(rec, path)
		if !want.matches(got, present) {
			return false
		}
	}
	return true
}
