package filterset_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
)

func decode(t *testing.T, s string) []filterset.Record {
	t.Helper()
	var out []filterset.Record
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return out
}

const institutionsJSON = `[
	{"_id":"i1","name":"Alpha","address":{"state":"MH","district":"Pune"},"status":"ACTIVE","claimed":true,"kycVerified":false},
	{"_id":"i2","name":"Beta","address":{"state":"KA","district":"Mysuru"},"status":"PENDING","claimed":false,"kycVerified":true},
	{"_id":"i3","name":"Gamma","address":{"state":"MH","district":""},"status":"ACTIVE","claimed":"true"},
	{"_id":"i4","name":"Delta","address":null,"status":null},
	{"_id":"i5","name":"Eps","address":"not-an-object","status":"ACTIVE"}
]`

func ids(recs []filterset.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, filterset.ID(r))
	}
	return out
}

func TestApply_ScenarioA(t *testing.T) {
	records := decode(t, `[{"state":"MH","status":"ACTIVE"},{"state":"KA","status":"PENDING"}]`)
	got := filterset.Apply(records, filterset.Criteria{"state": filterset.String("MH")})

	want := decode(t, `[{"state":"MH","status":"ACTIVE"}]`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_IdentityWhenUnset(t *testing.T) {
	records := decode(t, institutionsJSON)

	for name, c := range map[string]filterset.Criteria{
		"nil":   nil,
		"empty": {},
		"unset": {"address.state": filterset.Unset, "status": filterset.String(""), "claimed": filterset.Unset},
	} {
		t.Run(name, func(t *testing.T) {
			got := filterset.Apply(records, c)
			if diff := cmp.Diff(records, got); diff != "" {
				t.Errorf("expected identity (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_MultipleCriteriaAreANDed(t *testing.T) {
	records := decode(t, institutionsJSON)
	c := filterset.Criteria{
		"address.state": filterset.String("MH"),
		"status":        filterset.String("ACTIVE"),
	}
	if diff := cmp.Diff([]string{"i1", "i3"}, ids(filterset.Apply(records, c))); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	c["claimed"] = filterset.BoolValue(true)
	if diff := cmp.Diff([]string{"i1"}, ids(filterset.Apply(records, c))); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_TypeSensitive(t *testing.T) {
	records := decode(t, institutionsJSON)

	// i3 carries the string "true"; it must not match a boolean criterion.
	got := ids(filterset.Apply(records, filterset.Criteria{"claimed": filterset.BoolValue(true)}))
	if diff := cmp.Diff([]string{"i1"}, got); diff != "" {
		t.Errorf("bool criterion (-want +got):\n%s", diff)
	}

	got = ids(filterset.Apply(records, filterset.Criteria{"claimed": filterset.String("true")}))
	if diff := cmp.Diff([]string{"i3"}, got); diff != "" {
		t.Errorf("string criterion (-want +got):\n%s", diff)
	}
}

func TestApply_CaseSensitiveExactMatch(t *testing.T) {
	records := decode(t, institutionsJSON)
	for _, v := range []string{"mh", "M", "MH "} {
		if got := filterset.Apply(records, filterset.Criteria{"address.state": filterset.String(v)}); len(got) != 0 {
			t.Errorf("state=%q: expected no matches, got %v", v, ids(got))
		}
	}
}

func TestApply_AbsentFieldYieldsEmpty(t *testing.T) {
	records := decode(t, institutionsJSON)
	got := filterset.Apply(records, filterset.Criteria{"address.pincode": filterset.String("411001")})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", ids(got))
	}
}

func TestApply_EmptyRecords(t *testing.T) {
	got := filterset.Apply(nil, filterset.Criteria{"status": filterset.String("ACTIVE")})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d records", len(got))
	}
	if vals := filterset.DistinctValues(nil, "status"); len(vals) != 0 {
		t.Errorf("expected no distinct values, got %v", vals)
	}
}

func TestApply_IdempotentAndPure(t *testing.T) {
	records := decode(t, institutionsJSON)
	before := decode(t, institutionsJSON)
	c := filterset.Criteria{"status": filterset.String("ACTIVE")}

	first := filterset.Apply(records, c)
	second := filterset.Apply(records, c)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second call differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, records); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestDistinctValues(t *testing.T) {
	records := decode(t, institutionsJSON)

	tests := []struct {
		path string
		want []any
	}{
		{"address.state", []any{"MH", "KA"}},
		{"address.district", []any{"Pune", "Mysuru"}},
		{"status", []any{"ACTIVE", "PENDING"}},
		{"claimed", []any{true, false, "true"}},
		{"address", []any{"not-an-object"}},
		{"missing.path", []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := filterset.DistinctValues(records, tt.path)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DistinctValues(%q) (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestDistinctValues_NoDuplicatesOrEmpties(t *testing.T) {
	records := decode(t, `[{"s":"a"},{"s":"a"},{"s":""},{"s":null},{},{"s":"b"},{"s":"a"}]`)
	got := filterset.DistinctValues(records, "s")
	seen := map[any]bool{}
	for _, v := range got {
		if v == nil || v == "" {
			t.Errorf("unexpected empty value in %v", got)
		}
		if seen[v] {
			t.Errorf("duplicate value %v in %v", v, got)
		}
		seen[v] = true
	}
	if len(got) != 2 {
		t.Errorf("expected 2 values, got %v", got)
	}
}

func TestParseCriteria_BooleanBoundary(t *testing.T) {
	dims := []filterset.Dimension{
		{Name: "state", Path: "address.state", Kind: filterset.KindString},
		{Name: "claimed", Path: "claimed", Kind: filterset.KindBool},
		{Name: "kyc", Path: "kycVerified", Kind: filterset.KindBool},
	}

	c := filterset.ParseCriteria(dims, url.Values{
		"state":   {" MH "},
		"claimed": {"true"},
		"kyc":     {"yes"},
		"other":   {"ignored"},
	})

	if got := c["address.state"]; got.Raw() != "MH" {
		t.Errorf("state: got %v, want MH", got.Raw())
	}
	if got := c["claimed"]; got.Raw() != true {
		t.Errorf("claimed: got %#v, want true", got.Raw())
	}
	if c["kycVerified"].IsSet() {
		t.Errorf("kyc should be unset for a non-literal value")
	}
	if _, ok := c["other"]; ok {
		t.Errorf("unknown parameters must be ignored")
	}

	q := filterset.Query(dims, c)
	if q.Get("state") != "MH" || q.Get("claimed") != "true" || q.Has("kyc") {
		t.Errorf("Query round trip: got %v", q)
	}
}

func TestCriteriaKey_StableAndTyped(t *testing.T) {
	a := filterset.Criteria{"b": filterset.String("x"), "a": filterset.BoolValue(true), "c": filterset.Unset}
	b := filterset.Criteria{"a": filterset.BoolValue(true), "b": filterset.String("x")}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}

	s := filterset.Criteria{"a": filterset.String("true"), "b": filterset.String("x")}
	if a.Key() == s.Key() {
		t.Errorf("bool and string criteria must not share a key: %q", a.Key())
	}
	if a.Active() != 2 {
		t.Errorf("Active: got %d, want 2", a.Active())
	}
}

func TestOptions(t *testing.T) {
	records := decode(t, institutionsJSON)
	dims := []filterset.Dimension{
		{Name: "state", Path: "address.state"},
		{Name: "claimed", Path: "claimed", Kind: filterset.KindBool},
	}
	got := filterset.Options(records, dims)
	want := map[string][]string{"state": {"MH", "KA"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Options (-want +got):\n%s", diff)
	}
}

func TestLookupAccessors(t *testing.T) {
	rec := decode(t, `[{"_id":"x1","n":3,"flag":true,"nested":{"deep":{"v":"ok"}}}]`)[0]

	if got := filterset.Str(rec, "nested.deep.v"); got != "ok" {
		t.Errorf("Str nested: got %q", got)
	}
	if got := filterset.Str(rec, "n"); got != "3" {
		t.Errorf("Str number: got %q", got)
	}
	if got := filterset.Int(rec, "n"); got != 3 {
		t.Errorf("Int: got %d", got)
	}
	if !filterset.Bool(rec, "flag") {
		t.Errorf("Bool: expected true")
	}
	if _, ok := filterset.Lookup(rec, "nested.deep.v.more"); ok {
		t.Errorf("Lookup through a scalar must report absent")
	}
	if got := filterset.ID(rec); got != "x1" {
		t.Errorf("ID: got %q", got)
	}
}
