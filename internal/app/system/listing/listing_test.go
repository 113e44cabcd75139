package listing_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
)

var dims = []filterset.Dimension{
	{Name: "state", Path: "address.state"},
	{Name: "claimed", Path: "claimed", Kind: filterset.KindBool},
}

func records() []filterset.Record {
	return []filterset.Record{
		{"_id": "i1", "address": map[string]any{"state": "MH"}, "claimed": true},
		{"_id": "i2", "address": map[string]any{"state": "KA"}, "claimed": false},
		{"_id": "i3", "address": map[string]any{"state": "MH"}, "claimed": false},
	}
}

func newView() *viewstate.View {
	return viewstate.NewRegistry(time.Hour).Get("v")
}

func TestLoad_FiltersAndStores(t *testing.T) {
	v := newView()
	src := listing.Source{Key: "institutions", Dims: dims, Fetch: func(context.Context) ([]filterset.Record, error) {
		return records(), nil
	}}

	res := listing.Load(context.Background(), v, src, url.Values{"state": {"MH"}, "claimed": {"false"}})
	if res.Err != nil || res.Stale || res.Superseded {
		t.Fatalf("unexpected flags %+v", res)
	}
	if len(res.Records) != 1 || filterset.ID(res.Records[0]) != "i3" {
		t.Errorf("Records = %v", res.Records)
	}
	if res.Total != 3 {
		t.Errorf("Total = %d", res.Total)
	}
	if got := res.Options["state"]; len(got) != 2 || got[0] != "MH" || got[1] != "KA" {
		t.Errorf("Options = %v", res.Options)
	}
	if res.Selected["state"] != "MH" || res.Selected["claimed"] != "false" {
		t.Errorf("Selected = %v", res.Selected)
	}
	if q := res.Query(dims); q.Get("state") != "MH" || q.Get("claimed") != "false" {
		t.Errorf("Query = %v", q)
	}

	if _, ok := v.Snapshot("institutions"); !ok {
		t.Errorf("snapshot not stored")
	}
}

func TestLoad_ErrorKeepsPriorSnapshot(t *testing.T) {
	v := newView()
	ok := listing.Source{Key: "institutions", Dims: dims, Fetch: func(context.Context) ([]filterset.Record, error) {
		return records(), nil
	}}
	listing.Load(context.Background(), v, ok, nil)

	boom := errors.New("api down")
	failing := ok
	failing.Fetch = func(context.Context) ([]filterset.Record, error) { return nil, boom }

	res := listing.Load(context.Background(), v, failing, url.Values{"state": {"KA"}})
	if !errors.Is(res.Err, boom) || !res.Stale {
		t.Fatalf("expected stale result with error, got %+v", res)
	}
	if len(res.Records) != 1 || filterset.ID(res.Records[0]) != "i2" {
		t.Errorf("stale records = %v", res.Records)
	}
}

func TestLoad_ErrorWithoutSnapshot(t *testing.T) {
	v := newView()
	src := listing.Source{Key: "claims", Fetch: func(context.Context) ([]filterset.Record, error) {
		return nil, errors.New("nope")
	}}
	res := listing.Load(context.Background(), v, src, nil)
	if res.Err == nil || res.Stale {
		t.Errorf("expected error without stale data, got %+v", res)
	}
	if res.Records == nil || len(res.Records) != 0 {
		t.Errorf("expected empty, non-nil records")
	}
}

func TestLoad_SlowFetchIsSuperseded(t *testing.T) {
	v := newView()

	release := make(chan struct{})
	started := make(chan struct{})
	slow := listing.Source{Key: "institutions", Dims: dims, Fetch: func(context.Context) ([]filterset.Record, error) {
		close(started)
		<-release
		return []filterset.Record{{"_id": "old", "address": map[string]any{"state": "MH"}}}, nil
	}}
	fast := listing.Source{Key: "institutions", Dims: dims, Fetch: func(context.Context) ([]filterset.Record, error) {
		return records(), nil
	}}

	done := make(chan listing.Result)
	go func() {
		done <- listing.Load(context.Background(), v, slow, url.Values{"state": {"MH"}})
	}()
	<-started

	newer := listing.Load(context.Background(), v, fast, url.Values{"state": {"KA"}})
	close(release)
	older := <-done

	if newer.Superseded || !older.Superseded {
		t.Fatalf("newer.Superseded=%v older.Superseded=%v", newer.Superseded, older.Superseded)
	}
	snap, _ := v.Snapshot("institutions")
	if len(snap.Records) != 3 {
		t.Errorf("stale response overwrote the snapshot: %v", snap.Records)
	}
}

func TestFromSnapshot(t *testing.T) {
	v := newView()
	src := listing.Source{Key: "institutions", Dims: dims, Fetch: func(context.Context) ([]filterset.Record, error) {
		return records(), nil
	}}

	if _, ok := listing.FromSnapshot(v, src, nil); ok {
		t.Fatalf("no snapshot expected yet")
	}
	listing.Load(context.Background(), v, src, nil)

	res, ok := listing.FromSnapshot(v, src, url.Values{"claimed": {"true"}})
	if !ok || len(res.Records) != 1 || filterset.ID(res.Records[0]) != "i1" {
		t.Errorf("FromSnapshot = %+v, %v", res, ok)
	}
}

func TestDiscard(t *testing.T) {
	rec := httptest.NewRecorder()
	listing.Discard(rec)
	if rec.Code != http.StatusNoContent || rec.Header().Get("HX-Reswap") != "none" {
		t.Errorf("Discard wrote %d %v", rec.Code, rec.Header())
	}
}

func TestNewPage(t *testing.T) {
	v := newView()
	src := listing.Source{Key: "institutions", Dims: dims, Fetch: func(context.Context) ([]filterset.Record, error) {
		return records(), nil
	}}
	res := listing.Load(context.Background(), v, src, url.Values{"state": {"MH"}})

	p := listing.NewPage(res, dims, 1)
	if p.Total != 3 || p.Matched != 2 || p.Active != 1 || len(p.Rows) != 2 {
		t.Fatalf("page = %+v", p)
	}
	if p.Query != "state=MH" {
		t.Errorf("Query = %q", p.Query)
	}
	if len(p.Filters) != 2 {
		t.Fatalf("Filters = %+v", p.Filters)
	}
	state := p.Filters[0]
	if len(state.Options) != 2 || !state.Options[0].Selected || state.Options[1].Selected {
		t.Errorf("state options = %+v", state.Options)
	}
	claimed := p.Filters[1]
	if len(claimed.Options) != 2 || claimed.Options[0].Label != "Yes" || claimed.Selected != "" {
		t.Errorf("claimed filter = %+v", claimed)
	}
	if p.Notice != "" {
		t.Errorf("Notice = %q", p.Notice)
	}
}

func TestNewPage_NoticeOnError(t *testing.T) {
	res := listing.Result{Err: errors.New("down"), Stale: true, Records: []filterset.Record{}}
	p := listing.NewPage(res, nil, 1)
	if p.Notice == "" || !p.Stale {
		t.Errorf("page = %+v", p)
	}
}

func TestViewFor(t *testing.T) {
	reg := viewstate.NewRegistry(time.Hour)
	req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil), &auth.SessionUser{ID: "u1", ViewID: "v1"})
	if got := listing.ViewFor(reg, req); got.ID != "v1" {
		t.Errorf("view id = %q", got.ID)
	}
	if listing.ViewFor(reg, req) != reg.Get("v1") {
		t.Errorf("expected the same view for the same id")
	}
}

func TestResolveRef(t *testing.T) {
	names := namecache.New()
	embedded := filterset.Record{"institutionId": map[string]any{"_id": "i1", "name": "Alpha"}}
	byID := filterset.Record{"institutionId": "i1"}
	unknown := filterset.Record{"institutionId": "i9"}
	missing := filterset.Record{"name": "x"}

	for _, rec := range []filterset.Record{embedded, byID, unknown, missing} {
		listing.ResolveRef(names, rec, "institutionId", "institutionName")
	}

	if embedded["institutionId"] != "i1" || embedded["institutionName"] != "Alpha" {
		t.Errorf("embedded = %v", embedded)
	}
	if byID["institutionName"] != "Alpha" {
		t.Errorf("byID = %v", byID)
	}
	if _, ok := unknown["institutionName"]; ok {
		t.Errorf("unknown should have no name: %v", unknown)
	}
	if _, ok := missing["institutionId"]; ok {
		t.Errorf("missing reference was invented: %v", missing)
	}
}

func TestResolveRefs_NameFromLaterRecord(t *testing.T) {
	names := namecache.New()
	recs := []filterset.Record{
		{"_id": "a1", "institutionId": "i1"},
		{"_id": "a2", "institutionId": map[string]any{"_id": "i1", "name": "Alpha"}},
	}

	listing.ResolveRefs(names, recs, "institutionId", "institutionName")

	for _, rec := range recs {
		if rec["institutionId"] != "i1" || rec["institutionName"] != "Alpha" {
			t.Errorf("record %s = %v", filterset.ID(rec), rec)
		}
	}
	got := filterset.Apply(recs, filterset.Criteria{"institutionName": filterset.String("Alpha")})
	if len(got) != 2 {
		t.Errorf("institution filter matched %d of 2", len(got))
	}
}
