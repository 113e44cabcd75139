// Package listing runs the fetch, snapshot, and filter cycle behind every
// filterable list page.
//
// A list is fetched whole from the API, tagged with the criteria active
// when the request started, stored as the view's snapshot if no newer
// fetch overtook it, and narrowed locally by the filter engine. When the
// fetch fails the last good snapshot is shown instead, flagged stale.
package listing

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/trueportme/adminconsole/internal/app/system/fetchguard"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
)

// FetchFunc loads the complete, unfiltered list.
type FetchFunc func(ctx context.Context) ([]filterset.Record, error)

// Source describes one list.
type Source struct {
	Key   string
	Dims  []filterset.Dimension
	Fetch FetchFunc
}

// Result is what a list page renders.
type Result struct {
	Criteria filterset.Criteria
	Selected map[string]string
	Options  map[string][]string

	// Records is the filtered list; Total counts the unfiltered snapshot.
	Records []filterset.Record
	Total   int

	FetchedAt time.Time

	// Err is the fetch error when the page fell back to an older snapshot
	// (or to nothing at all).
	Err   error
	Stale bool

	// Superseded is set when a newer fetch for the same list started while
	// this one was in flight. Nothing was stored and the response should
	// be dropped.
	Superseded bool
}

// Query returns the active criteria as request values, for links that
// must keep the current filters.
func (r Result) Query(dims []filterset.Dimension) url.Values {
	return filterset.Query(dims, r.Criteria)
}

// Load fetches src, stores the snapshot in v, and applies the criteria
// parsed from vals.
func Load(ctx context.Context, v *viewstate.View, src Source, vals url.Values) Result {
	criteria := filterset.ParseCriteria(src.Dims, vals)
	res := Result{
		Criteria: criteria,
		Selected: filterset.Selected(src.Dims, criteria),
	}

	ticket := v.Guard().Begin(src.Key, criteria.Key())
	recs, err := src.Fetch(ctx)
	if err != nil {
		if !v.Guard().Current(ticket) {
			res.Superseded = true
			return res
		}
		res.Err = err
		if snap, ok := v.Snapshot(src.Key); ok {
			res.Stale = true
			fill(&res, src, snap)
		} else {
			fill(&res, src, viewstate.Snapshot{Records: []filterset.Record{}})
		}
		return res
	}

	snap := viewstate.Snapshot{Records: recs, Total: len(recs), FetchedAt: time.Now()}
	if !v.Store(ticket, snap) {
		res.Superseded = true
		return res
	}
	fill(&res, src, snap)
	return res
}

// FromSnapshot renders the stored snapshot without fetching, for requests
// that only change filters or paging. ok is false when there is no
// snapshot yet.
func FromSnapshot(v *viewstate.View, src Source, vals url.Values) (Result, bool) {
	snap, ok := v.Snapshot(src.Key)
	if !ok {
		return Result{}, false
	}
	criteria := filterset.ParseCriteria(src.Dims, vals)
	res := Result{
		Criteria: criteria,
		Selected: filterset.Selected(src.Dims, criteria),
	}
	fill(&res, src, snap)
	return res, true
}

func fill(res *Result, src Source, snap viewstate.Snapshot) {
	res.Options = filterset.Options(snap.Records, src.Dims)
	res.Records = filterset.Apply(snap.Records, res.Criteria)
	res.Total = len(snap.Records)
	res.FetchedAt = snap.FetchedAt
}

// Discard answers an HTMX request whose response was superseded: no swap,
// no content.
func Discard(w http.ResponseWriter) {
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusNoContent)
}

// Ticket exposes the guard ticket type for handlers that tag their own
// fetches (dashboard sections, detail pages).
type Ticket = fetchguard.Ticket
