// internal/app/features/profilerequests/list.go
package profilerequests

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/paging"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"go.uber.org/zap"
)

// Dims are the filter dimensions of the request list.
var Dims = []filterset.Dimension{
	{Name: "status", Label: "Status", Path: "status"},
	{Name: "student", Label: "Student", Path: "userName"},
}

// change is one requested field update.
type change struct {
	Field string
	Value string
}

type listItem struct {
	ID      string
	Student string
	Changes []change
	Status  string
	Pending bool
}

type listData struct {
	viewdata.BaseVM

	Path  string
	Page  listing.Page
	Items []listItem
}

func (h *Handler) source(view *viewstate.View) listing.Source {
	return listing.Source{Key: "profile-requests", Dims: Dims, Fetch: func(ctx context.Context) ([]filterset.Record, error) {
		recs, err := h.Store.List(ctx)
		if err != nil {
			return nil, err
		}
		names := view.Names()
		listing.ResolveRefs(names, recs, "userId", "userName")
		return recs, nil
	}}
}

// changesOf lists the requested updates sorted by field. Values that are
// not scalars are shown in their JSON-ish %v form.
func changesOf(rec filterset.Record) []change {
	m, ok := rec["changes"].(map[string]any)
	if !ok {
		return nil
	}
	out := make([]change, 0, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		out = append(out, change{Field: k, Value: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listData, bool) {
	vals := listing.Values(r)
	view := listing.ViewFor(h.Views, r)
	src := h.source(view)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list profile requests")
	defer cancel()

	res := listing.Load(ctx, view, src, vals)
	if res.Superseded {
		if listing.IsHTMX(r) {
			listing.Discard(w)
			return listData{}, false
		}
		if snap, ok := listing.FromSnapshot(view, src, vals); ok {
			res = snap
		}
	}
	if res.Err != nil {
		h.Log.Warn("profile requests refresh failed", zap.Error(res.Err), zap.Bool("stale", res.Stale))
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Profile Requests", "/dashboard"),
		Path:   "/profile-requests",
		Page:   listing.NewPage(res, Dims, paging.ParseStart(r)),
	}
	for _, rec := range data.Page.Rows {
		status := filterset.Str(rec, "status")
		data.Items = append(data.Items, listItem{
			ID:      filterset.ID(rec),
			Student: filterset.Str(rec, "userName"),
			Changes: changesOf(rec),
			Status:  status,
			Pending: status == models.StatusPending,
		})
	}
	return data, true
}

// ServeList handles GET /profile-requests.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	if listing.IsHTMX(r) && r.Header.Get("HX-Target") == "list-wrap" {
		templates.RenderSnippet(w, "profilerequests_table", data)
		return
	}
	templates.Render(w, r, "profilerequests_list", data)
}
