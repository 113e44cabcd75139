// internal/app/features/events/list.go
package events

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/paging"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Dims are the filter dimensions of the event list.
var Dims = []filterset.Dimension{
	{Name: "status", Label: "Status", Path: "status"},
	{Name: "category", Label: "Category", Path: "category"},
}

type listItem struct {
	ID        string
	Title     string
	Category  string
	Status    string
	Venue     string
	StartDate time.Time
	EndDate   time.Time
}

type listData struct {
	viewdata.BaseVM

	Path  string
	Page  listing.Page
	Items []listItem
}

func (h *Handler) source() listing.Source {
	return listing.Source{Key: "events", Dims: Dims, Fetch: h.Store.List}
}

// apiTime parses the API's RFC 3339 timestamps; anything else is zero.
func apiTime(rec filterset.Record, path string) time.Time {
	t, err := time.Parse(time.RFC3339, filterset.Str(rec, path))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listData, bool) {
	vals := listing.Values(r)
	view := listing.ViewFor(h.Views, r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list events")
	defer cancel()

	res := listing.Load(ctx, view, h.source(), vals)
	if res.Superseded {
		if listing.IsHTMX(r) {
			listing.Discard(w)
			return listData{}, false
		}
		if snap, ok := listing.FromSnapshot(view, h.source(), vals); ok {
			res = snap
		}
	}
	if res.Err != nil {
		h.Log.Warn("events refresh failed", zap.Error(res.Err), zap.Bool("stale", res.Stale))
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Events", "/dashboard"),
		Path:   "/events",
		Page:   listing.NewPage(res, Dims, paging.ParseStart(r)),
	}
	for _, rec := range data.Page.Rows {
		data.Items = append(data.Items, listItem{
			ID:        filterset.ID(rec),
			Title:     filterset.Str(rec, "title"),
			Category:  filterset.Str(rec, "category"),
			Status:    filterset.Str(rec, "status"),
			Venue:     filterset.Str(rec, "venue"),
			StartDate: apiTime(rec, "startDate"),
			EndDate:   apiTime(rec, "endDate"),
		})
	}
	return data, true
}

// ServeList handles GET /events.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	if listing.IsHTMX(r) && r.Header.Get("HX-Target") == "list-wrap" {
		templates.RenderSnippet(w, "events_table", data)
		return
	}
	templates.Render(w, r, "events_list", data)
}
