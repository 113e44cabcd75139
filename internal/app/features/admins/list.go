// internal/app/features/admins/list.go
package admins

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"github.com/trueportme/adminconsole/internal/app/system/paging"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Dims are the filter dimensions of the admin list. The institution name
// is flattened onto each record when it is fetched.
var Dims = []filterset.Dimension{
	{Name: "institution", Label: "Institution", Path: "institutionName"},
	{Name: "status", Label: "Status", Path: "status"},
}

type listItem struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Status      string
	Institution string
}

type listData struct {
	viewdata.BaseVM

	Path  string
	Page  listing.Page
	Items []listItem
}

type formData struct {
	formutil.Base

	Name          string
	Email         string
	Phone         string
	InstitutionID string

	Institutions []namecache.Entry
}

// source fetches the admins and resolves each one's institution name,
// which the API sends inline, as an embedded object, or not at all. An
// admin whose institution name is unknown has no institutionName and so
// never matches an institution filter.
func (h *Handler) source(view *viewstate.View) listing.Source {
	return listing.Source{Key: "admins", Dims: Dims, Fetch: func(ctx context.Context) ([]filterset.Record, error) {
		recs, err := h.Store.List(ctx)
		if err != nil {
			return nil, err
		}
		names := view.Names()
		listing.ResolveRefs(names, recs, "institutionId", "institutionName")
		return recs, nil
	}}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listData, bool) {
	vals := listing.Values(r)
	view := listing.ViewFor(h.Views, r)
	src := h.source(view)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list admins")
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
		h.Log.Warn("admins refresh failed", zap.Error(res.Err), zap.Bool("stale", res.Stale))
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Institute Admins", "/dashboard"),
		Path:   "/admins",
		Page:   listing.NewPage(res, Dims, paging.ParseStart(r)),
	}
	for _, rec := range data.Page.Rows {
		data.Items = append(data.Items, listItem{
			ID:          filterset.ID(rec),
			Name:        filterset.Str(rec, "name"),
			Email:       filterset.Str(rec, "email"),
			Phone:       filterset.Str(rec, "phone"),
			Status:      filterset.Str(rec, "status"),
			Institution: filterset.Str(rec, "institutionName"),
		})
	}
	return data, true
}

// ServeList handles GET /admins.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	if listing.IsHTMX(r) && r.Header.Get("HX-Target") == "list-wrap" {
		templates.RenderSnippet(w, "admins_table", data)
		return
	}
	templates.Render(w, r, "admins_list", data)
}
