// internal/app/features/claims/list.go
package claims

import (
	"context"
	"net/http"
	"time"

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

// Dims are the filter dimensions of the claim list.
var Dims = []filterset.Dimension{
	{Name: "status", Label: "Status", Path: "status"},
	{Name: "institution", Label: "Institution", Path: "institutionName"},
}

type listItem struct {
	ID          string
	Institution string
	Requester   string
	Message     string
	Status      string
	CreatedAt   time.Time
	Pending     bool
}

type listData struct {
	viewdata.BaseVM

	Path  string
	Page  listing.Page
	Items []listItem
}

func (h *Handler) source(view *viewstate.View) listing.Source {
	return listing.Source{Key: "claims", Dims: Dims, Fetch: func(ctx context.Context) ([]filterset.Record, error) {
		recs, err := h.Store.List(ctx)
		if err != nil {
			return nil, err
		}
		names := view.Names()
		listing.ResolveRefs(names, recs, "institutionId", "institutionName")
		listing.ResolveRefs(names, recs, "userId", "userName")
		return recs, nil
	}}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listData, bool) {
	vals := listing.Values(r)
	view := listing.ViewFor(h.Views, r)
	src := h.source(view)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list claims")
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
		h.Log.Warn("claims refresh failed", zap.Error(res.Err), zap.Bool("stale", res.Stale))
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Claim Requests", "/dashboard"),
		Path:   "/claims",
		Page:   listing.NewPage(res, Dims, paging.ParseStart(r)),
	}
	for _, rec := range data.Page.Rows {
		status := filterset.Str(rec, "status")
		created, _ := time.Parse(time.RFC3339, filterset.Str(rec, "createdAt"))
		data.Items = append(data.Items, listItem{
			ID:          filterset.ID(rec),
			Institution: filterset.Str(rec, "institutionName"),
			Requester:   filterset.Str(rec, "userName"),
			Message:     filterset.Str(rec, "message"),
			Status:      status,
			CreatedAt:   created,
			Pending:     status == models.StatusPending,
		})
	}
	return data, true
}

// ServeList handles GET /claims.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	if listing.IsHTMX(r) && r.Header.Get("HX-Target") == "list-wrap" {
		templates.RenderSnippet(w, "claims_table", data)
		return
	}
	templates.Render(w, r, "claims_list", data)
}
