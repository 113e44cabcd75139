// internal/app/features/institutions/list.go
package institutions

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/paging"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/app/system/xlsxexport"
	"go.uber.org/zap"
)

// Dims are the filter dimensions of the institutions list.
var Dims = []filterset.Dimension{
	{Name: "state", Label: "State", Path: "address.state"},
	{Name: "district", Label: "District", Path: "address.district"},
	{Name: "type", Label: "Type", Path: "type"},
	{Name: "status", Label: "Status", Path: "status"},
	{Name: "claimed", Label: "Claimed", Path: "claimed", Kind: filterset.KindBool},
	{Name: "kycVerified", Label: "KYC verified", Path: "kycVerified", Kind: filterset.KindBool},
}

var exportColumns = []xlsxexport.Column{
	{Header: "ID", Path: "_id", Width: 26},
	{Header: "Name", Path: "name", Width: 40},
	{Header: "Type", Path: "type", Width: 14},
	{Header: "Status", Path: "status", Width: 12},
	{Header: "Email", Path: "email", Width: 30},
	{Header: "Phone", Path: "phone", Width: 16},
	{Header: "City", Path: "address.city", Width: 18},
	{Header: "District", Path: "address.district", Width: 18},
	{Header: "State", Path: "address.state", Width: 18},
	{Header: "Claimed", Path: "claimed", Width: 10},
	{Header: "KYC verified", Path: "kycVerified", Width: 12},
}

func (h *Handler) source() listing.Source {
	return listing.Source{Key: "institutions", Dims: Dims, Fetch: h.Store.List}
}

// load fetches the institutions and builds the list view model. ok is false
// when the response was superseded and has already been answered.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listData, bool) {
	vals := listing.Values(r)
	view := listing.ViewFor(h.Views, r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list institutions")
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
		h.Log.Warn("institutions refresh failed", zap.Error(res.Err), zap.Bool("stale", res.Stale))
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Institutions", "/dashboard"),
		Path:   "/institutions",
		Page:   listing.NewPage(res, Dims, paging.ParseStart(r)),
	}
	data.Items = rows(data.Page.Rows)
	return data, true
}

func rows(recs []filterset.Record) []listItem {
	items := make([]listItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, listItem{
			ID:          filterset.ID(rec),
			Name:        filterset.Str(rec, "name"),
			Type:        filterset.Str(rec, "type"),
			Status:      filterset.Str(rec, "status"),
			District:    filterset.Str(rec, "address.district"),
			State:       filterset.Str(rec, "address.state"),
			Claimed:     filterset.Bool(rec, "claimed"),
			KYCVerified: filterset.Bool(rec, "kycVerified"),
		})
	}
	return items
}

// ServeList handles GET /institutions with optional filter parameters.
// HTMX requests targeting the table get only the table back.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	if listing.IsHTMX(r) && r.Header.Get("HX-Target") == "list-wrap" {
		templates.RenderSnippet(w, "institutions_table", data)
		return
	}
	templates.Render(w, r, "institutions_list", data)
}

// ServeExport handles GET /institutions/export.xlsx: the filtered list as
// a workbook.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	vals := listing.Values(r)
	view := listing.ViewFor(h.Views, r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "export institutions")
	defer cancel()

	res := listing.Load(ctx, view, h.source(), vals)
	if res.Superseded {
		if snap, ok := listing.FromSnapshot(view, h.source(), vals); ok {
			res = snap
		}
	}
	if res.Err != nil && !res.Stale {
		h.ErrLog.LogAPIError(w, r, "export institutions failed", res.Err, "/institutions")
		return
	}

	h.Audit.Action(ctx, r, audit.EventExportDownloaded, "institution", "", map[string]string{
		"rows":    strconv.Itoa(len(res.Records)),
		"filters": res.Query(Dims).Encode(),
	})
	if err := xlsxexport.Serve(w, "institutions.xlsx", "Institutions", exportColumns, res.Records); err != nil {
		h.Log.Error("write institutions export failed", zap.Error(err))
	}
}
