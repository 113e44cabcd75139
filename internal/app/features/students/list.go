// internal/app/features/students/list.go
package students

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

// Dims are the filter dimensions of the student list.
var Dims = []filterset.Dimension{
	{Name: "status", Label: "Status", Path: "status"},
	{Name: "class", Label: "Class", Path: "class"},
	{Name: "kycVerified", Label: "KYC verified", Path: "kycVerified", Kind: filterset.KindBool},
}

var exportColumns = []xlsxexport.Column{
	{Header: "ID", Path: "_id", Width: 26},
	{Header: "Name", Path: "name", Width: 30},
	{Header: "Email", Path: "email", Width: 30},
	{Header: "Phone", Path: "phone", Width: 16},
	{Header: "Roll number", Path: "rollNumber", Width: 14},
	{Header: "Class", Path: "class", Width: 10},
	{Header: "Status", Path: "status", Width: 12},
	{Header: "KYC verified", Width: 12, Value: func(rec filterset.Record) any {
		if filterset.Bool(rec, "kycVerified") {
			return "Yes"
		}
		return "No"
	}},
}

func (h *Handler) source() listing.Source {
	return listing.Source{Key: "students", Dims: Dims, Fetch: h.Store.List}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listData, bool) {
	vals := listing.Values(r)
	view := listing.ViewFor(h.Views, r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list students")
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
		h.Log.Warn("students refresh failed", zap.Error(res.Err), zap.Bool("stale", res.Stale))
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Students", "/dashboard"),
		Path:   "/students",
		Page:   listing.NewPage(res, Dims, paging.ParseStart(r)),
	}
	for _, rec := range data.Page.Rows {
		data.Items = append(data.Items, listItem{
			ID:          filterset.ID(rec),
			Name:        filterset.Str(rec, "name"),
			Email:       filterset.Str(rec, "email"),
			RollNumber:  filterset.Str(rec, "rollNumber"),
			Class:       filterset.Str(rec, "class"),
			Status:      filterset.Str(rec, "status"),
			KYCVerified: filterset.Bool(rec, "kycVerified"),
		})
	}
	return data, true
}

// ServeList handles GET /students.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	if listing.IsHTMX(r) && r.Header.Get("HX-Target") == "list-wrap" {
		templates.RenderSnippet(w, "students_table", data)
		return
	}
	templates.Render(w, r, "students_list", data)
}

// ServeExport handles GET /students/export.xlsx.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	vals := listing.Values(r)
	view := listing.ViewFor(h.Views, r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "export students")
	defer cancel()

	res := listing.Load(ctx, view, h.source(), vals)
	if res.Superseded {
		if snap, ok := listing.FromSnapshot(view, h.source(), vals); ok {
			res = snap
		}
	}
	if res.Err != nil && !res.Stale {
		h.ErrLog.LogAPIError(w, r, "export students failed", res.Err, "/students")
		return
	}

	h.Audit.Action(ctx, r, audit.EventExportDownloaded, "student", "", map[string]string{
		"rows":    strconv.Itoa(len(res.Records)),
		"filters": res.Query(Dims).Encode(),
	})
	if err := xlsxexport.Serve(w, "students.xlsx", "Students", exportColumns, res.Records); err != nil {
		h.Log.Error("write students export failed", zap.Error(err))
	}
}
