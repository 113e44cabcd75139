// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/authz"
	"github.com/trueportme/adminconsole/internal/app/system/paging"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ServeList handles GET /audit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "audit log list")
	defer cancel()

	data, err := h.list(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "audit query failed", err, "The audit log could not be loaded.", "/dashboard")
		return
	}
	templates.Render(w, r, "audit_list", data)
}

// list builds the page. Institute-admins are always scoped to their own
// institution.
func (h *Handler) list(ctx context.Context, r *http.Request) (listData, error) {
	c := readCriteria(r)
	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Audit Log", "/dashboard"),
		criteria:   c,
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(c.Category),
		Scoped:     !authz.IsSuperAdmin(r),
		Items:      []listItem{},
	}
	if h.Events == nil {
		data.Disabled = true
		data.Range = paging.ComputeRange(c.Start, 0, paging.PageSize)
		return data, nil
	}

	filter := c.filter()
	if data.Scoped {
		filter.InstitutionID = authz.UserInstitutionID(r)
		if filter.InstitutionID == "" {
			// An empty institution would match every event.
			_, _, userID, _ := authz.UserCtx(r)
			h.Log.Warn("audit log requested without an institution", zap.String("user_id", userID))
			data.Range = paging.ComputeRange(c.Start, 0, paging.PageSize)
			return data, nil
		}
	}

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		return listData{}, err
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		return listData{}, err
	}
	h.Log.Debug("audit log listed", zap.Int("shown", len(events)), zap.Int64("total", total))

	for _, e := range events {
		data.Items = append(data.Items, itemFrom(e))
	}
	rg := paging.ComputeRange(c.Start, len(events), paging.PageSize)
	rg.Total = int(total)
	rg.HasPrev = c.Start > 1
	rg.HasNext = int64(c.Start-1+len(events)) < total
	data.Range = rg
	return data, nil
}

func readCriteria(r *http.Request) criteria {
	c := criteria{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "event_type"),
		StartDate: query.Get(r, "start_date"),
		EndDate:   query.Get(r, "end_date"),
		Start:     paging.ParseStart(r),
	}
	if !slices.ContainsFunc(allCategories(), func(o categoryOption) bool { return o.Value == c.Category }) {
		c.Category = ""
	}
	if !slices.Contains(eventTypesForCategory(c.Category), c.EventType) {
		c.EventType = ""
	}
	return c
}

func (c criteria) filter() audit.QueryFilter {
	f := audit.QueryFilter{
		Category:  c.Category,
		EventType: c.EventType,
		Limit:     paging.PageSize,
		Offset:    int64(c.Start - 1),
	}
	if t, err := time.Parse(dateLayout, c.StartDate); err == nil {
		f.StartTime = &t
	}
	if t, err := time.Parse(dateLayout, c.EndDate); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.EndTime = &end
	}
	return f
}

func itemFrom(e audit.Event) listItem {
	item := listItem{
		ID:            e.ID.Hex(),
		Timestamp:     e.Timestamp,
		Category:      e.Category,
		EventType:     e.EventType,
		ActorID:       e.ActorID,
		ActorRole:     e.ActorRole,
		InstitutionID: e.InstitutionID,
		IP:            e.IP,
		Success:       e.Success,
		FailureReason: e.FailureReason,
		Details:       e.Details,
	}
	if e.TargetID != "" {
		item.Target = e.TargetType + " " + e.TargetID
	}
	return item
}
