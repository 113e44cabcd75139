// internal/app/features/dashboard/handler.go
package dashboard

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	"github.com/trueportme/adminconsole/internal/app/store/stats"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/tabnav"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"go.uber.org/zap"
)

// pageKey names the dashboard in the view's remembered sections.
const pageKey = "dashboard"

// sectionKey is the guard key shared by every section fetch: the section
// container shows one section at a time, so any newer section request
// supersedes an older one.
const sectionKey = "dashboard-section"

type Handler struct {
	Stats  *stats.Store
	Views  *viewstate.Registry
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(st *stats.Store, views *viewstate.Registry, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Stats:  st,
		Views:  views,
		ErrLog: errLog,
		Log:    logger,
	}
}

func dashboardFor(role string) (roleDashboard, bool) {
	switch text.Fold(role) {
	case models.RoleSuperAdmin:
		return superAdminDashboard, true
	case models.RoleInstituteAdmin:
		return instituteAdminDashboard, true
	}
	return roleDashboard{}, false
}

// ServeDashboard handles GET /dashboard. The page loads its section from the
// URL fragment once htmx is up; ?section= selects one for plain requests.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.role(w, r)
	if !ok {
		return
	}
	loc := newHTMXLocation(w, r, hostPath)
	sel := tabnav.NewSelector(d.Sections, loc)
	defer sel.Close()

	data, ok := h.section(w, r, d, sel.Active())
	if !ok {
		return
	}
	templates.Render(w, r, "dashboard", data)
}

// ServeSection handles GET /dashboard/section and /dashboard/section/{name}.
// Without a name the section follows the browser's fragment; with one the
// tab is selected and the new fragment pushed onto the history.
func (h *Handler) ServeSection(w http.ResponseWriter, r *http.Request, name string) {
	d, ok := h.role(w, r)
	if !ok {
		return
	}
	loc := newHTMXLocation(w, r, hostPath)
	sel := tabnav.NewSelector(d.Sections, loc, tabnav.OnChange(func(s tabnav.Section) {
		h.Log.Debug("dashboard section changed", zap.String("section", string(s)))
	}))
	defer sel.Close()

	if name != "" {
		sel.Select(name)
	}
	h.renderSection(w, r, d, sel.Active())
}

// ServeGoto handles GET /dashboard/goto?target=. From the dashboard only
// the fragment changes; from any other page the browser is sent to
// /dashboard#target. The default section, an empty target and an unknown
// one all clear the fragment and show the default section.
func (h *Handler) ServeGoto(w http.ResponseWriter, r *http.Request) {
	d, ok := h.role(w, r)
	if !ok {
		return
	}
	loc := newHTMXLocation(w, r, r.URL.Path)
	sel := tabnav.NewSelector(d.Sections, loc)
	defer sel.Close()

	targets := tabnav.NewSubTargets(hostPath, loc)
	target := strings.TrimSpace(r.URL.Query().Get("target"))
	switch {
	case d.Sections.Contains(target) && tabnav.Section(target) != d.Sections.Default():
		if targets.Activate(target) {
			return
		}
	case loc.Path() == hostPath:
		targets.Clear()
	default:
		loc.Navigate(hostPath)
		return
	}
	h.renderSection(w, r, d, sel.Active())
}

func (h *Handler) renderSection(w http.ResponseWriter, r *http.Request, d roleDashboard, sec tabnav.Section) {
	data, ok := h.section(w, r, d, sec)
	if !ok {
		return
	}
	templates.RenderSnippet(w, "dashboard_section", data)
}

func (h *Handler) role(w http.ResponseWriter, r *http.Request) (roleDashboard, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return roleDashboard{}, false
	}
	d, ok := dashboardFor(u.Role)
	if !ok {
		uierrors.RenderForbidden(w, r, "There is no dashboard for your role.", "/")
		return roleDashboard{}, false
	}
	return d, true
}

// section builds the view model of sec. It returns false when the response
// has already been written.
func (h *Handler) section(w http.ResponseWriter, r *http.Request, d roleDashboard, sec tabnav.Section) (sectionData, bool) {
	view := listing.ViewFor(h.Views, r)
	view.SetSection(pageKey, string(sec))

	data := sectionData{
		BaseVM: viewdata.NewBaseVM(r, d.Title, "/"),
		Active: string(sec),
		Tabs:   d.tabs(sec),
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.Profile = u.Profile()
	}

	var counters []stats.Counter
	switch {
	case sec == sectionOverview:
		counters = d.Counters
	case sec == sectionSettings:
		return data, true
	default:
		c, ok := d.counter(sec)
		if !ok {
			return data, true
		}
		counters = []stats.Counter{c}
		data.Link = c.Link
	}

	cards, stale, err := h.figures(r, view, string(sec), counters)
	if err != nil {
		if errors.Is(err, errSuperseded) {
			if listing.IsHTMX(r) {
				listing.Discard(w)
				return sectionData{}, false
			}
		} else {
			h.Log.Warn("dashboard figures failed", zap.String("section", string(sec)), zap.Error(err), zap.Bool("stale", stale))
			data.Notice = "Couldn't refresh the figures. Please try again."
			if stale {
				data.Notice = "Couldn't refresh the figures; showing the last ones loaded."
			}
		}
	}
	data.Cards = cards
	data.Stale = stale
	return data, true
}

// figures counts counters under a guard ticket tagged with the section. A
// failed count falls back to the last figures stored for the same section.
func (h *Handler) figures(r *http.Request, view *viewstate.View, tag string, counters []stats.Counter) ([]card, bool, error) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "dashboard figures")
	defer cancel()

	ticket := view.Guard().Begin(sectionKey, tag)
	got, err := h.Stats.Overview(ctx, counters)
	if err != nil {
		if !view.Guard().Current(ticket) {
			return nil, false, errSuperseded
		}
		if snap, ok := view.Snapshot(sectionKey); ok && snap.Tag == tag {
			return cardsFrom(snap.Records), true, err
		}
		return nil, false, err
	}

	recs := make([]filterset.Record, 0, len(got))
	for i, s := range got {
		recs = append(recs, filterset.Record{"key": s.Key, "label": s.Label, "value": s.Value, "path": counters[i].Link})
	}
	if !view.Store(ticket, viewstate.Snapshot{Records: recs, Total: len(recs), FetchedAt: time.Now()}) {
		return nil, false, errSuperseded
	}
	return cardsFrom(recs), false, nil
}

func cardsFrom(recs []filterset.Record) []card {
	out := make([]card, 0, len(recs))
	for _, rec := range recs {
		out = append(out, card{
			Stat: models.Stat{
				Key:   filterset.Str(rec, "key"),
				Label: filterset.Str(rec, "label"),
				Value: filterset.Int(rec, "value"),
			},
			Path: filterset.Str(rec, "path"),
		})
	}
	return out
}
