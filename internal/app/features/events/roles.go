// internal/app/features/events/roles.go
package events

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	eventstore "github.com/trueportme/adminconsole/internal/app/store/events"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"go.uber.org/zap"
)

type roleItem struct {
	ID       string
	UserID   string
	UserName string
	Role     string
}

type rolesData struct {
	viewdata.BaseVM

	EventID    string
	EventTitle string
	Items      []roleItem
	Verifiers  []namecache.Entry
	Roles      []string
	Notice     string
}

func rolesPath(eventID string) string { return "/events/" + eventID + "/roles" }

// assignments flattens role records and resolves each verifier's display
// name: embedded or inline names first, then one batched lookup for the
// rest. A failed lookup leaves the raw id on screen.
func (h *Handler) assignments(ctx context.Context, view *viewstate.View, recs []filterset.Record) []roleItem {
	names := view.Names()
	entries := make([]namecache.Entry, len(recs))
	ids := make([]string, 0, len(recs))
	for i, rec := range recs {
		entries[i] = namecache.EntryFrom(rec["userId"], filterset.Str(rec, "userName"))
		names.RecordNames(entries[i])
		ids = append(ids, entries[i].ID)
	}

	if h.Verifiers != nil {
		if err := view.NameLoader(h.Verifiers.Names).Warm(ctx, ids); err != nil {
			h.Log.Warn("verifier name lookup failed", zap.Error(err))
		}
	}

	items := make([]roleItem, 0, len(recs))
	for i, rec := range recs {
		e := entries[i]
		if e.ID == "" {
			continue
		}
		items = append(items, roleItem{
			ID:       filterset.ID(rec),
			UserID:   e.ID,
			UserName: names.ResolveName(e.ID, e.Name),
			Role:     filterset.Str(rec, "role"),
		})
	}
	return items
}

// verifierChoices lists verifiers for the assign form from the directory,
// falling back to the names this view already knows.
func (h *Handler) verifierChoices(r *http.Request, view *viewstate.View) []namecache.Entry {
	names := view.Names()
	if h.Verifiers != nil {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "verifier directory")
		defer cancel()
		dir, err := h.Verifiers.Directory(ctx)
		if err == nil {
			names.RecordNames(dir...)
			sort.SliceStable(dir, func(i, j int) bool { return dir[i].Name < dir[j].Name })
			return dir
		}
		h.Log.Warn("verifier directory unavailable", zap.Error(err))
	}
	all := names.Entries()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// ServeRoles lists an event's verifier role assignments.
//
// Route: GET /events/{id}/roles
func (h *Handler) ServeRoles(w http.ResponseWriter, r *http.Request) {
	data, ok := h.loadRoles(w, r)
	if !ok {
		return
	}
	h.renderRoles(w, r, data, http.StatusOK)
}

func (h *Handler) renderRoles(w http.ResponseWriter, r *http.Request, data rolesData, status int) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "event_roles", data)
}

// loadRoles fetches the event and its assignments. ok is false when the
// response has already been written (an error page, or a superseded HTMX
// refresh).
func (h *Handler) loadRoles(w http.ResponseWriter, r *http.Request) (rolesData, bool) {
	id := chi.URLParam(r, "id")
	view := listing.ViewFor(h.Views, r)
	ticket := view.Guard().Begin("event-roles:"+id, "")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "event roles")
	defer cancel()

	ev, err := h.Store.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get event failed", err, "/events")
		return rolesData{}, false
	}

	data := rolesData{
		BaseVM:     viewdata.NewBaseVM(r, "Roles: "+ev.Title, "/events/"+id),
		EventID:    id,
		EventTitle: ev.Title,
		Roles:      models.EventRoles,
	}

	recs, err := h.Store.Roles(ctx, id)
	if err != nil {
		h.Log.Warn("event roles fetch failed", zap.String("event_id", id), zap.Error(err))
		data.Notice = "Could not load the current role assignments. Please try again."
	} else {
		data.Items = h.assignments(ctx, view, recs)
	}

	if !view.Guard().Current(ticket) && listing.IsHTMX(r) {
		listing.Discard(w)
		return rolesData{}, false
	}
	data.Verifiers = h.verifierChoices(r, view)
	return data, true
}

// HandleAssignRole gives a verifier a role on the event.
//
// Route: POST /events/{id}/roles
func (h *Handler) HandleAssignRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", rolesPath(id))
		return
	}
	a := models.RoleAssignment{
		UserID: formutil.Trimmed(r, "userId"),
		Role:   formutil.Trimmed(r, "role"),
	}
	if a.UserID == "" || !models.IsEventRole(a.Role) {
		h.rolesError(w, r, "Choose a verifier and a role.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "assign event role")
	defer cancel()

	details := map[string]string{"user_id": a.UserID, "role": a.Role}
	if err := h.Store.AssignRole(ctx, id, a); err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventRoleAssigned, "event", id, err)
		switch {
		case errors.Is(err, eventstore.ErrConflict):
			h.rolesError(w, r, "That verifier already holds a role on this event.")
		case errors.Is(err, eventstore.ErrInvalid):
			h.rolesError(w, r, "The role could not be assigned.")
		default:
			h.ErrLog.LogAPIError(w, r, "assign event role failed", err, rolesPath(id))
		}
		return
	}
	h.Audit.Action(ctx, r, audit.EventRoleAssigned, "event", id, details)
	h.flash(w, r, "Role assigned.")

	http.Redirect(w, r, rolesPath(id), http.StatusSeeOther)
}

// HandleUnassignRole removes one role assignment.
//
// Route: POST /events/{id}/roles/{assignmentID}/unassign
func (h *Handler) HandleUnassignRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	aid := chi.URLParam(r, "assignmentID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "unassign event role")
	defer cancel()

	err := h.Store.UnassignRole(ctx, id, aid)
	switch {
	case errors.Is(err, eventstore.ErrNotFound):
		h.Log.Info("role unassign: not found (idempotent)", zap.String("event_id", id), zap.String("assignment_id", aid))
	case err != nil:
		h.Audit.ActionFailed(ctx, r, audit.EventRoleUnassigned, "event", id, err)
		h.ErrLog.LogAPIError(w, r, "unassign event role failed", err, rolesPath(id))
		return
	default:
		h.Audit.Action(ctx, r, audit.EventRoleUnassigned, "event", id, map[string]string{"assignment_id": aid})
		h.flash(w, r, "Role removed.")
	}

	http.Redirect(w, r, rolesPath(id), http.StatusSeeOther)
}

// rolesError re-renders the roles page with msg and a 422.
func (h *Handler) rolesError(w http.ResponseWriter, r *http.Request, msg string) {
	data, ok := h.loadRoles(w, r)
	if !ok {
		return
	}
	data.Notice = msg
	h.renderRoles(w, r, data, http.StatusUnprocessableEntity)
}
