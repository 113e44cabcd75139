// internal/app/features/events/delete.go
package events

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	eventstore "github.com/trueportme/adminconsole/internal/app/store/events"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete deletes an event and redirects back to the list.
//
// Route: POST /events/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "delete event")
	defer cancel()

	err := h.Store.Delete(ctx, id)
	switch {
	case errors.Is(err, eventstore.ErrNotFound):
		h.Log.Info("event delete: not found (idempotent)", zap.String("event_id", id))
	case err != nil:
		h.Audit.ActionFailed(ctx, r, audit.EventEventDeleted, "event", id, err)
		h.ErrLog.LogAPIError(w, r, "delete event failed", err, "/events")
		return
	default:
		h.Audit.Action(ctx, r, audit.EventEventDeleted, "event", id, nil)
	}
	listing.ViewFor(h.Views, r).Forget("events")

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.EventsBackURL), http.StatusSeeOther)
}
