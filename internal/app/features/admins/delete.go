// internal/app/features/admins/delete.go
package admins

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	adminstore "github.com/trueportme/adminconsole/internal/app/store/admins"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes an institute-admin account.
//
// Route: POST /admins/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "delete admin")
	defer cancel()

	err := h.Store.Delete(ctx, id)
	switch {
	case errors.Is(err, adminstore.ErrNotFound):
		h.Log.Info("admin delete: not found (idempotent)", zap.String("admin_id", id))
	case err != nil:
		h.Audit.ActionFailed(ctx, r, audit.EventAdminDeleted, "admin", id, err)
		h.ErrLog.LogAPIError(w, r, "delete admin failed", err, "/admins")
		return
	default:
		h.Audit.Action(ctx, r, audit.EventAdminDeleted, "admin", id, nil)
	}
	listing.ViewFor(h.Views, r).Forget("admins")

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.AdminsBackURL), http.StatusSeeOther)
}
