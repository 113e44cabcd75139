// internal/app/features/institutions/delete.go
package institutions

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	institutionstore "github.com/trueportme/adminconsole/internal/app/store/institutions"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete deletes an institution and redirects back to the list,
// keeping its filters.
//
// Route: POST /institutions/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "delete institution")
	defer cancel()

	err := h.Store.Delete(ctx, id)
	switch {
	case errors.Is(err, institutionstore.ErrNotFound):
		h.Log.Info("institution delete: not found (idempotent)", zap.String("institution_id", id))
	case err != nil:
		h.Audit.ActionFailed(ctx, r, audit.EventInstitutionDeleted, "institution", id, err)
		h.ErrLog.LogAPIError(w, r, "delete institution failed", err, "/institutions")
		return
	default:
		h.Audit.Action(ctx, r, audit.EventInstitutionDeleted, "institution", id, nil)
	}
	listing.ViewFor(h.Views, r).Forget("institutions")

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.InstitutionsBackURL), http.StatusSeeOther)
}
