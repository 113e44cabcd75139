// internal/app/features/profilerequests/decide.go
package profilerequests

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	requeststore "github.com/trueportme/adminconsole/internal/app/store/profilerequests"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleApprove applies a pending profile update.
//
// Route: POST /profile-requests/{id}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, audit.EventProfileRequestApproved, "Profile update approved.", func(ctx context.Context, id string) error {
		return h.Store.Approve(ctx, id)
	})
}

// HandleReject declines a pending profile update with an optional reason.
//
// Route: POST /profile-requests/{id}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/profile-requests")
		return
	}
	reason := formutil.Trimmed(r, "reason")
	h.decide(w, r, audit.EventProfileRequestRejected, "Profile update rejected.", func(ctx context.Context, id string) error {
		return h.Store.Reject(ctx, id, reason)
	})
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, event, done string, call func(context.Context, string) error) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, event)
	defer cancel()

	err := call(ctx, id)
	switch {
	case errors.Is(err, requeststore.ErrConflict):
		h.Log.Info("profile request already decided", zap.String("request_id", id))
		h.flash(w, r, "That request was already decided.")
	case err != nil:
		h.Audit.ActionFailed(ctx, r, event, "profile_request", id, err)
		h.ErrLog.LogAPIError(w, r, "profile request decision failed", err, "/profile-requests")
		return
	default:
		h.Audit.Action(ctx, r, event, "profile_request", id, nil)
		h.flash(w, r, done)
	}
	listing.ViewFor(h.Views, r).Forget("profile-requests")

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.ProfileRequestsBackURL), http.StatusSeeOther)
}
