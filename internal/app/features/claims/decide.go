// internal/app/features/claims/decide.go
package claims

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	claimstore "github.com/trueportme/adminconsole/internal/app/store/claims"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleApprove approves a pending claim.
//
// Route: POST /claims/{id}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, audit.EventClaimApproved, "Claim approved.", func(ctx context.Context, id string) error {
		return h.Store.Approve(ctx, id)
	})
}

// HandleReject rejects a pending claim with an optional reason.
//
// Route: POST /claims/{id}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/claims")
		return
	}
	reason := formutil.Trimmed(r, "reason")
	h.decide(w, r, audit.EventClaimRejected, "Claim rejected.", func(ctx context.Context, id string) error {
		return h.Store.Reject(ctx, id, reason)
	})
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, event, done string, call func(context.Context, string) error) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, event)
	defer cancel()

	err := call(ctx, id)
	switch {
	case errors.Is(err, claimstore.ErrConflict):
		h.Log.Info("claim already decided", zap.String("claim_id", id))
		h.flash(w, r, "That claim was already decided.")
	case err != nil:
		h.Audit.ActionFailed(ctx, r, event, "claim", id, err)
		h.ErrLog.LogAPIError(w, r, "claim decision failed", err, "/claims")
		return
	default:
		h.Audit.Action(ctx, r, event, "claim", id, nil)
		h.flash(w, r, done)
	}
	listing.ViewFor(h.Views, r).Forget("claims")

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.ClaimsBackURL), http.StatusSeeOther)
}
