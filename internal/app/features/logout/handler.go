// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/trueportme/adminconsole/internal/app/store/logins"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Logins     *logins.Store
	Views      *viewstate.Registry
	Audit      *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, store *logins.Store, views *viewstate.Registry, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Logins:     store,
		Views:      views,
		Audit:      audit,
	}
}

// ServeLogout handles POST /logout. The API token is revoked on a best
// effort basis; the session is cleared whatever the API says.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Audit.Logout(r.Context(), r)

		if h.Logins != nil {
			ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "revoke token")
			if err := h.Logins.Logout(ctx); err != nil {
				h.Log.Warn("token revoke failed", zap.Error(err), zap.String("user_id", u.ID))
			}
			cancel()
		}
		if h.Views != nil && u.ViewID != "" {
			h.Views.Drop(u.ViewID)
		}
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
