// internal/app/features/claims/handler.go
package claims

import (
	"net/http"

	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	claimstore "github.com/trueportme/adminconsole/internal/app/store/claims"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Handler serves the institution claim review pages.
type Handler struct {
	Store    *claimstore.Store
	Sessions *auth.SessionManager
	Views    *viewstate.Registry
	Audit    *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a Claims handler.
func NewHandler(store *claimstore.Store, sessions *auth.SessionManager, views *viewstate.Registry, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Sessions: sessions,
		Views:    views,
		Audit:    audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	if h.Sessions != nil {
		h.Sessions.AddFlash(w, r, msg)
	}
}
