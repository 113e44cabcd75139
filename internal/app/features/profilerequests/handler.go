// internal/app/features/profilerequests/handler.go
package profilerequests

import (
	"net/http"

	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	requeststore "github.com/trueportme/adminconsole/internal/app/store/profilerequests"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Handler serves the profile-update request review pages.
type Handler struct {
	Store    *requeststore.Store
	Sessions *auth.SessionManager
	Views    *viewstate.Registry
	Audit    *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a profile-requests handler.
func NewHandler(store *requeststore.Store, sessions *auth.SessionManager, views *viewstate.Registry, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
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
