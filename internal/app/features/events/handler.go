// internal/app/features/events/handler.go
package events

import (
	"net/http"

	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	eventstore "github.com/trueportme/adminconsole/internal/app/store/events"
	studentstore "github.com/trueportme/adminconsole/internal/app/store/students"
	verifierstore "github.com/trueportme/adminconsole/internal/app/store/verifiers"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Handler serves event management for an institute-admin: the event list
// and forms, verifier role assignments, and award rankings.
type Handler struct {
	Store     *eventstore.Store
	Verifiers *verifierstore.Store
	Students  *studentstore.Store
	Sessions  *auth.SessionManager
	Views     *viewstate.Registry
	Audit     *auditlog.Logger
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs an Events handler.
func NewHandler(
	store *eventstore.Store,
	verifiers *verifierstore.Store,
	students *studentstore.Store,
	sessions *auth.SessionManager,
	views *viewstate.Registry,
	audit *auditlog.Logger,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Store:     store,
		Verifiers: verifiers,
		Students:  students,
		Sessions:  sessions,
		Views:     views,
		Audit:     audit,
		ErrLog:    errLog,
		Log:       logger,
	}
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	if h.Sessions != nil {
		h.Sessions.AddFlash(w, r, msg)
	}
}
