// internal/app/features/login/handler.go
package login

import (
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	"github.com/trueportme/adminconsole/internal/app/store/logins"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

type Handler struct {
	Logins   *logins.Store
	Sessions *auth.SessionManager
	Limiter  *ratelimit.LoginLimiter
	Audit    *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(store *logins.Store, sessions *auth.SessionManager, limiter *ratelimit.LoginLimiter, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Logins:   store,
		Sessions: sessions,
		Limiter:  limiter,
		Audit:    audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
