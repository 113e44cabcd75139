// internal/app/features/admins/handler.go
package admins

import (
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	adminstore "github.com/trueportme/adminconsole/internal/app/store/admins"
	institutionstore "github.com/trueportme/adminconsole/internal/app/store/institutions"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Handler serves the super-admin's institute-admin pages.
type Handler struct {
	Store        *adminstore.Store
	Institutions *institutionstore.Store
	Views        *viewstate.Registry
	Audit        *auditlog.Logger
	ErrLog       *uierrors.ErrorLogger
	Log          *zap.Logger
}

// NewHandler constructs an Admins handler.
func NewHandler(store *adminstore.Store, institutions *institutionstore.Store, views *viewstate.Registry, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:        store,
		Institutions: institutions,
		Views:        views,
		Audit:        audit,
		ErrLog:       errLog,
		Log:          logger,
	}
}
