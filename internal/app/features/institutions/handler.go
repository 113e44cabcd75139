// internal/app/features/institutions/handler.go
package institutions

import (
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	institutionstore "github.com/trueportme/adminconsole/internal/app/store/institutions"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Institutions.
type Handler struct {
	Store  *institutionstore.Store
	Views  *viewstate.Registry
	Audit  *auditlog.Logger
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a new Institutions handler.
func NewHandler(store *institutionstore.Store, views *viewstate.Registry, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Views:  views,
		Audit:  audit,
		ErrLog: errLog,
		Log:    logger,
	}
}
