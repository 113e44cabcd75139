// internal/app/features/students/handler.go
package students

import (
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	studentstore "github.com/trueportme/adminconsole/internal/app/store/students"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Handler serves the institute-admin's student pages.
type Handler struct {
	Store  *studentstore.Store
	Views  *viewstate.Registry
	Audit  *auditlog.Logger
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a Students handler.
func NewHandler(store *studentstore.Store, views *viewstate.Registry, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Views: views, Audit: audit, ErrLog: errLog, Log: logger}
}
