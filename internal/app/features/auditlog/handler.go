// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"

	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	"go.uber.org/zap"
)

// EventQuerier reads the audit trail.
type EventQuerier interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

type Handler struct {
	// Events is nil when the audit trail is not stored in MongoDB.
	Events EventQuerier
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs an Audit Log feature handler. Pass an untyped nil
// when MongoDB is disabled.
func NewHandler(events EventQuerier, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Events: events,
		Log:    logger,
		ErrLog: errLog,
	}
}
