// internal/app/features/settings/handler.go
package settings

import (
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Handler serves the account settings page.
type Handler struct {
	Views *viewstate.Registry
	Log   *zap.Logger
}

// NewHandler constructs a Handler bound to the view registry and logger.
func NewHandler(views *viewstate.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Views: views,
		Log:   logger,
	}
}
