// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"encoding/json"
	"net/http"

	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Handler keeps an open page's view state from being swept while the
// user is idle.
type Handler struct {
	Views *viewstate.Registry
	Log   *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(views *viewstate.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Views: views,
		Log:   logger,
	}
}

type heartbeatResponse struct {
	// Live is false when the view had already expired; the page's
	// remembered filters are gone and a reload starts fresh.
	Live bool `json:"live"`
}

// ServeHeartbeat handles POST /heartbeat.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ViewID == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	live := h.Views.Touch(u.ViewID)
	if !live {
		h.Log.Debug("heartbeat for expired view", zap.String("user_id", u.ID))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(heartbeatResponse{Live: live})
}
