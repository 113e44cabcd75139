// internal/app/features/events/detail.go
package events

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/system/htmlsanitize"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

type detailData struct {
	viewdata.BaseVM

	Event       models.Event
	Description template.HTML
}

// ServeDetail shows one event.
//
// Route: GET /events/{id}
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "get event")
	defer cancel()

	ev, err := h.Store.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get event failed", err, "/events")
		return
	}
	templates.Render(w, r, "event_detail", detailData{
		BaseVM:      viewdata.NewBaseVM(r, ev.Title, "/events"),
		Event:       ev,
		Description: htmlsanitize.PrepareForDisplay(ev.Description),
	})
}
