// internal/app/features/settings/settings.go
package settings

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/tabnav"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"go.uber.org/zap"
)

type settingsData struct {
	viewdata.BaseVM

	Profile models.Profile

	// DashboardURL returns to the dashboard section last shown in this
	// view; DashboardSettingsURL opens these settings as a dashboard tab.
	DashboardURL         string
	DashboardSettingsURL string
}

// ServeSettings handles GET /settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.Log.Debug("settings served", zap.String("user_id", u.ID))
	templates.Render(w, r, "settings", h.page(r, u))
}

func (h *Handler) page(r *http.Request, u *auth.SessionUser) settingsData {
	view := listing.ViewFor(h.Views, r)
	back := tabnav.JoinURL("/dashboard", view.Section("dashboard"))
	return settingsData{
		BaseVM:               viewdata.NewBaseVM(r, "Settings", back),
		Profile:              u.Profile(),
		DashboardURL:         back,
		DashboardSettingsURL: "/dashboard/goto?target=settings",
	}
}
