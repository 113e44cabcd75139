// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// Routes wires the dashboard under the mount point chosen by the top-level
// router ("/dashboard").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleSuperAdmin, models.RoleInstituteAdmin))

		pr.Get("/", h.ServeDashboard)
		pr.Get("/section", func(w http.ResponseWriter, r *http.Request) {
			h.ServeSection(w, r, "")
		})
		pr.Get("/section/{name}", func(w http.ResponseWriter, r *http.Request) {
			h.ServeSection(w, r, chi.URLParam(r, "name"))
		})
		pr.Get("/goto", h.ServeGoto)
	})

	return r
}
