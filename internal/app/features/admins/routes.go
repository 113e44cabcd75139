// internal/app/features/admins/routes.go
package admins

import (
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// Routes mounts the institute-admin routes (typically at "/admins").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleSuperAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
