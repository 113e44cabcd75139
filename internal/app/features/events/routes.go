// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// Routes mounts the event routes (typically at "/events").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleInstituteAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		pr.Route("/{id}", func(er chi.Router) {
			er.Get("/", h.ServeDetail)
			er.Get("/edit", h.ServeEdit)
			er.Post("/edit", h.HandleEdit)
			er.Post("/delete", h.HandleDelete)

			er.Get("/roles", h.ServeRoles)
			er.Post("/roles", h.HandleAssignRole)
			er.Post("/roles/{assignmentID}/unassign", h.HandleUnassignRole)

			er.Get("/awards", h.ServeAwards)
			er.Post("/awards", h.HandleAwards)
		})
	})

	return r
}
