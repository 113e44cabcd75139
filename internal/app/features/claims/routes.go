// internal/app/features/claims/routes.go
package claims

import (
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// Routes mounts the claim review routes (typically at "/claims").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleSuperAdmin))

		pr.Get("/", h.ServeList)
		pr.Post("/{id}/approve", h.HandleApprove)
		pr.Post("/{id}/reject", h.HandleReject)
	})

	return r
}
