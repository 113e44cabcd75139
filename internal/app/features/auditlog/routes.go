// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// Routes mounts the audit log under /audit.
//
// Super-admins see every event; institute-admins see only events of their
// own institution.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleSuperAdmin, models.RoleInstituteAdmin))

		pr.Get("/", h.ServeList)
	})

	return r
}
