// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), display name, id, and a found flag.
// If no user is present in context it returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.ID == "" {
		return "visitor", "", "", false
	}
	return text.Fold(user.Role), user.Name, user.ID, true
}

// IsSuperAdmin reports whether the current request's user is a superadmin.
func IsSuperAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleSuperAdmin
}

// IsInstituteAdmin reports whether the current request's user administers
// a single institution.
func IsInstituteAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleInstituteAdmin
}

// UserInstitutionID returns the institution the current user administers,
// or "" for superadmins and visitors.
func UserInstitutionID(r *http.Request) string {
	user, ok := auth.CurrentUser(r)
	if !ok || !IsInstituteAdmin(r) {
		return ""
	}
	return user.InstitutionID
}
