// internal/domain/models/roles.go
package models

// Console roles.
const (
	RoleSuperAdmin     = "superadmin"
	RoleInstituteAdmin = "instituteadmin"
)

// Event roles a verifier can hold.
const (
	EventRoleCoordinator = "coordinator"
	EventRoleInCharge    = "incharge"
	EventRoleJudge       = "judge"
)

// EventRoles lists the assignable event roles in display order.
var EventRoles = []string{EventRoleCoordinator, EventRoleInCharge, EventRoleJudge}

// IsEventRole reports whether s names an assignable event role.
func IsEventRole(s string) bool {
	for _, r := range EventRoles {
		if r == s {
			return true
		}
	}
	return false
}

// Request statuses shared by claim and profile-update requests.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)
