// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/trueportme/adminconsole/internal/app/store/audit"
	"github.com/trueportme/adminconsole/internal/app/system/paging"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
)

// listItem is one audit event row.
type listItem struct {
	ID            string
	Timestamp     time.Time
	Category      string
	EventType     string
	ActorID       string
	ActorRole     string
	Target        string
	InstitutionID string
	IP            string
	Success       bool
	FailureReason string
	Details       map[string]string
}

// criteria are the filters read from the query string.
type criteria struct {
	Category  string
	EventType string
	StartDate string
	EndDate   string
	Start     int
}

// listData is the view model for the audit log page.
type listData struct {
	viewdata.BaseVM
	criteria

	Items []listItem

	Categories []categoryOption
	EventTypes []string

	// Scoped is set when the list is limited to the viewer's institution.
	Scoped   bool
	Disabled bool

	Range paging.Range
}

type categoryOption struct {
	Value string
	Label string
}

func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Administration"},
	}
}

var (
	authEvents = []string{
		audit.EventLoginSuccess,
		audit.EventLoginFailed,
		audit.EventLoginRateLimited,
		audit.EventLogout,
	}
	adminEvents = []string{
		audit.EventInstitutionCreated,
		audit.EventInstitutionUpdated,
		audit.EventInstitutionDeleted,
		audit.EventAdminCreated,
		audit.EventAdminDeleted,
		audit.EventClaimApproved,
		audit.EventClaimRejected,
		audit.EventStudentCreated,
		audit.EventStudentUpdated,
		audit.EventStudentDeleted,
		audit.EventProfileRequestApproved,
		audit.EventProfileRequestRejected,
		audit.EventEventCreated,
		audit.EventEventUpdated,
		audit.EventEventDeleted,
		audit.EventRoleAssigned,
		audit.EventRoleUnassigned,
		audit.EventAwardsAssigned,
		audit.EventExportDownloaded,
	}
)

// eventTypesForCategory returns the event types of category, or all of
// them when category is empty.
func eventTypesForCategory(category string) []string {
	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	case "":
		all := make([]string, 0, len(authEvents)+len(adminEvents))
		all = append(all, authEvents...)
		return append(all, adminEvents...)
	default:
		return nil
	}
}
