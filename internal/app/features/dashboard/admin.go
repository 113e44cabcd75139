// internal/app/features/dashboard/admin.go
package dashboard

import (
	"github.com/trueportme/adminconsole/internal/app/store/stats"
	"github.com/trueportme/adminconsole/internal/app/system/tabnav"
)

// instituteAdminDashboard is scoped to the admin's own institution.
var instituteAdminDashboard = roleDashboard{
	Title:    "Institute Dashboard",
	Sections: tabnav.NewSections(sectionOverview, "students", "events", "profile-requests", sectionSettings),
	Labels: map[tabnav.Section]string{
		sectionOverview:    "Overview",
		"students":         "Students",
		"events":           "Events",
		"profile-requests": "Profile requests",
		sectionSettings:    "Settings",
	},
	Counters: stats.InstituteAdminCounters,
}
