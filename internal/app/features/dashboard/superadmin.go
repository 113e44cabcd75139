// internal/app/features/dashboard/superadmin.go
package dashboard

import (
	"github.com/trueportme/adminconsole/internal/app/store/stats"
	"github.com/trueportme/adminconsole/internal/app/system/tabnav"
)

// superAdminDashboard is what a super-admin sees: platform-wide counts and
// one section per managed resource.
var superAdminDashboard = roleDashboard{
	Title:    "Super Admin Dashboard",
	Sections: tabnav.NewSections(sectionOverview, "institutions", "admins", "claims", sectionSettings),
	Labels: map[tabnav.Section]string{
		sectionOverview: "Overview",
		"institutions":  "Institutions",
		"admins":        "Admins",
		"claims":        "Claims",
		sectionSettings: "Settings",
	},
	Counters: stats.SuperAdminCounters,
}
