// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/authz"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// DefaultSiteName is shown until Init sets the configured name.
const DefaultSiteName = "TruePortMe Admin"

// NavItem is one entry of the top navigation.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn  bool
	Role        string
	UserName    string
	Institution string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Nav         []NavItem

	CSRFToken string

	// Flashes are one-time messages queued by the previous request.
	Flashes []string
	// Notice is a transient message for this render, e.g. a failed refresh.
	Notice string
}

var (
	mu       sync.RWMutex
	siteName = DefaultSiteName
)

// Init sets the site name shown in page headers. Call once at startup.
func Init(name string) {
	if name == "" {
		return
	}
	mu.Lock()
	siteName = name
	mu.Unlock()
}

func currentSiteName() string {
	mu.RLock()
	defer mu.RUnlock()
	return siteName
}

// NewBaseVM creates a fully populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    currentSiteName(),
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
		Flashes:     auth.Flashes(r),
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.Institution = u.InstitutionName
	}
	if signedIn {
		vm.Nav = navFor(role, vm.CurrentPath)
	}
	return vm
}

func navFor(role, current string) []NavItem {
	var items []NavItem
	switch role {
	case models.RoleSuperAdmin:
		items = []NavItem{
			{Label: "Dashboard", Href: "/dashboard"},
			{Label: "Institutions", Href: "/institutions"},
			{Label: "Admins", Href: "/admins"},
			{Label: "Claims", Href: "/claims"},
			{Label: "Audit log", Href: "/audit"},
			{Label: "Settings", Href: "/settings"},
		}
	case models.RoleInstituteAdmin:
		items = []NavItem{
			{Label: "Dashboard", Href: "/dashboard"},
			{Label: "Students", Href: "/students"},
			{Label: "Events", Href: "/events"},
			{Label: "Profile requests", Href: "/profile-requests"},
			{Label: "Audit log", Href: "/audit"},
			{Label: "Settings", Href: "/settings"},
		}
	}
	for i := range items {
		items[i].Active = current == items[i].Href ||
			(len(current) > len(items[i].Href) && current[:len(items[i].Href)+1] == items[i].Href+"/")
	}
	return items
}
