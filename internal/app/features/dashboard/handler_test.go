package dashboard

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	"github.com/trueportme/adminconsole/internal/app/store/stats"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/tabnav"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"github.com/trueportme/adminconsole/internal/testutil"
	"go.uber.org/zap"
)

func count(total int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, map[string]any{
			"pagination": map[string]int{"page": 1, "limit": 1, "total": total, "pages": total},
		})
	}
}

// newTestHandler serves institute-admin figures. While failing is set every
// count answers 503.
func newTestHandler(t *testing.T) (*Handler, *atomic.Bool) {
	t.Helper()
	var failing atomic.Bool
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if failing.Load() {
				testutil.WriteError(w, http.StatusServiceUnavailable, "")
				return
			}
			next(w, r)
		}
	}
	api := testutil.NewFakeAPI(t, func(r chi.Router) {
		r.Get("/students", guard(count(120)))
		r.Get("/events", guard(count(7)))
		r.Get("/verifiers", guard(count(4)))
		r.Get("/profile-requests", guard(count(2)))
	})

	logger := zap.NewNop()
	h := NewHandler(stats.New(api.Client), viewstate.NewRegistry(time.Hour), uierrors.NewErrorLogger(logger), logger)
	return h, &failing
}

func TestHTMXLocation_ReadsCurrentURL(t *testing.T) {
	req := testutil.HTMX(httptest.NewRequest(http.MethodGet, "/dashboard/section", nil), "https://console.test/dashboard#claims")
	loc := newHTMXLocation(httptest.NewRecorder(), req, "/elsewhere")

	if loc.Path() != "/dashboard" || loc.Fragment() != "claims" {
		t.Errorf("location = %q#%q", loc.Path(), loc.Fragment())
	}
}

func TestHTMXLocation_FallsBackToQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard?section=admins", nil)
	loc := newHTMXLocation(httptest.NewRecorder(), req, hostPath)

	if loc.Path() != hostPath || loc.Fragment() != "admins" {
		t.Errorf("location = %q#%q", loc.Path(), loc.Fragment())
	}
}

func TestHTMXLocation_SetFragmentPushesAndNotifies(t *testing.T) {
	rec := httptest.NewRecorder()
	req := testutil.HTMX(httptest.NewRequest(http.MethodGet, "/dashboard/section/claims", nil), "https://console.test/dashboard")
	loc := newHTMXLocation(rec, req, hostPath)

	var got []string
	cancel := loc.Subscribe(func(f string) { got = append(got, f) })
	loc.SetFragment("claims")
	cancel()
	cancel()
	loc.SetFragment("admins")

	if h := rec.Header().Get("HX-Push-Url"); h != "/dashboard#admins" {
		t.Errorf("HX-Push-Url = %q", h)
	}
	if diff := cmp.Diff([]string{"claims"}, got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
	if loc.subscribers() != 0 {
		t.Errorf("subscribers = %d after cancel", loc.subscribers())
	}
}

func TestSelector_OverHTMXLocation(t *testing.T) {
	sections := superAdminDashboard.Sections
	tests := []struct {
		name    string
		current string
		want    tabnav.Section
	}{
		{"known fragment", "https://console.test/dashboard#institutions", "institutions"},
		{"unknown fragment", "https://console.test/dashboard#bogus", "overview"},
		{"no fragment", "https://console.test/dashboard", "overview"},
		{"case differs", "https://console.test/dashboard#Claims", "overview"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.HTMX(httptest.NewRequest(http.MethodGet, "/dashboard/section", nil), tt.current)
			loc := newHTMXLocation(httptest.NewRecorder(), req, hostPath)
			sel := tabnav.NewSelector(sections, loc)
			defer sel.Close()

			if got := sel.Active(); got != tt.want {
				t.Errorf("Active = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelector_CloseUnsubscribes(t *testing.T) {
	req := testutil.HTMX(httptest.NewRequest(http.MethodGet, "/dashboard/section", nil), "https://console.test/dashboard")
	loc := newHTMXLocation(httptest.NewRecorder(), req, hostPath)
	sel := tabnav.NewSelector(superAdminDashboard.Sections, loc)
	if loc.subscribers() != 1 {
		t.Fatalf("subscribers = %d", loc.subscribers())
	}
	sel.Close()
	sel.Close()
	if loc.subscribers() != 0 {
		t.Errorf("subscribers = %d after Close", loc.subscribers())
	}
}

func TestSubTargets_ClearResetsSelector(t *testing.T) {
	rec := httptest.NewRecorder()
	req := testutil.HTMX(httptest.NewRequest(http.MethodGet, "/dashboard/goto", nil), "https://console.test/dashboard#settings")
	loc := newHTMXLocation(rec, req, hostPath)
	sel := tabnav.NewSelector(superAdminDashboard.Sections, loc)
	defer sel.Close()

	if sel.Active() != sectionSettings {
		t.Fatalf("Active = %q", sel.Active())
	}
	tabnav.NewSubTargets(hostPath, loc).Clear()

	if sel.Active() != sectionOverview {
		t.Errorf("Active = %q after Clear", sel.Active())
	}
	if h := rec.Header().Get("HX-Replace-Url"); h != "/dashboard" {
		t.Errorf("HX-Replace-Url = %q", h)
	}
	if h := rec.Header().Get("HX-Push-Url"); h != "" {
		t.Errorf("Clear pushed a history entry: %q", h)
	}
}

func TestServeGoto_FromAnotherPageNavigates(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name       string
		htmx       bool
		target     string
		wantCode   int
		wantHeader string
		wantURL    string
	}{
		{"htmx", true, "settings", http.StatusOK, "HX-Redirect", "/dashboard#settings"},
		{"plain link", false, "events", http.StatusSeeOther, "Location", "/dashboard#events"},
		{"unknown target", true, "nope", http.StatusOK, "HX-Redirect", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/goto?target="+tt.target, testutil.InstituteAdmin())
			if tt.htmx {
				req = testutil.HTMX(req, "https://console.test/settings")
			}
			rec := httptest.NewRecorder()
			h.ServeGoto(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get(tt.wantHeader); got != tt.wantURL {
				t.Errorf("%s = %q, want %q", tt.wantHeader, got, tt.wantURL)
			}
		})
	}
}

func TestServeGoto_OnDashboard(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name        string
		target      string
		wantPush    string
		wantReplace string
		wantActive  string
	}{
		{"sub-target pushes fragment", "settings", "/dashboard#settings", "", "settings"},
		{"default section clears fragment", "overview", "", "/dashboard", "overview"},
		{"empty target clears fragment", "", "", "/dashboard", "overview"},
		{"unknown target clears fragment", "nope", "", "/dashboard", "overview"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/goto?target="+tt.target, testutil.InstituteAdmin())
			req = testutil.HTMX(req, "https://console.test/dashboard#settings")
			rec := httptest.NewRecorder()
			h.ServeGoto(rec, req)

			if got := rec.Header().Get("HX-Push-Url"); got != tt.wantPush {
				t.Errorf("HX-Push-Url = %q, want %q", got, tt.wantPush)
			}
			if got := rec.Header().Get("HX-Replace-Url"); got != tt.wantReplace {
				t.Errorf("HX-Replace-Url = %q, want %q", got, tt.wantReplace)
			}
			if got := rec.Header().Get("HX-Redirect"); got != "" {
				t.Errorf("HX-Redirect = %q on the dashboard", got)
			}
			if sec := h.Views.Get(testutil.InstituteAdmin().ViewID).Section(pageKey); sec != tt.wantActive {
				t.Errorf("remembered section = %q, want %q", sec, tt.wantActive)
			}
		})
	}
}

func TestSection_Overview(t *testing.T) {
	h, _ := newTestHandler(t)
	user := testutil.InstituteAdmin()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", user)

	data, ok := h.section(httptest.NewRecorder(), req, instituteAdminDashboard, sectionOverview)
	if !ok {
		t.Fatal("section returned false")
	}

	got := map[string]int{}
	for _, c := range data.Cards {
		got[c.Key] = c.Value
	}
	want := map[string]int{"students": 120, "events": 7, "verifiers": 4, "profile-requests": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cards (-want +got):\n%s", diff)
	}
	if data.Stale || data.Notice != "" {
		t.Errorf("Stale=%v Notice=%q", data.Stale, data.Notice)
	}
	if len(data.Tabs) != 5 || !data.Tabs[0].Active {
		t.Errorf("Tabs = %+v", data.Tabs)
	}
	if sec := h.Views.Get(user.ViewID).Section(pageKey); sec != sectionOverview {
		t.Errorf("remembered section = %q", sec)
	}
}

func TestSection_ListSectionLinksFullPage(t *testing.T) {
	h, _ := newTestHandler(t)
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", testutil.InstituteAdmin())

	data, _ := h.section(httptest.NewRecorder(), req, instituteAdminDashboard, "profile-requests")
	if data.Link != "/profile-requests?status=PENDING" {
		t.Errorf("Link = %q", data.Link)
	}
	if len(data.Cards) != 1 || data.Cards[0].Value != 2 {
		t.Errorf("Cards = %+v", data.Cards)
	}
}

func TestSection_FailureKeepsLastFigures(t *testing.T) {
	h, failing := newTestHandler(t)
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", testutil.InstituteAdmin())

	if _, ok := h.section(httptest.NewRecorder(), req, instituteAdminDashboard, sectionOverview); !ok {
		t.Fatal("first load failed")
	}
	failing.Store(true)

	data, ok := h.section(httptest.NewRecorder(), req, instituteAdminDashboard, sectionOverview)
	if !ok {
		t.Fatal("section returned false")
	}
	if !data.Stale || data.Notice == "" {
		t.Errorf("Stale=%v Notice=%q", data.Stale, data.Notice)
	}
	if len(data.Cards) != 4 {
		t.Errorf("kept %d cards, want 4", len(data.Cards))
	}

	// Figures of another section are never shown in place of this one.
	other, _ := h.section(httptest.NewRecorder(), req, instituteAdminDashboard, "events")
	if other.Stale || len(other.Cards) != 0 || other.Notice == "" {
		t.Errorf("events section = %+v", other)
	}
}

func TestSection_SettingsShowsProfile(t *testing.T) {
	h, failing := newTestHandler(t)
	failing.Store(true)
	user := testutil.SuperAdmin()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", user)

	data, ok := h.section(httptest.NewRecorder(), req, superAdminDashboard, sectionSettings)
	if !ok || data.Notice != "" || len(data.Cards) != 0 {
		t.Fatalf("data = %+v ok=%v", data, ok)
	}
	if data.Profile.Email != user.Email {
		t.Errorf("Profile = %+v", data.Profile)
	}
}

func TestRole_UnknownRoleIsForbidden(t *testing.T) {
	h, _ := newTestHandler(t)
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", &auth.SessionUser{ID: "x", Role: "student", ViewID: "v"})
	rec := httptest.NewRecorder()

	if _, ok := h.role(rec, req); ok {
		t.Fatal("role accepted a student")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("code = %d", rec.Code)
	}
}
