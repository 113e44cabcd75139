package settings

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"github.com/trueportme/adminconsole/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler() *Handler {
	return NewHandler(viewstate.NewRegistry(time.Hour), zap.NewNop())
}

func TestServeSettings_Unauthenticated(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeSettings(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestPage_BackToRememberedSection(t *testing.T) {
	h := newTestHandler()
	user := testutil.SuperAdmin()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/settings", user)

	if got := h.page(req, user).DashboardURL; got != "/dashboard" {
		t.Errorf("fresh view DashboardURL = %q", got)
	}

	h.Views.Get(user.ViewID).SetSection("dashboard", "claims")
	data := h.page(req, user)
	if data.DashboardURL != "/dashboard#claims" {
		t.Errorf("DashboardURL = %q", data.DashboardURL)
	}
	if data.Profile.Email != user.Email || data.Profile.Role != user.Role {
		t.Errorf("Profile = %+v", data.Profile)
	}
	if data.DashboardSettingsURL != "/dashboard/goto?target=settings" {
		t.Errorf("DashboardSettingsURL = %q", data.DashboardSettingsURL)
	}
}
