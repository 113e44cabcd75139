// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// SuperAdmin returns a signed-in super-admin for handler tests.
func SuperAdmin() *auth.SessionUser {
	return &auth.SessionUser{
		ID:     "u-super",
		Name:   "Test Super",
		Email:  "super@test.com",
		Role:   models.RoleSuperAdmin,
		Token:  "super-token",
		ViewID: "view-super",
	}
}

// InstituteAdmin returns a signed-in institute-admin for handler tests.
func InstituteAdmin() *auth.SessionUser {
	return &auth.SessionUser{
		ID:              "u-inst",
		Name:            "Test Institute Admin",
		Email:           "inst@test.com",
		Role:            models.RoleInstituteAdmin,
		InstitutionID:   "inst-1",
		InstitutionName: "Test Institute",
		Token:           "inst-token",
		ViewID:          "view-inst",
	}
}

// WithChiURLParam adds a chi URL parameter to the request context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewAuthenticatedRequest creates a request carrying user.
func NewAuthenticatedRequest(method, target string, user *auth.SessionUser) *http.Request {
	return auth.WithTestUser(httptest.NewRequest(method, target, nil), user)
}

// NewFormRequest creates a url-encoded POST carrying user.
func NewFormRequest(target string, form url.Values, user *auth.SessionUser) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req = auth.WithTestUser(req, user)
	}
	return req
}

// HTMX marks req as an HTMX request issued from currentURL.
func HTMX(req *http.Request, currentURL string) *http.Request {
	req.Header.Set("HX-Request", "true")
	if currentURL != "" {
		req.Header.Set("HX-Current-URL", currentURL)
	}
	return req
}
