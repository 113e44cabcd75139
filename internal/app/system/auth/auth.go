// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	ID              string
	Name            string
	Email           string
	Role            string
	InstitutionID   string
	InstitutionName string

	// Token is the API bearer token issued at login.
	Token string
	// ViewID keys the per-session view state.
	ViewID string
}

// Profile returns the stored profile.
func (u *SessionUser) Profile() models.Profile {
	return models.Profile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		InstitutionID:   u.InstitutionID,
		InstitutionName: u.InstitutionName,
	}
}

// IsSuperAdmin reports whether u administers the whole platform.
func (u *SessionUser) IsSuperAdmin() bool {
	return strings.EqualFold(u.Role, models.RoleSuperAdmin)
}

func userFromProfile(p models.Profile, token, viewID string) *SessionUser {
	return &SessionUser{
		ID:              p.ID,
		Name:            p.DisplayName(),
		Email:           p.Email,
		Role:            text.Fold(p.Role),
		InstitutionID:   p.InstitutionID,
		InstitutionName: p.InstitutionName,
		Token:           token,
		ViewID:          viewID,
	}
}

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	flashesKey     ctxKey = "flashes"
)

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects u as LoadSessionUser would, including its API token.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// Flashes returns the one-time messages popped for this request.
func Flashes(r *http.Request) []string {
	f, _ := r.Context().Value(flashesKey).([]string)
	return f
}

// LoadSessionUser injects the user into context if they are logged in,
// attaches their API token to the request context, and pops any queued
// flash messages.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := sm.readUser(r); ok {
			r = withUser(r, u)
		}
		if f := sm.Flashes(w, r); len(f) > 0 {
			r = r.WithContext(context.WithValue(r.Context(), flashesKey, f))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		unauthorized(w, r)
	})
}

// RequireRole ensures there is a user with one of the allowed roles.
// If not authorized, it redirects to HTML pages (or sets HX-Redirect) instead of writing a blank error.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[text.Fold(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				unauthorized(w, r)
				return
			}

			if _, has := set[text.Fold(u.Role)]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(r.URL.RequestURI())

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	ctx := context.WithValue(r.Context(), currentUserKey, u)
	if u != nil && u.Token != "" {
		ctx = apiclient.WithToken(ctx, u.Token)
	}
	return r.WithContext(ctx)
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
