// internal/app/features/errors/render.go
package errors

import (
	"net/http"
	"strings"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	respond(w, r, http.StatusUnauthorized, "Sign in required", "Please sign in to continue.", backURL)
}

// RenderForbidden shows a friendly access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	respond(w, r, http.StatusForbidden, "Access denied", msg, backURL)
}

// respond renders an error page for browsers. HTMX requests get the
// message swapped into the page's flash area, everything else plain text.
func respond(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	switch {
	case r.Header.Get("HX-Request") == "true":
		w.Header().Set("HX-Retarget", "#flash")
		w.Header().Set("HX-Reswap", "innerHTML")
		http.Error(w, msg, status)
	case strings.Contains(r.Header.Get("Accept"), "text/html"):
		render(w, r, status, title, msg, backURL)
	default:
		http.Error(w, msg, status)
	}
}
