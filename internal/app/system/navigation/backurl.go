// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/institutions").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQuery lists request parameters (typically filter names) to
	// carry onto the fallback URL.
	PreserveQuery []string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" && allowed(ret, opts) {
		return ret
	}
	return withPreserved(r, opts.Fallback, opts.PreserveQuery)
}

func allowed(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return false
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(ret, excluded) {
			return false
		}
	}
	return true
}

func withPreserved(r *http.Request, fallback string, keys []string) string {
	if len(keys) == 0 {
		return fallback
	}
	q := url.Values{}
	for _, k := range keys {
		v := query.Get(r, k)
		if v == "" {
			v = strings.TrimSpace(r.FormValue(k))
		}
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return fallback
	}
	sep := "?"
	if strings.Contains(fallback, "?") {
		sep = "&"
	}
	return fallback + sep + q.Encode()
}

// Back URL configurations for the console's list pages.
var (
	InstitutionsBackURL = BackURLOptions{
		AllowedPrefix:    "/institutions",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/institutions",
		PreserveQuery:    []string{"state", "district", "type", "status", "claimed", "kycVerified"},
	}

	AdminsBackURL = BackURLOptions{
		AllowedPrefix:    "/admins",
		ExcludedSubpaths: []string{"/delete", "/new"},
		Fallback:         "/admins",
		PreserveQuery:    []string{"institution", "status"},
	}

	ClaimsBackURL = BackURLOptions{
		AllowedPrefix:    "/claims",
		ExcludedSubpaths: []string{"/approve", "/reject"},
		Fallback:         "/claims",
		PreserveQuery:    []string{"status", "institution"},
	}

	ProfileRequestsBackURL = BackURLOptions{
		AllowedPrefix:    "/profile-requests",
		ExcludedSubpaths: []string{"/approve", "/reject"},
		Fallback:         "/profile-requests",
		PreserveQuery:    []string{"status", "student"},
	}

	StudentsBackURL = BackURLOptions{
		AllowedPrefix:    "/students",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/students",
		PreserveQuery:    []string{"status", "class", "kycVerified"},
	}

	EventsBackURL = BackURLOptions{
		AllowedPrefix:    "/events",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new", "/unassign"},
		Fallback:         "/events",
		PreserveQuery:    []string{"status", "category"},
	}
)
