// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for the admin console.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig carries the
// framework-level settings (ports, TLS, logging, CORS); everything here is
// specific to the console.
type AppConfig struct {
	// TruePortMe REST API
	APIBaseURL      string        // e.g. https://api.trueportme.com/api
	APITimeout      time.Duration // per-request timeout for API calls
	APIClientID     string        // OAuth2 client id for the service token (optional)
	APIClientSecret string        // OAuth2 client secret
	APITokenURL     string        // OAuth2 token endpoint

	// MongoDB (audit trail only; blank URI disables it)
	MongoURI      string
	MongoDatabase string

	// Session management
	SessionKey    string // master secret; cookie and CSRF keys are derived from it
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Audit logging
	AuditLogAuth       string // all, db, log or off
	AuditLogAdmin      string // all, db, log or off
	AuditRetentionDays int    // 0 keeps audit events forever

	// Per-session view state and login throttling
	ViewStateTTL       time.Duration
	LoginRatePerMinute int

	// ExportMaxRows caps how many records a list fetches and exports.
	ExportMaxRows int
}

// HasServiceCredentials reports whether a service token can be obtained.
func (c AppConfig) HasServiceCredentials() bool {
	return c.APIClientID != "" && c.APIClientSecret != "" && c.APITokenURL != ""
}
