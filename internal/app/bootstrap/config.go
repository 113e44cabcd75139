// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the admin console.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: TRUEPORTME_API_BASE_URL, TRUEPORTME_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	// TruePortMe REST API
	{Name: "api_base_url", Default: "http://localhost:5000/api", Desc: "Base URL of the TruePortMe REST API"},
	{Name: "api_timeout", Default: "15s", Desc: "Timeout for a single API request (e.g., 15s, 1m)"},
	{Name: "api_client_id", Default: "", Desc: "OAuth2 client id for background API calls"},
	{Name: "api_client_secret", Default: "", Desc: "OAuth2 client secret for background API calls"},
	{Name: "api_token_url", Default: "", Desc: "OAuth2 token endpoint for background API calls"},

	// MongoDB
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI for the audit trail (blank disables it)"},
	{Name: "mongo_database", Default: "trueportme_console", Desc: "MongoDB database name"},

	// Sessions
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "trueportme-admin", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Audit logging
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_retention_days", Default: 180, Desc: "Days to keep audit events (0 keeps them forever)"},

	// View state and throttling
	{Name: "view_state_ttl", Default: "2h", Desc: "Idle time after which a session's filters and cached names are dropped"},
	{Name: "login_rate_per_minute", Default: 10, Desc: "Login attempts allowed per client IP per minute"},
	{Name: "export_max_rows", Default: 5000, Desc: "Maximum records fetched for a list or export"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, TRUEPORTME_* for the app) and
// flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TRUEPORTME", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL:      strings.TrimRight(appValues.String("api_base_url"), "/"),
		APITimeout:      appValues.Duration("api_timeout", 15*time.Second),
		APIClientID:     appValues.String("api_client_id"),
		APIClientSecret: appValues.String("api_client_secret"),
		APITokenURL:     appValues.String("api_token_url"),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		AuditLogAuth:       strings.ToLower(appValues.String("audit_log_auth")),
		AuditLogAdmin:      strings.ToLower(appValues.String("audit_log_admin")),
		AuditRetentionDays: appValues.Int("audit_retention_days"),

		ViewStateTTL:       appValues.Duration("view_state_ttl", 2*time.Hour),
		LoginRatePerMinute: appValues.Int("login_rate_per_minute"),
		ExportMaxRows:      appValues.Int("export_max_rows"),
	}

	return coreCfg, appCfg, nil
}

var auditModes = map[string]bool{"": true, "all": true, "db": true, "log": true, "off": true}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", appCfg.APIBaseURL)
	}

	creds := 0
	for _, v := range []string{appCfg.APIClientID, appCfg.APIClientSecret, appCfg.APITokenURL} {
		if v != "" {
			creds++
		}
	}
	if creds != 0 && creds != 3 {
		return fmt.Errorf("api_client_id, api_client_secret and api_token_url must be set together")
	}

	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && strings.HasPrefix(appCfg.SessionKey, "dev-only") {
		return fmt.Errorf("session_key must be changed in production")
	}

	for name, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		if !auditModes[strings.ToLower(mode)] {
			return fmt.Errorf("%s must be one of all, db, log, off; got %q", name, mode)
		}
	}

	if appCfg.LoginRatePerMinute < 1 {
		return fmt.Errorf("login_rate_per_minute must be at least 1")
	}
	if appCfg.ExportMaxRows < 1 {
		return fmt.Errorf("export_max_rows must be at least 1")
	}
	if appCfg.AuditRetentionDays < 0 {
		return fmt.Errorf("audit_retention_days must not be negative")
	}
	if appCfg.ViewStateTTL <= 0 {
		return fmt.Errorf("view_state_ttl must be positive")
	}
	return nil
}
