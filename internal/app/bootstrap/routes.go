// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	adminsfeature "github.com/trueportme/adminconsole/internal/app/features/admins"
	auditlogfeature "github.com/trueportme/adminconsole/internal/app/features/auditlog"
	claimsfeature "github.com/trueportme/adminconsole/internal/app/features/claims"
	dashboardfeature "github.com/trueportme/adminconsole/internal/app/features/dashboard"
	errorsfeature "github.com/trueportme/adminconsole/internal/app/features/errors"
	eventsfeature "github.com/trueportme/adminconsole/internal/app/features/events"
	healthfeature "github.com/trueportme/adminconsole/internal/app/features/health"
	heartbeatfeature "github.com/trueportme/adminconsole/internal/app/features/heartbeat"
	institutionsfeature "github.com/trueportme/adminconsole/internal/app/features/institutions"
	loginfeature "github.com/trueportme/adminconsole/internal/app/features/login"
	logoutfeature "github.com/trueportme/adminconsole/internal/app/features/logout"
	profilerequestsfeature "github.com/trueportme/adminconsole/internal/app/features/profilerequests"
	settingsfeature "github.com/trueportme/adminconsole/internal/app/features/settings"
	studentsfeature "github.com/trueportme/adminconsole/internal/app/features/students"
	adminstore "github.com/trueportme/adminconsole/internal/app/store/admins"
	claimstore "github.com/trueportme/adminconsole/internal/app/store/claims"
	eventstore "github.com/trueportme/adminconsole/internal/app/store/events"
	institutionstore "github.com/trueportme/adminconsole/internal/app/store/institutions"
	loginstore "github.com/trueportme/adminconsole/internal/app/store/logins"
	requeststore "github.com/trueportme/adminconsole/internal/app/store/profilerequests"
	statstore "github.com/trueportme/adminconsole/internal/app/store/stats"
	studentstore "github.com/trueportme/adminconsole/internal/app/store/students"
	verifierstore "github.com/trueportme/adminconsole/internal/app/store/verifiers"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"go.uber.org/zap"
)

// sessionMaxAge is how long a sign-in lasts without activity.
const sessionMaxAge = 12 * time.Hour

// BuildHandler constructs the root HTTP handler for the console.
//
// It boots the template engine, applies request id, CSRF and session
// middleware, and mounts one router per console area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, sessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	csrfKey, err := auth.DeriveKey(appCfg.SessionKey, auth.PurposeCSRF, 32)
	if err != nil {
		return nil, err
	}

	// Dev mode enables template reloading.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	audit := auditlog.New(auditWriter(deps), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(plaintextUnlessSecure(secure))
	r.Use(csrf.Protect(csrfKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(csrfFailure(logger)),
	))

	// Loads the SessionUser and its API token into the request context.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(mongoPinger(deps), deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// Authentication
	logins := loginstore.New(deps.API)
	loginHandler := loginfeature.NewHandler(logins, sessionMgr, deps.Limiter, audit, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logins, deps.Views, audit, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	dashboardHandler := dashboardfeature.NewHandler(statstore.New(deps.API), deps.Views, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	heartbeatHandler := heartbeatfeature.NewHandler(deps.Views, logger)
	r.Mount("/heartbeat", heartbeatfeature.Routes(heartbeatHandler, sessionMgr))

	settingsHandler := settingsfeature.NewHandler(deps.Views, logger)
	r.Mount("/settings", settingsfeature.Routes(settingsHandler, sessionMgr))

	auditHandler := auditlogfeature.NewHandler(auditQuerier(deps), errLog, logger)
	r.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	// Super-admin areas
	institutions := institutionstore.New(deps.API, appCfg.ExportMaxRows)
	institutionsHandler := institutionsfeature.NewHandler(institutions, deps.Views, audit, errLog, logger)
	r.Mount("/institutions", institutionsfeature.Routes(institutionsHandler, sessionMgr))

	adminsHandler := adminsfeature.NewHandler(adminstore.New(deps.API), institutions, deps.Views, audit, errLog, logger)
	r.Mount("/admins", adminsfeature.Routes(adminsHandler, sessionMgr))

	claimsHandler := claimsfeature.NewHandler(claimstore.New(deps.API), sessionMgr, deps.Views, audit, errLog, logger)
	r.Mount("/claims", claimsfeature.Routes(claimsHandler, sessionMgr))

	// Institute-admin areas
	students := studentstore.New(deps.API, appCfg.ExportMaxRows)
	studentsHandler := studentsfeature.NewHandler(students, deps.Views, audit, errLog, logger)
	r.Mount("/students", studentsfeature.Routes(studentsHandler, sessionMgr))

	requestsHandler := profilerequestsfeature.NewHandler(requeststore.New(deps.API), sessionMgr, deps.Views, audit, errLog, logger)
	r.Mount("/profile-requests", profilerequestsfeature.Routes(requestsHandler, sessionMgr))

	eventsHandler := eventsfeature.NewHandler(eventstore.New(deps.API), verifierstore.New(deps.API), students,
		sessionMgr, deps.Views, audit, errLog, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, sessionMgr))

	return r, nil
}

// plaintextUnlessSecure marks requests as plain HTTP for the CSRF
// middleware when the console is not served over TLS, so that its
// Referer check accepts http:// origins in development.
func plaintextUnlessSecure(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secure {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func csrfFailure(logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("csrf check failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(csrf.FailureReason(r)))
		errorsfeature.RenderForbidden(w, r, "Your form expired. Reload the page and try again.", "/dashboard")
	})
}

// The helpers below return untyped nils when MongoDB is disabled, so the
// consumers' nil checks see a nil interface.

func auditWriter(deps DBDeps) auditlog.Writer {
	if deps.Audit == nil {
		return nil
	}
	return deps.Audit
}

func auditQuerier(deps DBDeps) auditlogfeature.EventQuerier {
	if deps.Audit == nil {
		return nil
	}
	return deps.Audit
}

func mongoPinger(deps DBDeps) healthfeature.MongoPinger {
	if deps.MongoClient == nil {
		return nil
	}
	return deps.MongoClient
}
