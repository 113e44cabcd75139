// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Destinations for a category of events.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for login and logout events.
	Auth string
	// Admin controls logging for admin actions (CRUD, approvals, exports).
	Admin string
}

// Writer persists audit events.
type Writer interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger provides convenience methods for logging audit events.
// It logs to MongoDB (via a Writer) and/or structured logs (via zap).
type Logger struct {
	store  Writer
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store may be nil when no destination
// uses the database.
func New(store Writer, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID), zap.String("actor_role", event.ActorRole))
	}
	if event.InstitutionID != "" {
		fields = append(fields, zap.String("institution_id", event.InstitutionID))
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_type", event.TargetType), zap.String("target_id", event.TargetID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := ModeAll
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = ModeAll
	}
	if setting == ModeOff {
		return
	}

	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}
	if (setting == ModeAll || setting == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// base fills the request context of an event.
func base(r *http.Request, category, eventType string) audit.Event {
	e := audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		RequestID: middleware.GetReqID(r.Context()),
		Success:   true,
	}
	if u, ok := auth.CurrentUser(r); ok {
		e.ActorID = u.ID
		e.ActorRole = u.Role
		e.InstitutionID = u.InstitutionID
	}
	return e
}

// --- Authentication Events ---

// LoginSuccess logs a successful login for the signed-in user.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, u *auth.SessionUser) {
	e := base(r, audit.CategoryAuth, audit.EventLoginSuccess)
	e.ActorID, e.ActorRole, e.InstitutionID = u.ID, u.Role, u.InstitutionID
	e.Details = map[string]string{"email": u.Email}
	l.Log(ctx, e)
}

// LoginFailed logs a rejected login attempt.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, reason string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailed)
	e.Success = false
	e.FailureReason = reason
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// LoginRateLimited logs a login attempt refused by the rate limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, email string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginRateLimited)
	e.Success = false
	e.FailureReason = "rate limited"
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// Logout logs a sign-out by the current user.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	l.Log(ctx, base(r, audit.CategoryAuth, audit.EventLogout))
}

// --- Admin Events ---

// Action logs an admin action on a target resource by the current user.
func (l *Logger) Action(ctx context.Context, r *http.Request, eventType, targetType, targetID string, details map[string]string) {
	e := base(r, audit.CategoryAdmin, eventType)
	e.TargetType = targetType
	e.TargetID = targetID
	e.Details = details
	l.Log(ctx, e)
}

// ActionFailed logs an admin action the API refused.
func (l *Logger) ActionFailed(ctx context.Context, r *http.Request, eventType, targetType, targetID string, err error) {
	e := base(r, audit.CategoryAdmin, eventType)
	e.TargetType = targetType
	e.TargetID = targetID
	e.Success = false
	if err != nil {
		e.FailureReason = err.Error()
	}
	l.Log(ctx, e)
}
