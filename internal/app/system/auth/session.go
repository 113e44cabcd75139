// internal/app/system/auth/session.go
package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"go.uber.org/zap"
)

const (
	profileKey = "profile"
	tokenKey   = "token"
	viewIDKey  = "view_id"

	// cookieMaxLength leaves room for the serialized profile and API token.
	cookieMaxLength = 8192
)

// SessionManager owns the cookie session store.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	logger *zap.Logger
}

// NewSessionManager builds the cookie store. The signing and encryption
// keys are derived from sessionKey.
//
// In production (secure=true), cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "trueportme-admin"
	}

	hashKey, err := DeriveKey(sessionKey, PurposeCookieHash, 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := DeriveKey(sessionKey, PurposeCookieBlock, 32)
	if err != nil {
		return nil, err
	}

	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(hashKey, blockKey),
		Options: &sessions.Options{
			Domain:   domain,
			Path:     "/",
			MaxAge:   int(maxAge.Seconds()),
			Secure:   secure,
			HttpOnly: true,
		},
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	} else {
		store.Options.SameSite = http.SameSiteLaxMode
	}
	store.MaxAge(store.Options.MaxAge)
	for _, c := range store.Codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxLength(cookieMaxLength)
		}
	}

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, logger: logger}, nil
}

// Name returns the session cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// SignIn stores the profile and API token in a fresh session and returns
// the new view id.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, p models.Profile, token string) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[interface{}]interface{}{
		profileKey: string(raw),
		tokenKey:   token,
		viewIDKey:  uuid.NewString(),
	}
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return sess.Values[viewIDKey].(string), nil
}

// SignOut expires the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// AddFlash queues a one-time message shown on the next rendered page.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := sm.store.Get(r, sm.name)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		sm.logger.Warn("save flash failed", zap.Error(err))
	}
}

// Flashes pops the queued messages.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := sm.store.Get(r, sm.name)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.logger.Warn("save session after flashes failed", zap.Error(err))
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// readUser decodes the signed-in user from the session, if any.
func (sm *SessionManager) readUser(r *http.Request) (*SessionUser, bool) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return nil, false
	}
	raw, _ := sess.Values[profileKey].(string)
	token, _ := sess.Values[tokenKey].(string)
	if raw == "" || token == "" {
		return nil, false
	}
	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		sm.logger.Warn("discarding unreadable session profile", zap.Error(err))
		return nil, false
	}
	viewID, _ := sess.Values[viewIDKey].(string)
	return userFromProfile(p, token, viewID), true
}
