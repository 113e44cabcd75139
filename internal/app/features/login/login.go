// internal/app/features/login/login.go
package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/trueportme/adminconsole/internal/app/store/logins"
	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/inputval"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"go.uber.org/zap"
)

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

type loginInput struct {
	Email    string `validate:"required,email,max=254" label:"Email"`
	Password string `validate:"required,max=200" label:"Password"`
}

// failure is a refused login: what the user sees and the status it is
// served with.
type failure struct {
	Status  int
	Message string
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(query.Get(r, "return"), "", "/dashboard"), http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	p, token, fail := h.authenticate(r, email, password)
	if fail != nil {
		h.renderFormWithError(w, r, fail, email, returnURL)
		return
	}

	viewID, err := h.Sessions.SignIn(w, r, p, token)
	if err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("email", email))
		h.renderFormWithError(w, r, &failure{Status: http.StatusInternalServerError, Message: "Unable to create session. Please try again."}, email, returnURL)
		return
	}
	h.Limiter.ResetEmail(email)

	h.Audit.LoginSuccess(r.Context(), r, &auth.SessionUser{
		ID:            p.ID,
		Email:         p.Email,
		Role:          text.Fold(p.Role),
		InstitutionID: p.InstitutionID,
		ViewID:        viewID,
	})
	h.Log.Info("signed in", zap.String("user_id", p.ID), zap.String("role", p.Role))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/dashboard"), http.StatusSeeOther)
}

// authenticate validates the form, applies the rate limits and asks the API.
// Every refusal is audited.
func (h *Handler) authenticate(r *http.Request, email, password string) (models.Profile, string, *failure) {
	if res := inputval.Validate(loginInput{Email: email, Password: password}); res.HasErrors() {
		return models.Profile{}, "", &failure{Status: http.StatusUnprocessableEntity, Message: res.First()}
	}

	if ok, reason := h.Limiter.Check(r, email); !ok {
		h.Audit.LoginRateLimited(r.Context(), r, email)
		return models.Profile{}, "", &failure{Status: http.StatusTooManyRequests, Message: reason}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "login")
	defer cancel()

	p, token, err := h.Logins.Login(ctx, email, password)
	switch {
	case err == nil:
		return p, token, nil
	case errors.Is(err, logins.ErrInvalidCredentials):
		h.Audit.LoginFailed(r.Context(), r, email, "invalid credentials")
		return p, "", &failure{Status: http.StatusUnauthorized, Message: "Invalid email or password."}
	case errors.Is(err, logins.ErrRoleNotAllowed):
		h.Audit.LoginFailed(r.Context(), r, email, "role not allowed")
		return p, "", &failure{Status: http.StatusForbidden, Message: "This account cannot use the admin console."}
	}
	h.Log.Error("login request failed", zap.Error(err), zap.String("email", email))
	h.Audit.LoginFailed(r.Context(), r, email, "api unavailable")
	return p, "", &failure{Status: http.StatusBadGateway, Message: "The TruePortMe service is unavailable. Please try again."}
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, fail *failure, email, returnURL string) {
	w.WriteHeader(fail.Status)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     fail.Message,
		Email:     email,
		ReturnURL: returnURL,
	})
}
