package logins

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/testutil"
)

func loginAPI(t *testing.T) *testutil.FakeAPI {
	return testutil.NewFakeAPI(t, func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var in credentials
			_ = testutil.ReadJSON(r, &in)
			switch in.Email {
			case "root@example.com":
				testutil.WriteJSON(w, http.StatusOK, map[string]any{
					"token": "tok-1",
					"user":  map[string]any{"_id": "u1", "name": "Root", "email": in.Email, "role": "SuperAdmin"},
				})
			case "student@example.com":
				testutil.WriteJSON(w, http.StatusOK, map[string]any{
					"token": "tok-2",
					"user":  map[string]any{"_id": "u2", "email": in.Email, "role": "student"},
				})
			case "inst@example.com":
				testutil.WriteJSON(w, http.StatusOK, map[string]any{
					"token": "tok-3",
					"user": map[string]any{"_id": "u3", "email": in.Email, "role": "instituteadmin",
						"institutionId": "i1", "institutionName": "Alpha"},
				})
			case "orphan@example.com":
				testutil.WriteJSON(w, http.StatusOK, map[string]any{
					"token": "tok-4",
					"user":  map[string]any{"_id": "u4", "email": in.Email, "role": "instituteadmin"},
				})
			default:
				testutil.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			}
		})
	})
}

func TestLogin(t *testing.T) {
	s := New(loginAPI(t).Client)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, tok, err := s.Login(ctx, "root@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok != "tok-1" || p.ID != "u1" || p.Name != "Root" {
		t.Errorf("Login = %+v, %q", p, tok)
	}

	if _, _, err := s.Login(ctx, "who@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad credentials err = %v", err)
	}
	if _, _, err := s.Login(ctx, "student@example.com", "pw"); !errors.Is(err, ErrRoleNotAllowed) {
		t.Errorf("student err = %v", err)
	}
}

func TestLogin_InstituteAdminNeedsInstitution(t *testing.T) {
	s := New(loginAPI(t).Client)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, tok, err := s.Login(ctx, "inst@example.com", "pw")
	if err != nil || tok != "tok-3" || p.InstitutionID != "i1" {
		t.Fatalf("Login = %+v, %q, %v", p, tok, err)
	}
	if _, tok, err := s.Login(ctx, "orphan@example.com", "pw"); !errors.Is(err, ErrRoleNotAllowed) || tok != "" {
		t.Errorf("orphan institute-admin = %q, %v", tok, err)
	}
}
