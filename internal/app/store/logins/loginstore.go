// internal/app/store/logins/loginstore.go
package logins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// ErrInvalidCredentials is returned when the API refuses the login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrRoleNotAllowed is returned for accounts that may not use the console.
var ErrRoleNotAllowed = errors.New("this account cannot use the admin console")

// Store authenticates console users against the API.
type Store struct {
	api *apiclient.Client
}

// New returns a Store.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for the user's profile and API token.
func (s *Store) Login(ctx context.Context, email, password string) (models.Profile, string, error) {
	var p models.Profile
	env, err := s.api.Post(ctx, "/auth/login", credentials{Email: email, Password: password})
	if err != nil {
		if apiclient.IsUnauthorized(err) || apiclient.IsBadRequest(err) || apiclient.IsNotFound(err) {
			return p, "", fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return p, "", fmt.Errorf("login: %w", err)
	}

	var token string
	if err := env.Decode("token", &token); err != nil {
		return p, "", fmt.Errorf("login: %w", err)
	}
	if err := env.Decode("user", &p); err != nil {
		return p, "", fmt.Errorf("login: %w", err)
	}
	switch text.Fold(p.Role) {
	case models.RoleSuperAdmin:
	case models.RoleInstituteAdmin:
		// Institute-admin views are scoped by this id.
		if strings.TrimSpace(p.InstitutionID) == "" {
			return p, "", ErrRoleNotAllowed
		}
	default:
		return p, "", ErrRoleNotAllowed
	}
	return p, token, nil
}

// Logout revokes the token carried by ctx.
func (s *Store) Logout(ctx context.Context) error {
	_, err := s.api.Post(ctx, "/auth/logout", nil)
	return err
}
