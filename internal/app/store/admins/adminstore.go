// internal/app/store/admins/adminstore.go
package admins

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

var (
	ErrNotFound = errors.New("admin not found")
	ErrConflict = errors.New("an admin with this email already exists")
	ErrInvalid  = errors.New("admin rejected by API")
)

// Store manages institute-admin accounts through the API.
type Store struct {
	api *apiclient.Client
}

// New returns a Store.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// List returns every institute-admin.
func (s *Store) List(ctx context.Context) ([]filterset.Record, error) {
	recs, err := s.api.ListAll(ctx, "/admins", "admins", nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", mapErr(err))
	}
	return recs, nil
}

// Create adds an institute-admin for an institution.
func (s *Store) Create(ctx context.Context, in models.NewAdmin) (models.Admin, error) {
	var out models.Admin
	env, err := s.api.Post(ctx, "/admins", in)
	if err != nil {
		return out, mapErr(err)
	}
	if err := env.Decode("admin", &out); err != nil {
		return out, err
	}
	return out, nil
}

// Delete removes admin id.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.api.Delete(ctx, "/admins/"+url.PathEscape(id))
	return mapErr(err)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case apiclient.IsNotFound(err):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case apiclient.IsConflict(err):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case apiclient.IsBadRequest(err):
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return err
}
