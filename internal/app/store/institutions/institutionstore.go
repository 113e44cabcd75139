// internal/app/store/institutions/institutionstore.go
package institutions

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
	ErrNotFound = errors.New("institution not found")
	ErrConflict = errors.New("institution already exists")
	ErrInvalid  = errors.New("institution rejected by API")
)

// Store reads and writes institutions through the API.
type Store struct {
	api *apiclient.Client
	max int
}

// New returns a Store. maxRecords caps list fetches (<= 0 means no cap).
func New(api *apiclient.Client, maxRecords int) *Store {
	return &Store{api: api, max: maxRecords}
}

func path(id string) string { return "/institutions/" + url.PathEscape(id) }

// List returns every institution as opaque records.
func (s *Store) List(ctx context.Context) ([]filterset.Record, error) {
	recs, err := s.api.ListAll(ctx, "/institutions", "institutions", nil, s.max)
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", mapErr(err))
	}
	return recs, nil
}

// Get returns one institution.
func (s *Store) Get(ctx context.Context, id string) (models.Institution, error) {
	var inst models.Institution
	env, err := s.api.Get(ctx, path(id), nil)
	if err != nil {
		return inst, mapErr(err)
	}
	if err := env.Decode("institution", &inst); err != nil {
		return inst, err
	}
	return inst, nil
}

// Create adds an institution and returns it as stored.
func (s *Store) Create(ctx context.Context, in models.Institution) (models.Institution, error) {
	var out models.Institution
	env, err := s.api.Post(ctx, "/institutions", in)
	if err != nil {
		return out, mapErr(err)
	}
	if err := env.Decode("institution", &out); err != nil {
		return out, err
	}
	return out, nil
}

// Update replaces the editable fields of institution id.
func (s *Store) Update(ctx context.Context, id string, in models.Institution) error {
	_, err := s.api.Put(ctx, path(id), in)
	return mapErr(err)
}

// Delete removes institution id.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.api.Delete(ctx, path(id))
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
