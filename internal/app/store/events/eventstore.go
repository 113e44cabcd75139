// internal/app/store/events/eventstore.go
package events

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
	ErrNotFound = errors.New("event not found")
	ErrConflict = errors.New("event conflict")
	ErrInvalid  = errors.New("event rejected by API")
)

// Store manages events, their verifier roles, and award rankings.
type Store struct {
	api *apiclient.Client
}

// New returns a Store.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

func path(id string, rest ...string) string {
	p := "/events/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

// List returns every event of the institution.
func (s *Store) List(ctx context.Context) ([]filterset.Record, error) {
	recs, err := s.api.ListAll(ctx, "/events", "events", nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", mapErr(err))
	}
	return recs, nil
}

// Get returns one event.
func (s *Store) Get(ctx context.Context, id string) (models.Event, error) {
	var ev models.Event
	env, err := s.api.Get(ctx, path(id), nil)
	if err != nil {
		return ev, mapErr(err)
	}
	if err := env.Decode("event", &ev); err != nil {
		return ev, err
	}
	return ev, nil
}

// Create adds an event.
func (s *Store) Create(ctx context.Context, in models.Event) (models.Event, error) {
	var out models.Event
	env, err := s.api.Post(ctx, "/events", in)
	if err != nil {
		return out, mapErr(err)
	}
	if err := env.Decode("event", &out); err != nil {
		return out, err
	}
	return out, nil
}

// Update replaces the editable fields of event id.
func (s *Store) Update(ctx context.Context, id string, in models.Event) error {
	_, err := s.api.Put(ctx, path(id), in)
	return mapErr(err)
}

// Delete removes event id.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.api.Delete(ctx, path(id))
	return mapErr(err)
}

// Roles returns the verifier role assignments of event id. Each record's
// userId may be a bare id or an embedded user object.
func (s *Store) Roles(ctx context.Context, id string) ([]filterset.Record, error) {
	env, err := s.api.Get(ctx, path(id, "roles"), nil)
	if err != nil {
		return nil, mapErr(err)
	}
	return env.Records("roles")
}

// AssignRole gives a verifier a role on event id.
func (s *Store) AssignRole(ctx context.Context, id string, a models.RoleAssignment) error {
	if !models.IsEventRole(a.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalid, a.Role)
	}
	_, err := s.api.Post(ctx, path(id, "roles"), a)
	return mapErr(err)
}

// UnassignRole removes assignment assignmentID from event id.
func (s *Store) UnassignRole(ctx context.Context, id, assignmentID string) error {
	_, err := s.api.Delete(ctx, path(id, "roles", assignmentID))
	return mapErr(err)
}

// Awards returns the award rankings of event id.
func (s *Store) Awards(ctx context.Context, id string) ([]models.AwardRanking, error) {
	env, err := s.api.Get(ctx, path(id, "awards"), nil)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.AwardRanking
	if err := env.Decode("awards", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignAwards replaces the award rankings of event id.
func (s *Store) AssignAwards(ctx context.Context, id string, rankings []models.AwardRanking) error {
	_, err := s.api.Put(ctx, path(id, "awards"), map[string]any{"rankings": rankings})
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
