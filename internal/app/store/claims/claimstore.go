// internal/app/store/claims/claimstore.go
package claims

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
	ErrNotFound = errors.New("claim request not found")
	// ErrConflict is returned when the request was already decided.
	ErrConflict = errors.New("claim request already decided")
)

// Store reads and decides institution claim requests.
type Store struct {
	api *apiclient.Client
}

// New returns a Store.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// List returns every claim request.
func (s *Store) List(ctx context.Context) ([]filterset.Record, error) {
	recs, err := s.api.ListAll(ctx, "/claims", "claims", nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", mapErr(err))
	}
	return recs, nil
}

// Approve accepts claim id.
func (s *Store) Approve(ctx context.Context, id string) error {
	_, err := s.api.Post(ctx, "/claims/"+url.PathEscape(id)+"/approve", models.Decision{})
	return mapErr(err)
}

// Reject declines claim id with an optional reason.
func (s *Store) Reject(ctx context.Context, id, reason string) error {
	_, err := s.api.Post(ctx, "/claims/"+url.PathEscape(id)+"/reject", models.Decision{Reason: reason})
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
	}
	return err
}
