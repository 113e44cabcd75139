// internal/app/store/profilerequests/profilerequeststore.go
package profilerequests

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
	ErrNotFound = errors.New("profile request not found")
	ErrConflict = errors.New("profile request already decided")
)

// Store reads and decides students' profile-update requests.
type Store struct {
	api *apiclient.Client
}

// New returns a Store.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// List returns the institution's profile-update requests.
func (s *Store) List(ctx context.Context) ([]filterset.Record, error) {
	recs, err := s.api.ListAll(ctx, "/profile-requests", "requests", nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list profile requests: %w", mapErr(err))
	}
	return recs, nil
}

// Approve applies request id to the student's profile.
func (s *Store) Approve(ctx context.Context, id string) error {
	_, err := s.api.Post(ctx, "/profile-requests/"+url.PathEscape(id)+"/approve", models.Decision{})
	return mapErr(err)
}

// Reject declines request id.
func (s *Store) Reject(ctx context.Context, id, reason string) error {
	_, err := s.api.Post(ctx, "/profile-requests/"+url.PathEscape(id)+"/reject", models.Decision{Reason: reason})
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
