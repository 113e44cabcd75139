// internal/app/store/students/studentstore.go
package students

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
	ErrNotFound = errors.New("student not found")
	ErrConflict = errors.New("a student with this email already exists")
	ErrInvalid  = errors.New("student rejected by API")
)

// Store manages the institution's students through the API.
type Store struct {
	api *apiclient.Client
	max int
}

// New returns a Store. maxRecords caps list fetches (<= 0 means no cap).
func New(api *apiclient.Client, maxRecords int) *Store {
	return &Store{api: api, max: maxRecords}
}

func path(id string) string { return "/students/" + url.PathEscape(id) }

// List returns every student of the signed-in admin's institution.
func (s *Store) List(ctx context.Context) ([]filterset.Record, error) {
	recs, err := s.api.ListAll(ctx, "/students", "students", nil, s.max)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", mapErr(err))
	}
	return recs, nil
}

// Get returns one student.
func (s *Store) Get(ctx context.Context, id string) (models.Student, error) {
	var st models.Student
	env, err := s.api.Get(ctx, path(id), nil)
	if err != nil {
		return st, mapErr(err)
	}
	if err := env.Decode("student", &st); err != nil {
		return st, err
	}
	return st, nil
}

// Create adds a student.
func (s *Store) Create(ctx context.Context, in models.Student) (models.Student, error) {
	var out models.Student
	env, err := s.api.Post(ctx, "/students", in)
	if err != nil {
		return out, mapErr(err)
	}
	if err := env.Decode("student", &out); err != nil {
		return out, err
	}
	return out, nil
}

// Update replaces the editable fields of student id.
func (s *Store) Update(ctx context.Context, id string, in models.Student) error {
	_, err := s.api.Put(ctx, path(id), in)
	return mapErr(err)
}

// Delete removes student id.
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
