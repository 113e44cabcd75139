// internal/app/store/verifiers/verifierstore.go
package verifiers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
)

// Store reads the verifier directory.
type Store struct {
	api *apiclient.Client
}

// New returns a Store.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// List returns every verifier.
func (s *Store) List(ctx context.Context) ([]filterset.Record, error) {
	recs, err := s.api.ListAll(ctx, "/verifiers", "verifiers", nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list verifiers: %w", err)
	}
	return recs, nil
}

// Directory returns the id and name of every verifier.
func (s *Store) Directory(ctx context.Context) ([]namecache.Entry, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return entries(recs), nil
}

// Names looks up the names of ids in one request. Ids the API does not
// know are absent from the result.
func (s *Store) Names(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	env, err := s.api.Get(ctx, "/verifiers", url.Values{"ids": {strings.Join(ids, ",")}})
	if err != nil {
		return nil, fmt.Errorf("verifier names: %w", err)
	}
	recs, err := env.Records("verifiers")
	if err != nil {
		return nil, err
	}
	for _, e := range entries(recs) {
		out[e.ID] = e.Name
	}
	return out, nil
}

func entries(recs []filterset.Record) []namecache.Entry {
	out := make([]namecache.Entry, 0, len(recs))
	for _, r := range recs {
		if e := namecache.EntryFrom(r, ""); e.ID != "" {
			out = append(out, e)
		}
	}
	return out
}
