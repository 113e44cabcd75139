// internal/app/store/stats/statsstore.go
package stats

import (
	"context"
	"fmt"
	"net/url"

	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// Counter names one dashboard figure and where to count it.
type Counter struct {
	Key   string
	Label string
	// Path is the API collection counted; Link is the console page listing
	// it, empty when there is none.
	Path     string
	Link     string
	Resource string
	Query    url.Values
}

var pending = url.Values{"status": {models.StatusPending}}

// SuperAdminCounters are the platform-wide overview figures.
var SuperAdminCounters = []Counter{
	{Key: "institutions", Label: "Institutions", Path: "/institutions", Link: "/institutions", Resource: "institutions"},
	{Key: "admins", Label: "Institute admins", Path: "/admins", Link: "/admins", Resource: "admins"},
	{Key: "claims", Label: "Pending claims", Path: "/claims", Link: "/claims?status=PENDING", Resource: "claims", Query: pending},
}

// InstituteAdminCounters are the overview figures of one institution.
var InstituteAdminCounters = []Counter{
	{Key: "students", Label: "Students", Path: "/students", Link: "/students", Resource: "students"},
	{Key: "events", Label: "Events", Path: "/events", Link: "/events", Resource: "events"},
	{Key: "verifiers", Label: "Verifiers", Path: "/verifiers", Resource: "verifiers"},
	{Key: "profile-requests", Label: "Pending profile requests", Path: "/profile-requests", Link: "/profile-requests?status=PENDING", Resource: "requests", Query: pending},
}

// Store computes dashboard overview figures.
type Store struct {
	api   *apiclient.Client
	limit int
}

// New returns a Store that runs at most four count requests at once.
func New(api *apiclient.Client) *Store {
	return &Store{api: api, limit: 4}
}

// Overview counts every counter concurrently. The first failure cancels
// the rest and is returned.
func (s *Store) Overview(ctx context.Context, counters []Counter) ([]models.Stat, error) {
	out := make([]models.Stat, len(counters))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, c := range counters {
		g.Go(func() error {
			n, err := s.count(ctx, c)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.Key, err)
			}
			out[i] = models.Stat{Key: c.Key, Label: c.Label, Value: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// count asks for a single-record page and reads the total from the
// pagination block, falling back to the length of the list.
func (s *Store) count(ctx context.Context, c Counter) (int, error) {
	q := url.Values{}
	for k, v := range c.Query {
		q[k] = v
	}
	q.Set("limit", "1")
	env, err := s.api.Get(ctx, c.Path, q)
	if err != nil {
		return 0, err
	}
	if p, ok := env.Pagination(); ok {
		return p.Total, nil
	}
	recs, err := env.Records(c.Resource)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}
