// internal/app/system/apiclient/pager.go
package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/trueportme/adminconsole/internal/app/system/filterset"
)

// PageLimit is the page size requested when walking a whole list.
const PageLimit = 100

// ListAll walks every page of a list endpoint and returns all records of
// resource, stopping early once maxRecords records are collected (maxRecords <= 0 means
// no cap). Responses without pagination are treated as a single page.
func (c *Client) ListAll(ctx context.Context, path, resource string, q url.Values, maxRecords int) ([]filterset.Record, error) {
	params := url.Values{}
	for k, v := range q {
		params[k] = append([]string(nil), v...)
	}
	params.Set("limit", strconv.Itoa(PageLimit))

	var all []filterset.Record
	for page := 1; ; page++ {
		params.Set("page", strconv.Itoa(page))
		env, err := c.Get(ctx, path, params)
		if err != nil {
			return nil, err
		}
		recs, err := env.Records(resource)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)

		if maxRecords > 0 && len(all) >= maxRecords {
			return all[:maxRecords], nil
		}
		p, ok := env.Pagination()
		if !ok || !p.HasNext() || len(recs) == 0 {
			break
		}
	}
	if all == nil {
		all = []filterset.Record{}
	}
	return all, nil
}
