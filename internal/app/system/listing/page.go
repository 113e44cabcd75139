// internal/app/system/listing/page.go
package listing

import (
	"net/http"
	"net/url"
	"time"

	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/paging"
)

// Option is one entry of a filter select box.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Filter is one select box of a list page's filter bar.
type Filter struct {
	Name     string
	Label    string
	Selected string
	Options  []Option
}

// Page is the list part of a list page's view model.
type Page struct {
	Filters []Filter
	Rows    []filterset.Record
	Range   paging.Range

	// Total counts the unfiltered list, Matched the filtered one.
	Total   int
	Matched int
	Active  int

	// Query is the encoded active criteria, for paging and export links.
	Query string

	Stale     bool
	Notice    string
	FetchedAt time.Time
}

// NewPage windows res at start and builds the filter bar.
func NewPage(res Result, dims []filterset.Dimension, start int) Page {
	rows, rg := paging.Window(res.Records, start)
	p := Page{
		Rows:      rows,
		Range:     rg,
		Total:     res.Total,
		Matched:   len(res.Records),
		Active:    res.Criteria.Active(),
		Query:     res.Query(dims).Encode(),
		Stale:     res.Stale,
		FetchedAt: res.FetchedAt,
	}
	if res.Err != nil {
		p.Notice = "Could not refresh the list. "
		if res.Stale {
			p.Notice += "Showing the last loaded data."
		} else {
			p.Notice += "Please try again."
		}
	}
	for _, d := range dims {
		p.Filters = append(p.Filters, filterFor(d, res))
	}
	return p
}

func filterFor(d filterset.Dimension, res Result) Filter {
	sel := res.Selected[d.Name]
	f := Filter{Name: d.Name, Label: d.Label, Selected: sel}
	if f.Label == "" {
		f.Label = d.Name
	}
	switch d.Kind {
	case filterset.KindBool:
		f.Options = []Option{
			{Value: "true", Label: "Yes", Selected: sel == "true"},
			{Value: "false", Label: "No", Selected: sel == "false"},
		}
	default:
		for _, v := range res.Options[d.Name] {
			f.Options = append(f.Options, Option{Value: v, Label: v, Selected: v == sel})
		}
	}
	return f
}

// IsHTMX reports whether r was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Values returns the request's filter and paging parameters. Form posts
// from the filter bar and plain query strings are treated alike.
func Values(r *http.Request) url.Values {
	if err := r.ParseForm(); err != nil {
		return r.URL.Query()
	}
	return r.Form
}
