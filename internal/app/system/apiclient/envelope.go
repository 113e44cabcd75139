// internal/app/system/apiclient/envelope.go
package apiclient

import (
	"encoding/json"
	"fmt"

	"github.com/trueportme/adminconsole/internal/app/system/filterset"
)

// Envelope is a decoded response body: {"<resource>": ..., "pagination": {...}}.
type Envelope map[string]json.RawMessage

// Pagination is the optional paging block of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool { return p.Page < p.Pages }

// Has reports whether resource is present.
func (e Envelope) Has(resource string) bool {
	_, ok := e[resource]
	return ok
}

// Decode unmarshals e[resource] into out.
func (e Envelope) Decode(resource string, out any) error {
	raw, ok := e[resource]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingResource, resource)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %q: %w", resource, err)
	}
	return nil
}

// Records decodes e[resource] as a list of opaque records. A JSON null
// yields an empty list.
func (e Envelope) Records(resource string) ([]filterset.Record, error) {
	var recs []filterset.Record
	if err := e.Decode(resource, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []filterset.Record{}
	}
	return recs, nil
}

// Record decodes e[resource] as a single opaque record.
func (e Envelope) Record(resource string) (filterset.Record, error) {
	var rec filterset.Record
	if err := e.Decode(resource, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Pagination returns the paging block, if the response had one.
func (e Envelope) Pagination() (Pagination, bool) {
	raw, ok := e["pagination"]
	if !ok {
		return Pagination{}, false
	}
	var p Pagination
	if err := json.Unmarshal(raw, &p); err != nil {
		return Pagination{}, false
	}
	return p, true
}

// Message returns the top-level "message" string, if any.
func (e Envelope) Message() string {
	var s string
	if raw, ok := e["message"]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}
