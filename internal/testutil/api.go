// internal/testutil/api.go
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
)

// FakeAPI is an in-process stand-in for the REST API. Routes registered
// on it are served under /api, which is also the client's base path.
type FakeAPI struct {
	Server *httptest.Server
	Client *apiclient.Client
}

// NewFakeAPI starts a fake API whose routes are installed by routes and
// returns it with a client pointed at it. Both are closed with the test.
func NewFakeAPI(t *testing.T, routes func(r chi.Router)) *FakeAPI {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		if routes != nil {
			routes(api)
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL + "/api"}, nil)
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return &FakeAPI{Server: srv, Client: client}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an API error body.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}

// ReadJSON decodes the request body into v.
func ReadJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
