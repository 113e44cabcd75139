package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trueportme/adminconsole/internal/app/features/health"
	"github.com/trueportme/adminconsole/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type mongoStub struct{ err error }

func (m mongoStub) Ping(context.Context, *readpref.ReadPref) error { return m.err }

type apiStub struct{ err error }

func (a apiStub) Ping(context.Context) error { return a.err }

type response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	API      string `json:"api"`
	Message  string `json:"message"`
}

func serve(t *testing.T, h *health.Handler) (int, response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec.Code, resp
}

func TestServe(t *testing.T) {
	down := errors.New("down")
	tests := []struct {
		name       string
		mongo      health.MongoPinger
		api        error
		wantCode   int
		wantStatus string
		wantDB     string
		wantAPI    string
	}{
		{"all up", mongoStub{}, nil, http.StatusOK, "ok", "connected", "reachable"},
		{"no database", nil, nil, http.StatusOK, "ok", "disabled", "reachable"},
		{"mongo down", mongoStub{err: down}, nil, http.StatusServiceUnavailable, "error", "disconnected", "reachable"},
		{"api down", mongoStub{}, down, http.StatusServiceUnavailable, "error", "connected", "unreachable"},
		{"both down", mongoStub{err: down}, down, http.StatusServiceUnavailable, "error", "disconnected", "unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(tt.mongo, apiStub{err: tt.api}, zap.NewNop())
			code, resp := serve(t, h)
			if code != tt.wantCode || resp.Status != tt.wantStatus || resp.Database != tt.wantDB || resp.API != tt.wantAPI {
				t.Errorf("got %d %+v", code, resp)
			}
			if tt.wantStatus == "error" && resp.Message == "" {
				t.Errorf("missing message")
			}
		})
	}
}

func TestServe_AgainstFakeAPI(t *testing.T) {
	api := testutil.NewFakeAPI(t, nil)
	h := health.NewHandler(nil, api.Client, zap.NewNop())

	code, resp := serve(t, h)
	if code != http.StatusOK || resp.API != "reachable" {
		t.Errorf("got %d %+v", code, resp)
	}
}
