package events

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	eventstore "github.com/trueportme/adminconsole/internal/app/store/events"
	studentstore "github.com/trueportme/adminconsole/internal/app/store/students"
	verifierstore "github.com/trueportme/adminconsole/internal/app/store/verifiers"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"github.com/trueportme/adminconsole/internal/testutil"
	"go.uber.org/zap"
)

var eventFixtures = []map[string]any{
	{"_id": "e1", "title": "Science Fair", "category": "Science", "status": "PUBLISHED",
		"startDate": "2026-11-02T00:00:00Z", "endDate": "2026-11-03T00:00:00Z"},
	{"_id": "e2", "title": "Debate Cup", "category": "Debate", "status": "DRAFT"},
	{"_id": "e3", "title": "Robotics Day", "category": "Science", "status": "DRAFT"},
}

var verifierDirectory = map[string]string{"v1": "Asha", "v2": "Ravi", "v3": "Meera"}

type fakeBackend struct {
	mu         sync.Mutex
	created    []models.Event
	assigned   []models.RoleAssignment
	unassigned []string
	awards     []models.AwardRanking
	nameCalls  []string
}

func newTestHandler(t *testing.T) (*Handler, *fakeBackend, *testutil.AuditRecorder) {
	t.Helper()
	be := &fakeBackend{}
	api := testutil.NewFakeAPI(t, func(r chi.Router) {
		r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"events": eventFixtures})
		})
		r.Post("/events", func(w http.ResponseWriter, r *http.Request) {
			var in models.Event
			if err := testutil.ReadJSON(r, &in); err != nil {
				testutil.WriteError(w, http.StatusBadRequest, "bad body")
				return
			}
			be.mu.Lock()
			be.created = append(be.created, in)
			be.mu.Unlock()
			in.ID = "e-new"
			testutil.WriteJSON(w, http.StatusCreated, map[string]any{"event": in})
		})
		r.Get("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") != "e1" {
				testutil.WriteError(w, http.StatusNotFound, "event not found")
				return
			}
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"event": eventFixtures[0]})
		})
		r.Delete("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/events/{id}/roles", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"roles": []map[string]any{
				{"_id": "ra1", "role": "judge", "userId": map[string]any{"_id": "v1", "name": "Asha"}},
				{"_id": "ra2", "role": "coordinator", "userId": "v2"},
				{"_id": "ra3", "role": "incharge", "userId": "v3", "userName": "Meera (inline)"},
				{"_id": "ra4", "role": "judge", "userId": "ghost"},
				{"_id": "ra5", "role": "judge"},
			}})
		})
		r.Post("/events/{id}/roles", func(w http.ResponseWriter, r *http.Request) {
			var a models.RoleAssignment
			_ = testutil.ReadJSON(r, &a)
			if a.UserID == "v1" {
				testutil.WriteError(w, http.StatusConflict, "already assigned")
				return
			}
			be.mu.Lock()
			be.assigned = append(be.assigned, a)
			be.mu.Unlock()
			testutil.WriteJSON(w, http.StatusCreated, map[string]any{"message": "ok"})
		})
		r.Delete("/events/{id}/roles/{aid}", func(w http.ResponseWriter, r *http.Request) {
			be.mu.Lock()
			be.unassigned = append(be.unassigned, chi.URLParam(r, "aid"))
			be.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/events/{id}/awards", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"awards": []models.AwardRanking{
				{Rank: 1, StudentID: "s2", Title: "Gold"},
			}})
		})
		r.Put("/events/{id}/awards", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Rankings []models.AwardRanking `json:"rankings"`
			}
			_ = testutil.ReadJSON(r, &body)
			be.mu.Lock()
			be.awards = body.Rankings
			be.mu.Unlock()
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"message": "ok"})
		})
		r.Get("/verifiers", func(w http.ResponseWriter, r *http.Request) {
			ids := r.URL.Query().Get("ids")
			be.mu.Lock()
			be.nameCalls = append(be.nameCalls, ids)
			be.mu.Unlock()
			var out []map[string]any
			for _, id := range strings.Split(ids, ",") {
				if name, ok := verifierDirectory[id]; ok {
					out = append(out, map[string]any{"_id": id, "name": name})
				}
			}
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"verifiers": out})
		})
		r.Get("/students", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"students": []map[string]any{
				{"_id": "s1", "name": "Zoya"},
				{"_id": "s2", "name": "Arjun"},
			}})
		})
	})

	rec := &testutil.AuditRecorder{}
	logger := zap.NewNop()
	h := NewHandler(
		eventstore.New(api.Client),
		verifierstore.New(api.Client),
		studentstore.New(api.Client, 0),
		nil,
		viewstate.NewRegistry(time.Hour),
		auditlog.New(rec, logger, auditlog.Config{}),
		uierrors.NewErrorLogger(logger),
		logger,
	)
	return h, be, rec
}

func TestLoad_CategoryAndStatus(t *testing.T) {
	h, _, _ := newTestHandler(t)
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/events?category=Science&status=DRAFT", testutil.InstituteAdmin())

	data, ok := h.load(httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("load reported superseded")
	}
	want := []listItem{{ID: "e3", Title: "Robotics Day", Category: "Science", Status: "DRAFT"}}
	if diff := cmp.Diff(want, data.Items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestLoad_ParsesDates(t *testing.T) {
	h, _, _ := newTestHandler(t)
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/events?status=PUBLISHED", testutil.InstituteAdmin())

	data, _ := h.load(httptest.NewRecorder(), req)
	if len(data.Items) != 1 {
		t.Fatalf("items = %+v", data.Items)
	}
	if got := data.Items[0].StartDate; !got.Equal(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v", got)
	}
}

func TestHandleCreate_Success(t *testing.T) {
	h, be, audits := newTestHandler(t)
	form := url.Values{
		"title":       {"Quiz Night"},
		"category":    {"Quiz"},
		"status":      {"DRAFT"},
		"startDate":   {"2026-12-01"},
		"endDate":     {"2026-12-01"},
		"description": {`<b>Bring pens</b><img src=x onerror=alert(1)>`},
	}
	req := testutil.NewFormRequest("/events?status=DRAFT", form, testutil.InstituteAdmin())
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/events" {
		t.Errorf("Location = %q", loc)
	}
	if len(be.created) != 1 {
		t.Fatalf("created = %v", be.created)
	}
	got := be.created[0]
	if got.Title != "Quiz Night" || !got.StartDate.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("created = %+v", got)
	}
	if strings.Contains(got.Description, "onerror") {
		t.Errorf("description not sanitized: %q", got.Description)
	}
	if diff := cmp.Diff([]string{audit.EventEventCreated}, audits.Types()); diff != "" {
		t.Errorf("audit (-want +got):\n%s", diff)
	}
}

func TestFormValidation(t *testing.T) {
	tests := []struct {
		name  string
		form  url.Values
		field string
	}{
		{"missing title", url.Values{"startDate": {"2026-01-01"}, "endDate": {"2026-01-02"}}, "Title"},
		{"bad status", url.Values{"title": {"X"}, "status": {"LIVE"}, "startDate": {"2026-01-01"}, "endDate": {"2026-01-02"}}, "Status"},
		{"missing start", url.Values{"title": {"X"}, "endDate": {"2026-01-02"}}, "StartDate"},
		{"unparseable end", url.Values{"title": {"X"}, "startDate": {"2026-01-01"}, "endDate": {"2026-13-45"}}, "EndDate"},
		{"end before start", url.Values{"title": {"X"}, "startDate": {"2026-01-05"}, "endDate": {"2026-01-02"}}, "EndDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewFormRequest("/events", tt.form, nil)
			if err := req.ParseForm(); err != nil {
				t.Fatal(err)
			}
			res := readForm(req).validate()
			if _, ok := res.Fields()[tt.field]; !ok {
				t.Errorf("expected error on %s, got %+v", tt.field, res.Errors)
			}
		})
	}
}

func TestFromModel_FormatsDates(t *testing.T) {
	f := fromModel(models.Event{ID: "e1", Title: "T", StartDate: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)})
	if f.StartDate != "2026-03-04" || f.EndDate != "" {
		t.Errorf("dates = %q / %q", f.StartDate, f.EndDate)
	}
}

func TestHandleDelete(t *testing.T) {
	h, _, audits := newTestHandler(t)
	req := testutil.NewFormRequest("/events/e2/delete?category=Debate", url.Values{}, testutil.InstituteAdmin())
	req = testutil.WithChiURLParam(req, "id", "e2")
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/events?category=Debate" {
		t.Errorf("Location = %q", loc)
	}
	if diff := cmp.Diff([]string{audit.EventEventDeleted}, audits.Types()); diff != "" {
		t.Errorf("audit (-want +got):\n%s", diff)
	}
}
