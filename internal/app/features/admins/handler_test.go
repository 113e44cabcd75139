package admins

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	uierrors "github.com/trueportme/adminconsole/internal/app/features/errors"
	adminstore "github.com/trueportme/adminconsole/internal/app/store/admins"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	institutionstore "github.com/trueportme/adminconsole/internal/app/store/institutions"
	"github.com/trueportme/adminconsole/internal/app/system/auditlog"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"github.com/trueportme/adminconsole/internal/testutil"
	"go.uber.org/zap"
)

var fixtures = []map[string]any{
	{"_id": "a1", "name": "Asha", "email": "asha@alpha.edu", "status": "ACTIVE",
		"institutionId": map[string]any{"_id": "i1", "name": "Alpha School"}},
	{"_id": "a2", "name": "Bala", "email": "bala@beta.edu", "status": "INACTIVE",
		"institutionId": "i2", "institutionName": "Beta College"},
	{"_id": "a3", "name": "Chitra", "email": "chitra@alpha.edu", "status": "ACTIVE",
		"institutionId": "i1"},
	{"_id": "a4", "name": "Dev", "email": "dev@nowhere.edu", "status": "ACTIVE",
		"institutionId": "i9"},
}

type fakeBackend struct {
	mu      sync.Mutex
	created []models.NewAdmin
}

func newTestHandler(t *testing.T) (*Handler, *fakeBackend, *testutil.AuditRecorder) {
	t.Helper()
	be := &fakeBackend{}
	api := testutil.NewFakeAPI(t, func(r chi.Router) {
		r.Get("/admins", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"admins": fixtures})
		})
		r.Get("/institutions", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"institutions": []map[string]any{
				{"_id": "i1", "name": "Alpha School"},
				{"_id": "i2", "name": "Beta College"},
			}})
		})
		r.Post("/admins", func(w http.ResponseWriter, r *http.Request) {
			var in models.NewAdmin
			if err := testutil.ReadJSON(r, &in); err != nil {
				testutil.WriteError(w, http.StatusBadRequest, "bad body")
				return
			}
			if in.Email == "taken@alpha.edu" {
				testutil.WriteError(w, http.StatusConflict, "email already registered")
				return
			}
			be.mu.Lock()
			be.created = append(be.created, in)
			be.mu.Unlock()
			testutil.WriteJSON(w, http.StatusCreated, map[string]any{"admin": models.Admin{
				ID: "a-new", Name: in.Name, Email: in.Email, InstitutionID: in.InstitutionID,
			}})
		})
		r.Delete("/admins/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") == "gone" {
				testutil.WriteError(w, http.StatusNotFound, "no such admin")
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	rec := &testutil.AuditRecorder{}
	logger := zap.NewNop()
	h := NewHandler(
		adminstore.New(api.Client),
		institutionstore.New(api.Client, 0),
		viewstate.NewRegistry(time.Hour),
		auditlog.New(rec, logger, auditlog.Config{}),
		uierrors.NewErrorLogger(logger),
		logger,
	)
	return h, be, rec
}

func TestLoad_InstitutionFilter(t *testing.T) {
	h, _, _ := newTestHandler(t)
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admins?institution=Alpha+School", testutil.SuperAdmin())

	data, ok := h.load(httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("load reported superseded")
	}

	var ids []string
	for _, it := range data.Items {
		ids = append(ids, it.ID)
	}
	// a3 references i1 by id only; the name is learned from a1's embedded object.
	if diff := cmp.Diff([]string{"a1", "a3"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}

	var opts []string
	for _, o := range data.Page.Filters[0].Options {
		opts = append(opts, o.Value)
	}
	if diff := cmp.Diff([]string{"Alpha School", "Beta College"}, opts); diff != "" {
		t.Errorf("institution options (-want +got):\n%s", diff)
	}
}

func TestLoad_UnknownInstitutionHasNoName(t *testing.T) {
	h, _, _ := newTestHandler(t)
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admins?status=ACTIVE", testutil.SuperAdmin())

	data, _ := h.load(httptest.NewRecorder(), req)
	byID := map[string]listItem{}
	for _, it := range data.Items {
		byID[it.ID] = it
	}
	if got := byID["a4"].Institution; got != "" {
		t.Errorf("a4 institution = %q, want empty", got)
	}
	if _, ok := byID["a2"]; ok {
		t.Errorf("inactive admin a2 should be filtered out")
	}
}

func TestHandleCreate_Success(t *testing.T) {
	h, be, audits := newTestHandler(t)
	form := url.Values{
		"name":          {"Esha"},
		"email":         {"esha@alpha.edu"},
		"password":      {"s3cret-pass"},
		"institutionId": {"i1"},
	}
	req := testutil.NewFormRequest("/admins?institution=Alpha+School", form, testutil.SuperAdmin())
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/admins" {
		t.Errorf("Location = %q", loc)
	}
	want := []models.NewAdmin{{Name: "Esha", Email: "esha@alpha.edu", Password: "s3cret-pass", InstitutionID: "i1"}}
	if diff := cmp.Diff(want, be.created); diff != "" {
		t.Errorf("created (-want +got):\n%s", diff)
	}
	ev := audits.Events()
	if len(ev) != 1 || ev[0].EventType != audit.EventAdminCreated || ev[0].Details["institution_id"] != "i1" {
		t.Errorf("audit = %+v", ev)
	}
	if _, ok := ev[0].Details["password"]; ok {
		t.Errorf("password leaked into audit details")
	}
}

func TestFormValidation(t *testing.T) {
	base := func() url.Values {
		return url.Values{"name": {"X"}, "email": {"x@y.in"}, "password": {"longenough"}, "institutionId": {"i1"}}
	}
	tests := []struct {
		name  string
		edit  func(url.Values)
		field string
	}{
		{"missing name", func(v url.Values) { v.Del("name") }, "Name"},
		{"bad email", func(v url.Values) { v.Set("email", "nope") }, "Email"},
		{"short password", func(v url.Values) { v.Set("password", "short") }, "Password"},
		{"no institution", func(v url.Values) { v.Del("institutionId") }, "InstitutionID"},
		{"phone letters", func(v url.Values) { v.Set("phone", "98765abcde") }, "Phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := base()
			tt.edit(form)
			req := testutil.NewFormRequest("/admins", form, nil)
			if err := req.ParseForm(); err != nil {
				t.Fatal(err)
			}
			data, pw := readForm(req)
			res := data.validate(pw)
			if _, ok := res.Fields()[tt.field]; !ok {
				t.Errorf("expected error on %s, got %+v", tt.field, res.Errors)
			}
		})
	}
}

func TestInstitutionChoicesFeedNames(t *testing.T) {
	h, _, _ := newTestHandler(t)
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admins/new", testutil.SuperAdmin())

	choices := h.institutionChoices(req)
	if len(choices) != 2 || choices[1].Name != "Beta College" {
		t.Fatalf("choices = %+v", choices)
	}
	if name, ok := listing.ViewFor(h.Views, req).Names().Name("i2"); !ok || name != "Beta College" {
		t.Errorf("cached name = %q, %v", name, ok)
	}
}

func TestHandleDelete_NotFoundIsIdempotent(t *testing.T) {
	h, _, audits := newTestHandler(t)
	req := testutil.NewFormRequest("/admins/gone/delete?status=ACTIVE", url.Values{}, testutil.SuperAdmin())
	req = testutil.WithChiURLParam(req, "id", "gone")
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admins?status=ACTIVE" {
		t.Errorf("Location = %q", loc)
	}
	if len(audits.Events()) != 0 {
		t.Errorf("unexpected audit events %+v", audits.Events())
	}
}
