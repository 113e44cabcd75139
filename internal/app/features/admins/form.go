// internal/app/features/admins/form.go
package admins

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	adminstore "github.com/trueportme/adminconsole/internal/app/store/admins"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/inputval"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"go.uber.org/zap"
)

var formBack = func() navigation.BackURLOptions {
	o := navigation.AdminsBackURL
	o.PreserveQuery = nil
	return o
}()

type adminInput struct {
	Name          string `validate:"required,max=200" label:"Name"`
	Email         string `validate:"required,email,max=200" label:"Email"`
	Phone         string `validate:"omitempty,min=10,max=15,digits" label:"Phone"`
	Password      string `validate:"required,min=8,max=128" label:"Password"`
	InstitutionID string `validate:"required" label:"Institution"`
}

func readForm(r *http.Request) (formData, string) {
	return formData{
		Name:          formutil.Trimmed(r, "name"),
		Email:         formutil.Trimmed(r, "email"),
		Phone:         formutil.Trimmed(r, "phone"),
		InstitutionID: formutil.Trimmed(r, "institutionId"),
	}, r.FormValue("password")
}

func (f formData) validate(password string) inputval.Result {
	return inputval.Validate(adminInput{
		Name:          f.Name,
		Email:         f.Email,
		Phone:         f.Phone,
		Password:      password,
		InstitutionID: f.InstitutionID,
	})
}

// institutionChoices lists institutions for the form's select. A failure
// leaves the list empty; the form still renders.
func (h *Handler) institutionChoices(r *http.Request) []namecache.Entry {
	if h.Institutions == nil {
		return nil
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "list institutions for admin form")
	defer cancel()

	recs, err := h.Institutions.List(ctx)
	if err != nil {
		h.Log.Warn("institution choices unavailable", zap.Error(err))
		return nil
	}
	names := listing.ViewFor(h.Views, r).Names()
	out := make([]namecache.Entry, 0, len(recs))
	for _, rec := range recs {
		e := namecache.EntryFrom(rec, "")
		if e.ID == "" {
			continue
		}
		names.RecordNames(e)
		out = append(out, e)
	}
	return out
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData, msg string) {
	data.Institutions = h.institutionChoices(r)
	formutil.SetBase(&data.Base, r, "New Institute Admin", "/admins")
	if msg != "" {
		data.SetError(msg)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "admin_form", data)
}

// ServeNew renders the "New Institute Admin" form. ?institution=<id>
// preselects the institution.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{InstitutionID: r.URL.Query().Get("institution")}, "")
}

// HandleCreate processes the New Institute Admin form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/admins")
		return
	}
	data, password := readForm(r)
	if res := data.validate(password); res.HasErrors() {
		data.Fields = res.Fields()
		h.renderForm(w, r, data, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "create admin")
	defer cancel()

	created, err := h.Store.Create(ctx, models.NewAdmin{
		Name:          data.Name,
		Email:         data.Email,
		Phone:         data.Phone,
		Password:      password,
		InstitutionID: data.InstitutionID,
	})
	if err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventAdminCreated, "admin", "", err)
		if msg := formMessage(err); msg != "" {
			h.renderForm(w, r, data, msg)
			return
		}
		h.ErrLog.LogAPIError(w, r, "create admin failed", err, "/admins")
		return
	}
	h.Audit.Action(ctx, r, audit.EventAdminCreated, "admin", created.ID, map[string]string{
		"email":          created.Email,
		"institution_id": data.InstitutionID,
	})
	listing.ViewFor(h.Views, r).Forget("admins")

	http.Redirect(w, r, navigation.SafeBackURL(r, formBack), http.StatusSeeOther)
}

func formMessage(err error) string {
	switch {
	case errors.Is(err, adminstore.ErrConflict):
		return "An admin with that email already exists."
	case errors.Is(err, adminstore.ErrInvalid):
		if msg := apiclient.MessageOf(err); msg != "" {
			return msg
		}
		return "The admin could not be created. Check the fields and try again."
	}
	return ""
}
