// internal/app/features/institutions/form.go
package institutions

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	institutionstore "github.com/trueportme/adminconsole/internal/app/store/institutions"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/htmlsanitize"
	"github.com/trueportme/adminconsole/internal/app/system/inputval"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// formBack drops filter preservation: the form's own state, type and
// status fields share names with the list filters.
var formBack = func() navigation.BackURLOptions {
	o := navigation.InstitutionsBackURL
	o.PreserveQuery = nil
	return o
}()

// institutionInput defines validation rules for the institution form.
type institutionInput struct {
	Name    string `validate:"required,max=200" label:"Institution name"`
	Type    string `validate:"required,oneof=SCHOOL COLLEGE NGO COMPANY GOVERNMENT" label:"Type"`
	Status  string `validate:"omitempty,oneof=ACTIVE PENDING SUSPENDED" label:"Status"`
	Email   string `validate:"omitempty,email,max=200" label:"Email"`
	Phone   string `validate:"omitempty,max=20" label:"Phone"`
	Website string `validate:"omitempty,max=300" label:"Website"`
	State   string `validate:"required,max=100" label:"State"`
	Pincode string `validate:"omitempty,len=6,digits" label:"Pincode"`
}

func readForm(r *http.Request) formData {
	return formData{
		Name:        formutil.Trimmed(r, "name"),
		Type:        formutil.Trimmed(r, "type"),
		Status:      formutil.Trimmed(r, "status"),
		Email:       formutil.Trimmed(r, "email"),
		Phone:       formutil.Trimmed(r, "phone"),
		Website:     formutil.Trimmed(r, "website"),
		Description: formutil.Trimmed(r, "description"),
		Line1:       formutil.Trimmed(r, "line1"),
		City:        formutil.Trimmed(r, "city"),
		District:    formutil.Trimmed(r, "district"),
		State:       formutil.Trimmed(r, "state"),
		Pincode:     formutil.Trimmed(r, "pincode"),
	}
}

func (f formData) validate() inputval.Result {
	return inputval.Validate(institutionInput{
		Name:    f.Name,
		Type:    f.Type,
		Status:  f.Status,
		Email:   f.Email,
		Phone:   f.Phone,
		Website: f.Website,
		State:   f.State,
		Pincode: f.Pincode,
	})
}

func (f formData) model() models.Institution {
	return models.Institution{
		Name:        f.Name,
		Type:        f.Type,
		Status:      f.Status,
		Email:       f.Email,
		Phone:       f.Phone,
		Website:     f.Website,
		Description: htmlsanitize.Sanitize(f.Description),
		Address: models.Address{
			Line1:    f.Line1,
			City:     f.City,
			District: f.District,
			State:    f.State,
			Pincode:  f.Pincode,
		},
	}
}

func fromModel(inst models.Institution) formData {
	return formData{
		ID:          inst.ID,
		Name:        inst.Name,
		Type:        inst.Type,
		Status:      inst.Status,
		Email:       inst.Email,
		Phone:       inst.Phone,
		Website:     inst.Website,
		Description: inst.Description,
		Line1:       inst.Address.Line1,
		City:        inst.Address.City,
		District:    inst.Address.District,
		State:       inst.Address.State,
		Pincode:     inst.Address.Pincode,
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData, title, msg string) {
	data.Types = models.InstitutionTypes
	data.Statuses = models.InstitutionStatuses
	if data.ID == "" {
		data.Action, data.Submit = "/institutions", "Create institution"
	} else {
		data.Action, data.Submit = "/institutions/"+data.ID+"/edit", "Save changes"
	}
	formutil.SetBase(&data.Base, r, title, "/institutions")
	if msg != "" {
		data.SetError(msg)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "institution_form", data)
}

// ServeNew renders the "New Institution" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{Type: models.InstitutionSchool, Status: models.InstitutionActive}, "New Institution", "")
}

// HandleCreate processes the New Institution form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/institutions")
		return
	}
	data := readForm(r)
	if res := data.validate(); res.HasErrors() {
		data.Fields = res.Fields()
		h.renderForm(w, r, data, "New Institution", res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "create institution")
	defer cancel()

	created, err := h.Store.Create(ctx, data.model())
	if err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventInstitutionCreated, "institution", "", err)
		if msg := formMessage(err); msg != "" {
			h.renderForm(w, r, data, "New Institution", msg)
			return
		}
		h.ErrLog.LogAPIError(w, r, "create institution failed", err, "/institutions")
		return
	}
	h.Audit.Action(ctx, r, audit.EventInstitutionCreated, "institution", created.ID, map[string]string{"name": created.Name})
	listing.ViewFor(h.Views, r).Forget("institutions")

	http.Redirect(w, r, navigation.SafeBackURL(r, formBack), http.StatusSeeOther)
}

// ServeEdit renders the edit form for one institution.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "get institution")
	defer cancel()

	inst, err := h.Store.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get institution failed", err, "/institutions")
		return
	}
	h.renderForm(w, r, fromModel(inst), "Edit Institution", "")
}

// HandleEdit processes the edit form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/institutions")
		return
	}
	data := readForm(r)
	data.ID = id
	if res := data.validate(); res.HasErrors() {
		data.Fields = res.Fields()
		h.renderForm(w, r, data, "Edit Institution", res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "update institution")
	defer cancel()

	if err := h.Store.Update(ctx, id, data.model()); err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventInstitutionUpdated, "institution", id, err)
		if msg := formMessage(err); msg != "" {
			h.renderForm(w, r, data, "Edit Institution", msg)
			return
		}
		h.ErrLog.LogAPIError(w, r, "update institution failed", err, "/institutions")
		return
	}
	h.Audit.Action(ctx, r, audit.EventInstitutionUpdated, "institution", id, nil)
	listing.ViewFor(h.Views, r).Forget("institutions")

	http.Redirect(w, r, navigation.SafeBackURL(r, formBack), http.StatusSeeOther)
}

// formMessage returns the message to show on the form for errors the user
// can fix, or "" for everything else.
func formMessage(err error) string {
	switch {
	case errors.Is(err, institutionstore.ErrConflict):
		return "An institution with that name already exists."
	case errors.Is(err, institutionstore.ErrInvalid):
		if msg := apiclient.MessageOf(err); msg != "" {
			return msg
		}
		return "The institution could not be saved. Check the fields and try again."
	}
	return ""
}
