// internal/app/features/students/form.go
package students

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	studentstore "github.com/trueportme/adminconsole/internal/app/store/students"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/inputval"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// formBack drops filter preservation: the form's status and class fields
// share names with the list filters.
var formBack = func() navigation.BackURLOptions {
	o := navigation.StudentsBackURL
	o.PreserveQuery = nil
	return o
}()

type studentInput struct {
	Name       string `validate:"required,max=200" label:"Name"`
	Email      string `validate:"required,email,max=200" label:"Email"`
	Phone      string `validate:"omitempty,min=10,max=15,digits" label:"Phone"`
	RollNumber string `validate:"omitempty,max=50" label:"Roll number"`
	Class      string `validate:"omitempty,max=50" label:"Class"`
	Status     string `validate:"omitempty,oneof=ACTIVE INACTIVE" label:"Status"`
	Pincode    string `validate:"omitempty,len=6,digits" label:"Pincode"`
}

func readForm(r *http.Request) formData {
	return formData{
		Name:       formutil.Trimmed(r, "name"),
		Email:      formutil.Trimmed(r, "email"),
		Phone:      formutil.Trimmed(r, "phone"),
		RollNumber: formutil.Trimmed(r, "rollNumber"),
		Class:      formutil.Trimmed(r, "class"),
		Status:     formutil.Trimmed(r, "status"),
		City:       formutil.Trimmed(r, "city"),
		District:   formutil.Trimmed(r, "district"),
		State:      formutil.Trimmed(r, "state"),
		Pincode:    formutil.Trimmed(r, "pincode"),
	}
}

func (f formData) validate() inputval.Result {
	return inputval.Validate(studentInput{
		Name:       f.Name,
		Email:      f.Email,
		Phone:      f.Phone,
		RollNumber: f.RollNumber,
		Class:      f.Class,
		Status:     f.Status,
		Pincode:    f.Pincode,
	})
}

func (f formData) model() models.Student {
	return models.Student{
		Name:       f.Name,
		Email:      f.Email,
		Phone:      f.Phone,
		RollNumber: f.RollNumber,
		Class:      f.Class,
		Status:     f.Status,
		Address: models.Address{
			City:     f.City,
			District: f.District,
			State:    f.State,
			Pincode:  f.Pincode,
		},
	}
}

func fromModel(s models.Student) formData {
	return formData{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		RollNumber: s.RollNumber,
		Class:      s.Class,
		Status:     s.Status,
		City:       s.Address.City,
		District:   s.Address.District,
		State:      s.Address.State,
		Pincode:    s.Address.Pincode,
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData, title, msg string) {
	data.Statuses = models.StudentStatuses
	if data.ID == "" {
		data.Action, data.Submit = "/students", "Add student"
	} else {
		data.Action, data.Submit = "/students/"+data.ID+"/edit", "Save changes"
	}
	formutil.SetBase(&data.Base, r, title, "/students")
	if msg != "" {
		data.SetError(msg)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "student_form", data)
}

// ServeNew renders the "Add student" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{Status: models.StudentActive}, "Add Student", "")
}

// HandleCreate adds a student to the admin's institution.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/students")
		return
	}
	data := readForm(r)
	if res := data.validate(); res.HasErrors() {
		data.Fields = res.Fields()
		h.renderForm(w, r, data, "Add Student", res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "create student")
	defer cancel()

	created, err := h.Store.Create(ctx, data.model())
	if err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventStudentCreated, "student", "", err)
		if msg := formMessage(err); msg != "" {
			h.renderForm(w, r, data, "Add Student", msg)
			return
		}
		h.ErrLog.LogAPIError(w, r, "create student failed", err, "/students")
		return
	}
	h.Audit.Action(ctx, r, audit.EventStudentCreated, "student", created.ID, map[string]string{"email": created.Email})
	listing.ViewFor(h.Views, r).Forget("students")

	http.Redirect(w, r, navigation.SafeBackURL(r, formBack), http.StatusSeeOther)
}

// ServeEdit renders the edit form for one student.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "get student")
	defer cancel()

	st, err := h.Store.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get student failed", err, "/students")
		return
	}
	h.renderForm(w, r, fromModel(st), "Edit Student", "")
}

// HandleEdit saves the edit form.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/students")
		return
	}
	data := readForm(r)
	data.ID = id
	if res := data.validate(); res.HasErrors() {
		data.Fields = res.Fields()
		h.renderForm(w, r, data, "Edit Student", res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "update student")
	defer cancel()

	if err := h.Store.Update(ctx, id, data.model()); err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventStudentUpdated, "student", id, err)
		if msg := formMessage(err); msg != "" {
			h.renderForm(w, r, data, "Edit Student", msg)
			return
		}
		h.ErrLog.LogAPIError(w, r, "update student failed", err, "/students")
		return
	}
	h.Audit.Action(ctx, r, audit.EventStudentUpdated, "student", id, nil)
	listing.ViewFor(h.Views, r).Forget("students")

	http.Redirect(w, r, navigation.SafeBackURL(r, formBack), http.StatusSeeOther)
}

// HandleDelete removes a student.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "delete student")
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil && !errors.Is(err, studentstore.ErrNotFound) {
		h.Audit.ActionFailed(ctx, r, audit.EventStudentDeleted, "student", id, err)
		h.ErrLog.LogAPIError(w, r, "delete student failed", err, "/students")
		return
	}
	h.Audit.Action(ctx, r, audit.EventStudentDeleted, "student", id, nil)
	listing.ViewFor(h.Views, r).Forget("students")

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.StudentsBackURL), http.StatusSeeOther)
}

func formMessage(err error) string {
	switch {
	case errors.Is(err, studentstore.ErrConflict):
		return "A student with that email already exists."
	case errors.Is(err, studentstore.ErrInvalid):
		if msg := apiclient.MessageOf(err); msg != "" {
			return msg
		}
		return "The student could not be saved. Check the fields and try again."
	}
	return ""
}
