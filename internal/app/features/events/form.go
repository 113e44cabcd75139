// internal/app/features/events/form.go
package events

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	eventstore "github.com/trueportme/adminconsole/internal/app/store/events"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/htmlsanitize"
	"github.com/trueportme/adminconsole/internal/app/system/inputval"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/navigation"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// dateLayout is the value format of <input type="date">.
const dateLayout = "2006-01-02"

// formBack drops filter preservation: the form's status and category
// fields share names with the list filters.
var formBack = func() navigation.BackURLOptions {
	o := navigation.EventsBackURL
	o.PreserveQuery = nil
	return o
}()

type formData struct {
	formutil.Base

	ID     string
	Action string
	Submit string

	Title       string
	Category    string
	Description string
	Venue       string
	Status      string
	StartDate   string
	EndDate     string

	Statuses []string
}

type eventInput struct {
	Title     string `validate:"required,max=200" label:"Title"`
	Category  string `validate:"omitempty,max=100" label:"Category"`
	Venue     string `validate:"omitempty,max=200" label:"Venue"`
	Status    string `validate:"omitempty,oneof=DRAFT PUBLISHED COMPLETED CANCELLED" label:"Status"`
	StartDate string `validate:"required,len=10" label:"Start date"`
	EndDate   string `validate:"required,len=10" label:"End date"`
}

func readForm(r *http.Request) formData {
	return formData{
		Title:       formutil.Trimmed(r, "title"),
		Category:    formutil.Trimmed(r, "category"),
		Description: formutil.Trimmed(r, "description"),
		Venue:       formutil.Trimmed(r, "venue"),
		Status:      formutil.Trimmed(r, "status"),
		StartDate:   formutil.Trimmed(r, "startDate"),
		EndDate:     formutil.Trimmed(r, "endDate"),
	}
}

func (f formData) validate() inputval.Result {
	res := inputval.Validate(eventInput{
		Title:     f.Title,
		Category:  f.Category,
		Venue:     f.Venue,
		Status:    f.Status,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	})
	if res.HasErrors() {
		return res
	}
	start, err := time.Parse(dateLayout, f.StartDate)
	if err != nil {
		res.Errors = append(res.Errors, inputval.FieldError{Field: "StartDate", Message: "Start date is not a valid date."})
		return res
	}
	end, err := time.Parse(dateLayout, f.EndDate)
	if err != nil {
		res.Errors = append(res.Errors, inputval.FieldError{Field: "EndDate", Message: "End date is not a valid date."})
		return res
	}
	if end.Before(start) {
		res.Errors = append(res.Errors, inputval.FieldError{Field: "EndDate", Message: "End date cannot be before the start date."})
	}
	return res
}

// model assumes validate passed.
func (f formData) model() models.Event {
	start, _ := time.Parse(dateLayout, f.StartDate)
	end, _ := time.Parse(dateLayout, f.EndDate)
	return models.Event{
		Title:       f.Title,
		Category:    f.Category,
		Description: htmlsanitize.Sanitize(f.Description),
		Venue:       f.Venue,
		Status:      f.Status,
		StartDate:   start,
		EndDate:     end,
	}
}

func fromModel(ev models.Event) formData {
	f := formData{
		ID:          ev.ID,
		Title:       ev.Title,
		Category:    ev.Category,
		Description: ev.Description,
		Venue:       ev.Venue,
		Status:      ev.Status,
	}
	if !ev.StartDate.IsZero() {
		f.StartDate = ev.StartDate.Format(dateLayout)
	}
	if !ev.EndDate.IsZero() {
		f.EndDate = ev.EndDate.Format(dateLayout)
	}
	return f
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data formData, title, msg string) {
	data.Statuses = models.EventStatuses
	if data.ID == "" {
		data.Action, data.Submit = "/events", "Create event"
	} else {
		data.Action, data.Submit = "/events/"+data.ID+"/edit", "Save changes"
	}
	formutil.SetBase(&data.Base, r, title, "/events")
	if msg != "" {
		data.SetError(msg)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "event_form", data)
}

// ServeNew renders the "New Event" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{Status: models.EventDraft}, "New Event", "")
}

// HandleCreate processes the New Event form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/events")
		return
	}
	data := readForm(r)
	if res := data.validate(); res.HasErrors() {
		data.Fields = res.Fields()
		h.renderForm(w, r, data, "New Event", res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "create event")
	defer cancel()

	created, err := h.Store.Create(ctx, data.model())
	if err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventEventCreated, "event", "", err)
		if msg := formMessage(err); msg != "" {
			h.renderForm(w, r, data, "New Event", msg)
			return
		}
		h.ErrLog.LogAPIError(w, r, "create event failed", err, "/events")
		return
	}
	h.Audit.Action(ctx, r, audit.EventEventCreated, "event", created.ID, map[string]string{"title": created.Title})
	listing.ViewFor(h.Views, r).Forget("events")

	http.Redirect(w, r, navigation.SafeBackURL(r, formBack), http.StatusSeeOther)
}

// ServeEdit renders the edit form for one event.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "get event")
	defer cancel()

	ev, err := h.Store.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get event failed", err, "/events")
		return
	}
	h.renderForm(w, r, fromModel(ev), "Edit Event", "")
}

// HandleEdit processes the edit form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/events")
		return
	}
	data := readForm(r)
	data.ID = id
	if res := data.validate(); res.HasErrors() {
		data.Fields = res.Fields()
		h.renderForm(w, r, data, "Edit Event", res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "update event")
	defer cancel()

	if err := h.Store.Update(ctx, id, data.model()); err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventEventUpdated, "event", id, err)
		if msg := formMessage(err); msg != "" {
			h.renderForm(w, r, data, "Edit Event", msg)
			return
		}
		h.ErrLog.LogAPIError(w, r, "update event failed", err, "/events")
		return
	}
	h.Audit.Action(ctx, r, audit.EventEventUpdated, "event", id, nil)
	listing.ViewFor(h.Views, r).Forget("events")

	http.Redirect(w, r, navigation.SafeBackURL(r, formBack), http.StatusSeeOther)
}

func formMessage(err error) string {
	switch {
	case errors.Is(err, eventstore.ErrConflict):
		return "An event with that title already exists."
	case errors.Is(err, eventstore.ErrInvalid):
		if msg := apiclient.MessageOf(err); msg != "" {
			return msg
		}
		return "The event could not be saved. Check the fields and try again."
	}
	return ""
}
