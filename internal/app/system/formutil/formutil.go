// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
//
// Embed Base in the form's view model and populate it with SetBase.
package formutil

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error  template.HTML
	Fields map[string]string
}

// SetBase populates the common Base fields from the request context.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// FieldError records a per-field validation message.
func (b *Base) FieldError(field, msg string) {
	if b.Fields == nil {
		b.Fields = map[string]string{}
	}
	b.Fields[field] = msg
}

// HasErrors reports whether any field error was recorded.
func (b *Base) HasErrors() bool { return len(b.Fields) > 0 }

// Trimmed returns the trimmed form value for key.
func Trimmed(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// Checked reports whether a checkbox named key was submitted checked.
func Checked(r *http.Request, key string) bool {
	switch strings.ToLower(Trimmed(r, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
