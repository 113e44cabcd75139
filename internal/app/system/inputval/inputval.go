// Package inputval validates form input structs declared with struct tags.
//
//	type createInput struct {
//	    Name  string `validate:"required,max=200" label:"Institution name"`
//	    Type  string `validate:"required,oneof=SCHOOL COLLEGE" label:"Type"`
//	    Email string `validate:"omitempty,email" label:"Email"`
//	}
//
// Supported rules: required, omitempty, max=N, min=N, len=N, oneof=a b c,
// email, digits. Only string fields are checked.
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/waffle/pantry/validate"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures of one Validate call in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Fields maps each failing field to its first message.
func (r Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Validate checks every tagged string field of the struct v.
func Validate(v any) Result {
	var res Result
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return res
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" || f.Type.Kind() != reflect.String {
			continue
		}
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		if msg := check(strings.TrimSpace(rv.Field(i).String()), tag, label); msg != "" {
			res.Errors = append(res.Errors, FieldError{Field: f.Name, Message: msg})
		}
	}
	return res
}

func check(val, tag, label string) string {
	rules := strings.Split(tag, ",")
	for _, rule := range rules {
		if rule == "omitempty" && val == "" {
			return ""
		}
	}
	n := utf8.RuneCountInString(val)
	for _, rule := range rules {
		name, arg, _ := strings.Cut(rule, "=")
		switch name {
		case "required":
			if val == "" {
				return label + " is required."
			}
		case "max":
			if lim, err := strconv.Atoi(arg); err == nil && n > lim {
				return fmt.Sprintf("%s must be at most %d characters.", label, lim)
			}
		case "min":
			if lim, err := strconv.Atoi(arg); err == nil && n < lim {
				return fmt.Sprintf("%s must be at least %d characters.", label, lim)
			}
		case "len":
			if lim, err := strconv.Atoi(arg); err == nil && n != lim {
				return fmt.Sprintf("%s must be exactly %d characters.", label, lim)
			}
		case "oneof":
			if !oneOf(val, strings.Fields(arg)) {
				return label + " is not a valid choice."
			}
		case "email":
			if !IsValidEmail(val) {
				return label + " must be a valid email address."
			}
		case "digits":
			if strings.Trim(val, "0123456789") != "" {
				return label + " must contain digits only."
			}
		}
	}
	return ""
}

func oneOf(val string, allowed []string) bool {
	for _, a := range allowed {
		if val == a {
			return true
		}
	}
	return false
}

// IsValidEmail reports whether s is a bare address (no display name).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " <>\t") {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(s, "..") || strings.HasPrefix(domain, ".") {
		return false
	}
	return validate.SimpleEmailValid(s)
}
