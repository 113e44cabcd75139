package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.co.in", true},
		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{".user@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"User Name <user@example.com>", false},
		{"a@b@c.com", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

type sample struct {
	Name    string `validate:"required,max=10" label:"Name"`
	Type    string `validate:"required,oneof=SCHOOL COLLEGE" label:"Type"`
	Email   string `validate:"omitempty,email" label:"Email"`
	Pincode string `validate:"omitempty,len=6,digits" label:"Pincode"`
	Count   int    `validate:"required"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		in     sample
		fields []string
	}{
		{"valid", sample{Name: "Alpha", Type: "SCHOOL"}, nil},
		{"missing name", sample{Type: "SCHOOL"}, []string{"Name"}},
		{"too long", sample{Name: "abcdefghijk", Type: "SCHOOL"}, []string{"Name"}},
		{"bad choice", sample{Name: "A", Type: "CLUB"}, []string{"Type"}},
		{"bad email", sample{Name: "A", Type: "COLLEGE", Email: "nope"}, []string{"Email"}},
		{"bad pincode", sample{Name: "A", Type: "COLLEGE", Pincode: "40A001"}, []string{"Pincode"}},
		{"short pincode", sample{Name: "A", Type: "COLLEGE", Pincode: "4001"}, []string{"Pincode"}},
		{"several", sample{Email: "x"}, []string{"Name", "Type", "Email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			if len(res.Errors) != len(tt.fields) {
				t.Fatalf("errors = %+v, want fields %v", res.Errors, tt.fields)
			}
			for i, f := range tt.fields {
				if res.Errors[i].Field != f {
					t.Errorf("error %d field = %q, want %q", i, res.Errors[i].Field, f)
				}
			}
			if len(tt.fields) > 0 && res.First() != res.Errors[0].Message {
				t.Errorf("First() = %q", res.First())
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	res := Validate(&sample{Type: "SCHOOL"})
	if got := res.Fields()["Name"]; got != "Name is required." {
		t.Errorf("message = %q", got)
	}
	if Validate(42).HasErrors() {
		t.Errorf("non-struct should validate cleanly")
	}
}
