package session

import (
	"errors"
	"testing"

	"github.com/existflow/irontodo/internal/apperr"
)

func fieldOf(err error) string {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return verr.Field
	}
	return ""
}

func TestSignupFormValidate(t *testing.T) {
	tests := []struct {
		name  string
		form  SignupForm
		field string
	}{
		{"valid", SignupForm{Name: "Ada", Email: "a@b.c", Password: "p", ConfirmPassword: "p"}, ""},
		{"no name", SignupForm{Email: "a@b.c", Password: "p", ConfirmPassword: "p"}, "name"},
		{"no email", SignupForm{Name: "Ada", Password: "p", ConfirmPassword: "p"}, "email"},
		{"bad email", SignupForm{Name: "Ada", Email: "ada", Password: "p", ConfirmPassword: "p"}, "email"},
		{"no password", SignupForm{Name: "Ada", Email: "a@b.c"}, "password"},
		{"mismatch", SignupForm{Name: "Ada", Email: "a@b.c", Password: "p", ConfirmPassword: "q"}, "confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if got := fieldOf(err); got != tt.field {
				t.Errorf("field = %q, want %q (err %v)", got, tt.field, err)
			}
		})
	}
}

func TestLoginFormValidate(t *testing.T) {
	if err := (LoginForm{Email: "a@b.c", Password: "p"}).Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if fieldOf((LoginForm{Password: "p"}).Validate()) != "email" {
		t.Error("missing email should be reported")
	}
	if fieldOf((LoginForm{Email: "a@b.c"}).Validate()) != "password" {
		t.Error("missing password should be reported")
	}
}
