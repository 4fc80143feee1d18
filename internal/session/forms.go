package session

import (
	"strings"

	"github.com/existflow/irontodo/internal/apperr"
)

// LoginForm holds the login view's fields
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks the form before any network call
func (f LoginForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" {
		return apperr.Validation("email", "Email is required")
	}
	if f.Password == "" {
		return apperr.Validation("password", "Password is required")
	}
	return nil
}

// SignupForm holds the signup view's fields
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the form before any network call
func (f SignupForm) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return apperr.Validation("name", "Name is required")
	case strings.TrimSpace(f.Email) == "":
		return apperr.Validation("email", "Email is required")
	case !strings.Contains(f.Email, "@"):
		return apperr.Validation("email", "Email is invalid")
	case f.Password == "":
		return apperr.Validation("password", "Password is required")
	case f.Password != f.ConfirmPassword:
		return apperr.Validation("confirm", "Passwords do not match")
	}
	return nil
}
