package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors used for classification with errors.Is
var (
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotAuthenticated = errors.New("not logged in")
	ErrRequest          = errors.New("request failed")
	ErrNotFound         = errors.New("not found")
)

// ValidationError is a client-side form error. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validation creates a ValidationError
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RequestError describes a failed API call. Status is the HTTP status of a
// non-success response; it is 0 when no usable response arrived (transport
// failure or an unreadable body), in which case Err holds the cause.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s: server returned %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is maps statuses onto the sentinel errors
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrRequest:
		return true
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Transport reports whether the request never got a usable response
func (e *RequestError) Transport() bool {
	return e.Status == 0
}

// ErrorKind groups errors the way the presentation layer treats them
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindAuth
	KindRequest
	KindOther
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindRequest:
		return "request"
	default:
		return "other"
	}
}

// Kind classifies an error
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNotAuthenticated):
		return KindAuth
	case errors.Is(err, ErrRequest):
		return KindRequest
	default:
		return KindOther
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
