package apierr

import (
	"errors"
	"fmt"
)

// Error carries an HTTP status and stable code from services up to
// handlers, so precondition failures ("not found", "not enrolled")
// map to the right response without string matching.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// StatusOf returns the embedded status when err wraps an *Error, or
// the given fallback otherwise.
func StatusOf(err error, fallback int) (int, string) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status, ae.Code
	}
	return fallback, ""
}
