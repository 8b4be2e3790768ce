package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	base := New(http.StatusConflict, "already_enrolled", errors.New("duplicate enrollment"))

	t.Run("direct", func(t *testing.T) {
		status, code := StatusOf(base, http.StatusInternalServerError)
		if status != http.StatusConflict || code != "already_enrolled" {
			t.Fatalf("got (%d, %q), want (409, already_enrolled)", status, code)
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("enroll user: %w", base)
		status, code := StatusOf(wrapped, http.StatusInternalServerError)
		if status != http.StatusConflict || code != "already_enrolled" {
			t.Fatalf("got (%d, %q), want the embedded status through the wrap", status, code)
		}
	})

	t.Run("plain_error_falls_back", func(t *testing.T) {
		status, code := StatusOf(errors.New("boom"), http.StatusInternalServerError)
		if status != http.StatusInternalServerError || code != "" {
			t.Fatalf("got (%d, %q), want the fallback", status, code)
		}
	})
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{"wrapped_error_wins", New(400, "bad_input", errors.New("missing field")), "missing field"},
		{"code_when_no_error", &Error{Status: 404, Code: "not_found"}, "not_found"},
		{"status_only", &Error{Status: 500}, "api error (500)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("Error()=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("record not found")
	err := New(http.StatusNotFound, "course_not_found", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is should reach the wrapped error")
	}
}
