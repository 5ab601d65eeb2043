package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_IsMatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("failed to list meals", cause)

	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage kind")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected ErrNotFound match")
	}

	wrapped := fmt.Errorf("list: %w", err)
	if !errors.Is(wrapped, ErrStorage) {
		t.Fatalf("expected kind to survive fmt wrapping")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validationf("name is required"), http.StatusBadRequest},
		{New(ErrConflict, "user already exists"), http.StatusBadRequest},
		{New(ErrInvalidBatch, "empty"), http.StatusBadRequest},
		{New(ErrAuth, "missing token"), http.StatusUnauthorized},
		{New(ErrForbidden, "invalid token"), http.StatusForbidden},
		{Wrap(ErrForbidden, "Invalid token", NotFoundf("user gone")), http.StatusForbidden},
		{NotFoundf("meal %d not found", 3), http.StatusNotFound},
		{New(ErrEmptyCollection, "no meals found"), http.StatusNotFound},
		{Storage("boom", errors.New("x")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestPublicMessage_HidesServerCauses(t *testing.T) {
	err := Storage("failed to insert meal", errors.New("pq: password authentication failed"))
	if got := PublicMessage(err, "Failed to add meal"); got != "Failed to add meal" {
		t.Fatalf("PublicMessage leaked detail: %q", got)
	}

	err = Validationf("url is required")
	if got := PublicMessage(err, "ignored"); got != "url is required" {
		t.Fatalf("PublicMessage = %q", got)
	}
}
