package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("store offline")

	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound, "Booking not found"},
		{"validation", Validation("bad booking", nil), CodeValidation, http.StatusUnprocessableEntity, "bad booking"},
		{"invalid input", InvalidInput("id cannot be empty"), CodeInvalidInput, http.StatusBadRequest, "id cannot be empty"},
		{"unauthorized", Unauthorized("login required"), CodeUnauthorized, http.StatusUnauthorized, "login required"},
		{"forbidden", Forbidden("not your booking"), CodeForbidden, http.StatusForbidden, "not your booking"},
		{"conflict", Conflict("already reviewed"), CodeConflict, http.StatusConflict, "already reviewed"},
		{"internal", Internal("boom", cause), CodeInternal, http.StatusInternalServerError, "boom"},
		{"timeout", Timeout("too slow"), CodeTimeout, http.StatusGatewayTimeout, "too slow"},
		{"unavailable", Unavailable("Data store", cause), CodeUnavailable, http.StatusServiceUnavailable, "Data store is temporarily unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Code: CodeNotFound, Message: "service not found"}
	if got := plain.Error(); got != "NOT_FOUND: service not found" {
		t.Errorf("Error() = %q", got)
	}

	caused := Internal("write failed", errors.New("disk full"))
	if got := caused.Error(); got != "INTERNAL_ERROR: write failed (caused by: disk full)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("original")
	wrapped := fmt.Errorf("service layer: %w", Wrap(cause, CodeInternal, "wrapped", http.StatusInternalServerError))

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should reach the original cause")
	}
	if !errors.Is(NotFoundWithID("Booking", "b-1"), NotFound("anything")) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(Conflict("x"), NotFound("x")) {
		t.Error("different codes must not match")
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Service", "svc-9")
	if err.Details["id"] != "svc-9" || err.Details["resource"] != "Service" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestHasCodeAndAsAppError(t *testing.T) {
	appErr := Conflict("duplicate email")
	wrapped := fmt.Errorf("register: %w", appErr)
	plain := errors.New("plain")

	if !IsAppError(wrapped) {
		t.Error("IsAppError should see through wrapping")
	}
	if !HasCode(wrapped, CodeConflict) {
		t.Error("HasCode should report CONFLICT")
	}
	if HasCode(plain, CodeConflict) {
		t.Error("plain errors carry no code")
	}
	if AsAppError(wrapped) != appErr {
		t.Error("AsAppError should return the wrapped AppError")
	}

	converted := AsAppError(plain)
	if converted.Code != CodeInternal || converted.Err != plain {
		t.Errorf("AsAppError(plain) = %+v", converted)
	}
}

func TestAppError_ToJSON(t *testing.T) {
	data := string(NotFoundWithID("Booking", "b-1").ToJSON())
	for _, want := range []string{`"code":"NOT_FOUND"`, `"message":"Booking not found"`, `"id":"b-1"`} {
		if !strings.Contains(data, want) {
			t.Errorf("ToJSON() = %s, missing %s", data, want)
		}
	}
}
