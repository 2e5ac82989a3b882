package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soulflow/wellness-platform/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"username taken", domain.ErrUsernameTaken, http.StatusBadRequest, "Username already taken"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, try again later"},
		{"session not found", domain.ErrSessionNotFound, http.StatusNotFound, "Session not found"},
		{"already published", domain.ErrSessionPublished, http.StatusConflict, "Session is already published"},
		{"incomplete", domain.ErrSessionIncomplete, http.StatusBadRequest, "Title and JSON file URL are required to publish"},
		{"stale token user", domain.ErrUserNotFound, http.StatusUnauthorized, "Not authorized"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body["success"])
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
		})
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	code, body := renderError(t, domain.NewValidationError("title is required", "duration must be at least 1"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	msgs, ok := body["errors"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected two field messages, got %v", body["errors"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if body["message"] != "Not authorized" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_UnknownErrorIsGeneric500(t *testing.T) {
	code, body := renderError(t, errors.New("mongo topology closed"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["message"] != "Internal server error" {
		t.Fatalf("internal detail leaked: %v", body["message"])
	}
}
