package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soulflow/wellness-platform/internal/core/domain"
)

// errorEnvelope is the canonical error body: {success:false, message, errors?}.
type errorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders field messages for validation failures.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorEnvelope) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorEnvelope{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Validation failures carry per-field messages.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorEnvelope{Message: "Validation error", Errors: ve.Messages}
	}

	// Known domain errors → deterministic HTTP codes. Registration conflicts
	// deliberately return 400, matching the published contract.
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, errorEnvelope{Message: "Email already registered"}
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, errorEnvelope{Message: "Username already taken"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		// One message for unknown email and wrong password alike.
		return http.StatusUnauthorized, errorEnvelope{Message: "Invalid email or password"}
	case errors.Is(err, domain.ErrNotAuthorized), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, errorEnvelope{Message: "Not authorized"}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, errorEnvelope{Message: "Too many login attempts, try again later"}
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, errorEnvelope{Message: "Session not found"}
	case errors.Is(err, domain.ErrSessionPublished):
		return http.StatusConflict, errorEnvelope{Message: "Session is already published"}
	case errors.Is(err, domain.ErrSessionIncomplete):
		return http.StatusBadRequest, errorEnvelope{Message: "Title and JSON file URL are required to publish"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorEnvelope{Message: "Internal server error"}
}
