package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soulflow/wellness-platform/internal/api/middleware"
)

// ctxUserID extracts the caller identity injected by the Auth middleware.
// Its presence proves the guard ran; a protected handler reached without it
// is a wiring bug, rejected with 401 rather than trusted.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}
	return userID, nil
}
