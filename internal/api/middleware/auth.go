package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// UserIDKey is the context key under which the guards store the caller's user id.
const UserIDKey = "user_id"

// Auth validates the session token cookie and injects the user id into the
// request context. Requests without a valid cookie are rejected with 401.
func Auth(jwtSecret, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := userIDFromCookie(c, jwtSecret, cookieName)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// OptionalAuth injects the user id when a valid cookie is present but lets
// anonymous requests through. Public read endpoints use it so responses can
// be personalised later without changing the route contract.
func OptionalAuth(jwtSecret, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := userIDFromCookie(c, jwtSecret, cookieName); ok {
				c.Set(UserIDKey, userID)
			}
			return next(c)
		}
	}
}

// userIDFromCookie parses and verifies the token cookie, returning the subject
// claim. Expiry is enforced by the parser.
func userIDFromCookie(c echo.Context, jwtSecret, cookieName string) (string, bool) {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", false
	}
	return sub, true
}
