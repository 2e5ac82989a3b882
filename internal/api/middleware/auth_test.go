package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const cookieName = "token"

func signedToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newCookieContext(e *echo.Echo, cookieValue string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidCookie(t *testing.T) {
	e := echo.New()
	c, rec := newCookieContext(e, signedToken(t, "secret", time.Now().Add(time.Hour)))

	called := false
	handler := Auth("secret", cookieName)(func(c echo.Context) error {
		called = true
		if c.Get(UserIDKey) != "user-1" {
			t.Fatalf("user id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingCookie(t *testing.T) {
	e := echo.New()
	c, rec := newCookieContext(e, "")

	handler := Auth("secret", cookieName)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	e := echo.New()
	c, rec := newCookieContext(e, "not-a-token")

	handler := Auth("secret", cookieName)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	c, rec := newCookieContext(e, signedToken(t, "secret", time.Now().Add(-time.Minute)))

	handler := Auth("secret", cookieName)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	e := echo.New()
	c, rec := newCookieContext(e, signedToken(t, "other-secret", time.Now().Add(time.Hour)))

	handler := Auth("secret", cookieName)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	e := echo.New()
	c, rec := newCookieContext(e, "")

	called := false
	handler := OptionalAuth("secret", cookieName)(func(c echo.Context) error {
		called = true
		if c.Get(UserIDKey) != nil {
			t.Fatalf("user id must be unset for anonymous requests")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_ValidCookieAttachesIdentity(t *testing.T) {
	e := echo.New()
	c, _ := newCookieContext(e, signedToken(t, "secret", time.Now().Add(time.Hour)))

	handler := OptionalAuth("secret", cookieName)(func(c echo.Context) error {
		if c.Get(UserIDKey) != "user-1" {
			t.Fatalf("user id not attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
