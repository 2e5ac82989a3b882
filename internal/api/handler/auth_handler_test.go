package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soulflow/wellness-platform/internal/api/middleware"
	"github.com/soulflow/wellness-platform/internal/core/domain"
	"github.com/soulflow/wellness-platform/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, input ports.LoginInput) (string, *domain.User, error)
	currentFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.User, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentFn(ctx, userID)
}

func errorAs[T any](err error, target *T) bool {
	return errors.As(err, target)
}

func testCookieConfig() CookieConfig {
	return CookieConfig{Name: "token", TTL: time.Hour, Secure: false}
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
			if input.Username != "alice" || input.Email != "a@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "token123", &domain.User{ID: "u1", Username: "alice", Email: "a@example.com"}, nil
		},
	}
	handler := NewAuthHandler(stub, testCookieConfig())

	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"a@example.com","password":"secret1"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	cookie := findCookie(rec, "token")
	if cookie == nil || cookie.Value != "token123" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("cookie must be HTTP-only")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie must be SameSite strict")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success=true")
	}
	data := resp["data"].(map[string]any)
	if data["username"] != "alice" || data["email"] != "a@example.com" {
		t.Fatalf("unexpected data: %+v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, testCookieConfig())

	c, _ := newJSONContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"al","email":"not-an-email","password":""}`)

	err := handler.Register(c)
	var ve *domain.ValidationError
	if !errorAs(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Messages) != 3 {
		t.Fatalf("expected three field messages, got %v", ve.Messages)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
			return "", nil, domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(stub, testCookieConfig())

	c, _ := newJSONContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"b@example.com","password":"secret1"}`)

	if err := handler.Register(c); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (string, *domain.User, error) {
			if input.Email != "alice@example.com" || input.Password != "secret" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "token123", &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}, nil
		},
	}
	handler := NewAuthHandler(stub, testCookieConfig())

	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"secret"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cookie := findCookie(rec, "token"); cookie == nil || cookie.Value != "token123" {
		t.Fatalf("expected session cookie")
	}
}

func TestAuthHandler_Login_InvalidCredentialsPassesThrough(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, testCookieConfig())

	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"bad"}`)

	if err := handler.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if cookie := findCookie(rec, "token"); cookie != nil {
		t.Fatalf("no cookie must be set on failed login")
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubAuthService{}, testCookieConfig())

	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/logout", "")
	c.Set(middleware.UserIDKey, "u1")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cookie := findCookie(rec, "token")
	if cookie == nil {
		t.Fatalf("expected expired cookie to be set")
	}
	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("expected cleared cookie, got value=%q maxage=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestAuthHandler_Logout_RequiresIdentity(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubAuthService{}, testCookieConfig())

	c, _ := newJSONContext(e, http.MethodPost, "/api/auth/logout", "")

	err := handler.Logout(c)
	var he *echo.HTTPError
	if !errorAs(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}, nil
		},
	}
	handler := NewAuthHandler(stub, testCookieConfig())

	c, rec := newJSONContext(e, http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.UserIDKey, "u1")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	data := resp["data"].(map[string]any)
	if data["username"] != "alice" {
		t.Fatalf("unexpected data: %+v", data)
	}
}
