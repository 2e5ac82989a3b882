package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieConfig describes how the session token cookie is issued.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// setAuthCookie delivers the signed token as an HTTP-only, SameSite-Strict
// cookie so page scripts cannot read it.
func setAuthCookie(c echo.Context, cfg CookieConfig, token string) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookie overwrites the cookie with an already-expired one. This is
// advisory logout: the token itself stays valid until its natural expiry as
// there is no server-side revocation list.
func clearAuthCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
