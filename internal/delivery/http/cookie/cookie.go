// Package cookie centralizes the auth cookie names and attributes shared by
// the middleware and handlers.
package cookie

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names carrying the token pair.
const (
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"
)

// Set writes an httpOnly auth cookie scoped to the whole site.
func Set(c echo.Context, name, value string, maxAge time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires an auth cookie immediately.
func Clear(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
