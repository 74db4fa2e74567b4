package auth

import (
	"net/http"
	"time"
)

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "token"

// CookieWriter writes and clears the session cookie.
type CookieWriter struct {
	Name   string
	Secure bool
}

// Set attaches token as an httpOnly, SameSite=Strict cookie.
func (c CookieWriter) Set(w http.ResponseWriter, token Token, now time.Time) {
	maxAge := int(token.ExpiresAt.Sub(now).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    token.Value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear instructs the client to drop the session cookie.
func (c CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieWriter) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}
