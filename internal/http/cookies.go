package httpx

import (
	"net/http"
	"time"
)

// CookieParams groups the settings shared by cookies this service writes.
type CookieParams struct {
	Domain string
	Secure bool
}

// setSessionTokenCookie attaches the issued session token to the response.
// The cookie is host-scoped (or domain-scoped when configured), HTTP-only,
// and expires with the token.
func setSessionTokenCookie(w http.ResponseWriter, p CookieParams, name, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Domain:   p.Domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
