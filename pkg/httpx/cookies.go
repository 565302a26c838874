package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// SetSessionCookies binds a token pair to the response. Values carry the
// "Bearer " scheme and expire together with the tokens.
func SetSessionCookies(w http.ResponseWriter, p jwtx.Pair) {
	http.SetCookie(w, sessionCookie(AccessCookie, jwtx.BearerPrefix+p.Access, int(p.AccessTTL.Seconds())))
	http.SetCookie(w, sessionCookie(RefreshCookie, jwtx.BearerPrefix+p.Refresh, int(p.RefreshTTL.Seconds())))
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie(AccessCookie, "", -1))
	http.SetCookie(w, sessionCookie(RefreshCookie, "", -1))
}

// SessionToken returns the raw value of the named session cookie. Without
// the cookie it falls back to an Authorization: Bearer header, which keeps
// non-browser clients working.
func SessionToken(r *http.Request, cookie string) string {
	if c, err := r.Cookie(cookie); err == nil && c.Value != "" {
		return c.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, jwtx.BearerPrefix) {
		return authz
	}
	return ""
}

func sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
