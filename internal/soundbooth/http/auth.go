package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/pkg/boothsdk"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
)

// AuthURLProvider builds the identity provider's authorization URL.
type AuthURLProvider interface {
	AuthCodeURL() string
}

type LoginHandler struct {
	Provider AuthURLProvider
}

// ServeHTTP starts a Yandex login.
//
//	@Summary		Start Yandex login
//	@Description	Redirects the browser to the Yandex authorization page. Clients sending Accept: application/json get the URL in the body instead.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	boothsdk.LoginRedirect	"Authorization URL (Accept: application/json)"
//	@Success		302	"Redirect to Yandex"
//	@Router			/api/auth/login/yandex [get].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := h.Provider.AuthCodeURL()

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		httpx.WriteJSON(w, http.StatusOK, boothsdk.LoginRedirect{RedirectURL: target})
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, target, http.StatusFound)
}

type CallbackHandler struct {
	Sessions *service.SessionService
}

// ServeHTTP completes a Yandex login.
//
//	@Summary		Yandex OAuth callback
//	@Description	Exchanges the authorization code, creates the user on first login and issues a token pair. Both tokens are also set as HttpOnly cookies.
//	@Tags			Auth
//	@Produce		json
//	@Param			code	query		string					true	"Authorization code from Yandex"
//	@Success		200		{object}	boothsdk.TokenPair		"Issued tokens"
//	@Failure		400		{object}	boothsdk.ErrorResponse	"Code missing or rejected by Yandex"
//	@Failure		409		{object}	boothsdk.ErrorResponse	"Email already registered to another user"
//	@Failure		500		{object}	boothsdk.ErrorResponse	"Internal server error"
//	@Router			/api/auth/yandex/callback [get].
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Login(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.SetSessionCookies(w, sess.Tokens)
	httpx.WriteJSON(w, http.StatusOK, tokenPair(sess))
}

type RefreshHandler struct {
	Sessions *service.SessionService
}

// ServeHTTP issues a new token pair from the refresh_token cookie. The
// presented refresh token is not revoked and stays usable until it
// expires.
//
//	@Summary		Refresh tokens
//	@Description	Issues a new access and refresh token from the refresh_token cookie and rebinds both cookies.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	boothsdk.TokenPair		"Issued tokens"
//	@Failure		401	{object}	boothsdk.ErrorResponse	"Missing, invalid or expired refresh token"
//	@Failure		500	{object}	boothsdk.ErrorResponse	"Internal server error"
//	@Router			/api/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Refresh(r.Context(), httpx.SessionToken(r, httpx.RefreshCookie))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.SetSessionCookies(w, sess.Tokens)
	httpx.WriteJSON(w, http.StatusOK, tokenPair(sess))
}

// LogoutHandler godoc
//
//	@Summary		Log out
//	@Description	Expires the session cookies. Issued tokens remain valid until they expire.
//	@Tags			Auth
//	@Success		204	"Cookies cleared"
//	@Router			/api/auth/logout [post].
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.ClearSessionCookies(w)
		httpx.NoCache(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
