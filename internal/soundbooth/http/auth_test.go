package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/soundbooth/pkg/boothsdk"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestCallbackCreatesUser(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/auth/yandex/callback?code=abc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair boothsdk.TokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	cookies := cookiesByName(resp)
	for name, ttl := range map[string]time.Duration{
		httpx.AccessCookie:  15 * time.Minute,
		httpx.RefreshCookie: 24 * time.Hour,
	} {
		c, ok := cookies[name]
		require.True(t, ok, "missing cookie %s", name)
		require.True(t, strings.HasPrefix(c.Value, jwtx.BearerPrefix), c.Value)
		require.Equal(t, "/", c.Path)
		require.True(t, c.HttpOnly)
		require.True(t, c.Secure)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
		require.Equal(t, int(ttl.Seconds()), c.MaxAge)
	}
	require.Equal(t, jwtx.BearerPrefix+pair.AccessToken, cookies[httpx.AccessCookie].Value)

	u, err := h.store.Users().GetUserByYandexID(context.Background(), "yid1")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", *u.Email)
	require.True(t, u.IsActive)
	require.False(t, u.IsSupervisor)
}

func TestCallbackIsIdempotent(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	first := h.login(t, "abc")
	second := h.login(t, "abc2")
	require.NotEqual(t, first.AccessToken(), second.AccessToken())

	a, err := first.Me(ctx)
	require.NoError(t, err)
	b, err := second.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, a.ID, b.ID)
}

func TestCallbackFailures(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	t.Run("rejected code", func(t *testing.T) {
		_, err := h.client.Callback(context.Background(), "expired")
		requireAPIError(t, err, http.StatusBadRequest, boothsdk.CodeInvalidRequest)
	})

	t.Run("missing code", func(t *testing.T) {
		resp := h.do(t, http.MethodGet, "/api/auth/yandex/callback", "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Empty(t, resp.Cookies())
	})
}

func TestLoginRedirect(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	noFollow := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := noFollow.Get(h.srv.URL + "/api/auth/login/yandex")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc := resp.Header.Get("Location")
	require.Contains(t, loc, "/authorize?")
	require.Contains(t, loc, "response_type=code")
	require.Contains(t, loc, "client_id=client")

	asJSON, err := h.client.LoginURL(context.Background())
	require.NoError(t, err)
	require.Equal(t, loc, asJSON)
}

func TestRefreshEndpoint(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	sess := h.login(t, "abc")

	refresh := func(t *testing.T, cookieValue string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, h.srv.URL+"/api/auth/refresh", nil)
		require.NoError(t, err)
		if cookieValue != "" {
			req.AddCookie(&http.Cookie{Name: httpx.RefreshCookie, Value: cookieValue})
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	t.Run("valid", func(t *testing.T) {
		resp := refresh(t, jwtx.BearerPrefix+sess.RefreshToken())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var pair boothsdk.TokenPair
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
		claims, err := h.codec.Verify(pair.AccessToken, jwtx.KindAccess)
		require.NoError(t, err)
		require.Equal(t, "yid1", claims.Subject)

		require.Len(t, resp.Cookies(), 2)
	})

	t.Run("missing", func(t *testing.T) {
		resp := refresh(t, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Empty(t, resp.Cookies())
	})

	t.Run("malformed", func(t *testing.T) {
		resp := refresh(t, "Bearer not.a.jwt")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Empty(t, resp.Cookies())
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), `error="invalid_token"`)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := jwtx.NewCodec("HS256", accessSecret, refreshSecret, time.Minute, time.Minute)
		require.NoError(t, err)
		old.Now = func() time.Time { return time.Now().Add(-time.Hour) }
		stale, err := old.Issue("yid1", jwtx.KindRefresh)
		require.NoError(t, err)

		resp := refresh(t, jwtx.BearerPrefix+stale)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Empty(t, resp.Cookies())
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		resp := refresh(t, jwtx.BearerPrefix+sess.AccessToken())
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	cookies := cookiesByName(resp)
	for _, name := range []string{httpx.AccessCookie, httpx.RefreshCookie} {
		c, ok := cookies[name]
		require.True(t, ok, name)
		require.Empty(t, c.Value)
		require.Negative(t, c.MaxAge)
	}
}
