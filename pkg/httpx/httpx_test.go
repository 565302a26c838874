package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestRecover(t *testing.T) {
	h := httpx.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "internal_error", body.Error)
}

func TestWriteBearerError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteBearerError(rec, "token is missing")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, httpx.ErrorBody{Error: "unauthenticated", Detail: "token is missing"}, body)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"x"}`))
		var p payload
		require.NoError(t, httpx.DecodeJSON(req, &p, 1024))
		require.Equal(t, "x", p.Name)
	})

	for name, body := range map[string]string{
		"empty":         "",
		"unknown field": `{"nope":1}`,
		"trailing data": `{"name":"x"}{"name":"y"}`,
		"not json":      `name=x`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
			var p payload
			require.Error(t, httpx.DecodeJSON(req, &p, 1024))
		})
	}
}

func TestQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?full_delete=true&bad=maybe", nil)

	v, err := httpx.QueryBool(req, "full_delete", false)
	require.NoError(t, err)
	require.True(t, v)

	v, err = httpx.QueryBool(req, "missing", true)
	require.NoError(t, err)
	require.True(t, v)

	_, err = httpx.QueryBool(req, "bad", false)
	require.Error(t, err)
}

func TestSessionCookies(t *testing.T) {
	pair := jwtx.Pair{
		Access:     "aaa.bbb.ccc",
		Refresh:    "ddd.eee.fff",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	}

	rec := httptest.NewRecorder()
	httpx.SetSessionCookies(rec, pair)

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}

	access := cookies[httpx.AccessCookie]
	require.NotNil(t, access)
	require.Equal(t, "Bearer aaa.bbb.ccc", access.Value)
	require.Equal(t, 900, access.MaxAge)
	require.Equal(t, "/", access.Path)
	require.True(t, access.HttpOnly)
	require.True(t, access.Secure)
	require.Equal(t, http.SameSiteLaxMode, access.SameSite)

	refresh := cookies[httpx.RefreshCookie]
	require.NotNil(t, refresh)
	require.Equal(t, "Bearer ddd.eee.fff", refresh.Value)
	require.Equal(t, 86400, refresh.MaxAge)

	t.Run("read back from request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(access)
		require.Equal(t, "Bearer aaa.bbb.ccc", httpx.SessionToken(req, httpx.AccessCookie))
		require.Empty(t, httpx.SessionToken(req, httpx.RefreshCookie))
	})

	t.Run("authorization header fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer aaa.bbb.ccc")
		require.Equal(t, "Bearer aaa.bbb.ccc", httpx.SessionToken(req, httpx.AccessCookie))
	})

	t.Run("clear", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.ClearSessionCookies(rec)

		got := rec.Result().Cookies()
		require.Len(t, got, 2)
		for _, c := range got {
			require.Empty(t, c.Value)
			require.Negative(t, c.MaxAge)
		}
	})
}
