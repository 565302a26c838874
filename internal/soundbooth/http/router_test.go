package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	soundhttp "github.com/aussiebroadwan/soundbooth/internal/soundbooth/http"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/identity"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/storage"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store/drivers/sqlite"
	"github.com/aussiebroadwan/soundbooth/pkg/boothsdk"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "access-secret"
	refreshSecret = "refresh-secret"
)

type yandexProfile struct {
	ID           string `json:"id"`
	DefaultEmail string `json:"default_email,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
}

// newFakeYandex serves the token and info endpoints. Each code maps to the
// profile its token resolves to; unknown codes are rejected like an
// expired code.
func newFakeYandex(t *testing.T, profiles map[string]yandexProfile) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		code := r.PostForm.Get("code")
		w.Header().Set("Content-Type", "application/json")
		if _, ok := profiles[code]; !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Code has expired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-" + code,
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /info", func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.Header.Get("Authorization"), "OAuth tok-")
		p, ok := profiles[code]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	srv    *httptest.Server
	client *boothsdk.Client
	store  *sqlite.Store
	codec  *jwtx.Codec
	media  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	mediaDir := t.TempDir()
	media, err := storage.NewLocal(mediaDir)
	require.NoError(t, err)

	codec, err := jwtx.NewCodec("HS256", accessSecret, refreshSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	yandexSrv := newFakeYandex(t, map[string]yandexProfile{
		"abc":    {ID: "yid1", DefaultEmail: "a@b.com"},
		"abc2":   {ID: "yid1", DefaultEmail: "a@b.com"},
		"worker": {ID: "yid2", DefaultEmail: "w@b.com"},
		"boss":   {ID: "boss", DefaultEmail: "boss@b.com"},
	})
	ya := identity.NewYandex(identity.YandexConfig{ClientID: "client", ClientSecret: "secret", Timeout: 5 * time.Second})
	ya.AuthURL = yandexSrv.URL + "/authorize"
	ya.TokenURL = yandexSrv.URL + "/token"
	ya.InfoURL = yandexSrv.URL + "/info"

	guard := &service.AccessGuard{Store: st, Tokens: codec}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := soundhttp.NewRouter("test", st, media, logger)
	generous := httpx.RateLimitConfig{Requests: 1000, Window: time.Minute, Burst: 1000}
	router.Limits = httpx.RateLimits{Strict: generous, Moderate: generous, Lenient: generous}
	router.MaxUploadBytes = 1 << 20
	router.AuthURL = ya
	router.SessionService = &service.SessionService{
		Store:       st,
		Identity:    ya,
		Tokens:      codec,
		Supervisors: service.NewSupervisorSet("boss"),
	}
	router.AccessGuard = guard
	router.AudioService = &service.AudioService{Store: st, Storage: media, MaxBytes: 1 << 16}
	router.SupervisorService = &service.SupervisorService{Store: st, Storage: media}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &harness{
		srv:    srv,
		client: boothsdk.NewClient(srv.URL),
		store:  st,
		codec:  codec,
		media:  mediaDir,
	}
}

func (h *harness) login(t *testing.T, code string) *boothsdk.Session {
	t.Helper()

	sess, err := h.client.Callback(context.Background(), code)
	require.NoError(t, err)
	return sess
}

// do performs a raw request with an optional access_token cookie.
func (h *harness) do(t *testing.T, method, path, accessCookie string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, h.srv.URL+path, nil)
	require.NoError(t, err)
	if accessCookie != "" {
		req.AddCookie(&http.Cookie{Name: httpx.AccessCookie, Value: accessCookie})
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func cookiesByName(resp *http.Response) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range resp.Cookies() {
		out[c.Name] = c
	}
	return out
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *boothsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	require.Equal(t, code, apiErr.Code)
}
