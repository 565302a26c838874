// Package identity exchanges Yandex OAuth authorization codes for user
// profiles.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
	"golang.org/x/oauth2"
)

const (
	YandexAuthURL  = "https://oauth.yandex.ru/authorize"
	YandexTokenURL = "https://oauth.yandex.ru/token"
	YandexInfoURL  = "https://login.yandex.ru/info"

	DefaultTimeout = 10 * time.Second
)

var (
	// ErrExchangeFailed means the provider rejected the code or couldn't be
	// reached.
	ErrExchangeFailed = errors.New("identity: code exchange failed")

	// ErrProfileFetchFailed means we got a token but no usable profile.
	ErrProfileFetchFailed = errors.New("identity: profile fetch failed")
)

type YandexConfig struct {
	ClientID     string
	ClientSecret string

	// RedirectURI is sent with the authorize and token requests when set.
	RedirectURI string

	// LoginURL replaces the generated authorize URL verbatim when set.
	LoginURL string

	Timeout time.Duration
}

// Yandex talks to the Yandex OAuth and login APIs. Endpoint fields default
// to production and can be pointed elsewhere for tests.
type Yandex struct {
	cfg YandexConfig

	AuthURL    string
	TokenURL   string
	InfoURL    string
	HTTPClient *http.Client
}

func NewYandex(cfg YandexConfig) *Yandex {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Yandex{
		cfg:        cfg,
		AuthURL:    YandexAuthURL,
		TokenURL:   YandexTokenURL,
		InfoURL:    YandexInfoURL,
		HTTPClient: &http.Client{},
	}
}

func (y *Yandex) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     y.cfg.ClientID,
		ClientSecret: y.cfg.ClientSecret,
		RedirectURL:  y.cfg.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   y.AuthURL,
			TokenURL:  y.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL is where the login endpoint sends browsers.
func (y *Yandex) AuthCodeURL() string {
	if y.cfg.LoginURL != "" {
		return y.cfg.LoginURL
	}

	v := url.Values{
		"response_type": {"code"},
		"client_id":     {y.cfg.ClientID},
	}
	if y.cfg.RedirectURI != "" {
		v.Set("redirect_uri", y.cfg.RedirectURI)
	}

	sep := "?"
	if strings.Contains(y.AuthURL, "?") {
		sep = "&"
	}
	return y.AuthURL + sep + v.Encode()
}

// Exchange trades code for a bearer token and fetches the caller's profile.
// Both calls share one deadline of Timeout. There are no retries.
func (y *Yandex) Exchange(ctx context.Context, code string) (domain.ExternalProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, y.cfg.Timeout)
	defer cancel()

	log := slogx.FromContext(ctx)

	tok, err := y.oauthConfig().Exchange(context.WithValue(ctx, oauth2.HTTPClient, y.HTTPClient), code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			log.Warn("yandex token exchange rejected",
				"status", re.Response.StatusCode,
				"error_code", re.ErrorCode,
			)
		} else {
			log.Warn("yandex token exchange failed", "err", err)
		}
		return domain.ExternalProfile{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	profile, err := y.fetchProfile(ctx, tok.AccessToken)
	if err != nil {
		log.Warn("yandex profile fetch failed", "err", err)
		return domain.ExternalProfile{}, fmt.Errorf("%w: %v", ErrProfileFetchFailed, err)
	}
	return profile, nil
}

type yandexInfo struct {
	ID           flexString `json:"id"`
	DefaultEmail string     `json:"default_email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
}

func (y *Yandex) fetchProfile(ctx context.Context, accessToken string) (domain.ExternalProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.InfoURL+"?format=json", nil)
	if err != nil {
		return domain.ExternalProfile{}, err
	}
	req.Header.Set("Authorization", "OAuth "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := y.HTTPClient.Do(req)
	if err != nil {
		return domain.ExternalProfile{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.ExternalProfile{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return domain.ExternalProfile{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var info yandexInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return domain.ExternalProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	if info.ID == "" {
		return domain.ExternalProfile{}, errors.New("profile has no id")
	}

	return domain.ExternalProfile{
		ExternalID: string(info.ID),
		Email:      optional(info.DefaultEmail),
		FirstName:  optional(info.FirstName),
		LastName:   optional(info.LastName),
	}, nil
}

// flexString decodes a JSON string or number. Yandex documents ids as
// strings but numeric ids show up from some clients.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
