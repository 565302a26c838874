package boothsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client for the soundbooth service. It covers the public
// endpoints and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// LoginURL returns the Yandex authorization URL the browser should be sent
// to.
func (c *Client) LoginURL(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth/login/yandex", nil, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return "", err
	}

	var out LoginRedirect
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.RedirectURL, nil
}

// Callback completes a login with the authorization code Yandex handed
// back and returns a Session for the resulting user.
func (c *Client) Callback(ctx context.Context, code string) (*Session, error) {
	path := "/api/auth/yandex/callback?" + url.Values{"code": {code}}.Encode()
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSessionFromTokens(pair.AccessToken, pair.RefreshToken), nil
}

// Refresh exchanges a refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/refresh", nil, nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: bearerPrefix + refreshToken})

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return nil, err
	}
	return &pair, nil
}

// AuthenticateWithRefreshToken creates a session from a stored refresh
// token.
func (c *Client) AuthenticateWithRefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	pair, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return c.NewSessionFromTokens(pair.AccessToken, pair.RefreshToken), nil
}

// NewSessionFromTokens wraps an existing token pair. The access token's
// expiry is read from its claims without verifying it.
func (c *Client) NewSessionFromTokens(accessToken, refreshToken string) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		claims:       tokenClaims(accessToken),
	}
}
