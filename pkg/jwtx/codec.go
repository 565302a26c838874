package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Pair is an access/refresh token pair along with the lifetimes used to
// mint them, so transports can set matching cookie max-ages.
type Pair struct {
	Access     string
	Refresh    string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Codec issues and verifies session tokens. Access and refresh tokens use
// different secrets so a leaked refresh secret can't mint access tokens.
type Codec struct {
	Method        jwt.SigningMethod
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// NewCodec builds a Codec for the named HMAC algorithm. The two secrets must
// be non-empty and distinct.
func NewCodec(alg, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	method, err := SigningMethod(alg)
	if err != nil {
		return nil, err
	}
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwtx: access and refresh secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("jwtx: access and refresh secrets must differ")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("jwtx: token TTLs must be positive")
	}

	return &Codec{
		Method:        method,
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}, nil
}

// Issue signs a token of the given kind for subject.
func (c *Codec) Issue(subject string, kind Kind) (string, error) {
	secret, ttl, err := c.params(kind)
	if err != nil {
		return "", err
	}
	return issueAt(c.method(), subject, kind, secret, ttl, c.now())
}

// Verify checks a token of the given kind. A leading "Bearer " is ignored.
func (c *Codec) Verify(token string, kind Kind) (Claims, error) {
	secret, _, err := c.params(kind)
	if err != nil {
		return Claims{}, err
	}
	return verifyAt(c.method(), token, kind, secret, c.now())
}

// IssuePair issues both an access and a refresh token for subject.
func (c *Codec) IssuePair(subject string) (Pair, error) {
	access, err := c.Issue(subject, KindAccess)
	if err != nil {
		return Pair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := c.Issue(subject, KindRefresh)
	if err != nil {
		return Pair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	return Pair{
		Access:     access,
		Refresh:    refresh,
		AccessTTL:  c.AccessTTL,
		RefreshTTL: c.RefreshTTL,
	}, nil
}

func (c *Codec) params(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return c.AccessSecret, c.AccessTTL, nil
	case KindRefresh:
		return c.RefreshSecret, c.RefreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("jwtx: unknown token kind %q", kind)
	}
}

func (c *Codec) method() jwt.SigningMethod {
	if c.Method == nil {
		return jwt.SigningMethodHS256
	}
	return c.Method
}

func (c *Codec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
