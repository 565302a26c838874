package jwtx

import (
	"time"

	"github.com/aussiebroadwan/soundbooth/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. Services normally override these from config.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Kind separates access tokens from refresh tokens. Each kind is signed
// with its own secret and carries its kind in the "type" claim.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindAccess || k == KindRefresh
}

// Claims are the session-token claims. The subject is the caller's external
// identity id, not the internal user id.
type Claims struct {
	jwt.RegisteredClaims

	Kind Kind `json:"type"`
}

// NewClaims builds minimally-correct claims for subject expiring ttl after now.
func NewClaims(subject string, kind Kind, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now).String(),
		},
		Kind: kind,
	}
}

// ExpiresIn returns the time left until exp relative to now, or zero if the
// claims carry no expiry or have already expired.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}
