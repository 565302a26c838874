package boothsdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
)

// refreshBuffer is how long before expiry a session refreshes its access
// token.
const refreshBuffer = 30 * time.Second

// Session is an authenticated session. Methods refresh the access token
// when it is close to expiry.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	claims       *jwtx.Claims // nil if the access token has no readable exp
}

// AccessToken returns the current access token without checking expiry.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh unconditionally trades the refresh token for a new pair.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if !s.expiring(time.Now()) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited.
	if !s.expiring(time.Now()) {
		return s.accessToken, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

func (s *Session) expiring(now time.Time) bool {
	return s.claims != nil && s.claims.ExpiresIn(now) <= refreshBuffer
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return errors.New("access token expired and no refresh token available")
	}

	pair, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = pair.AccessToken
	s.refreshToken = pair.RefreshToken
	s.claims = tokenClaims(pair.AccessToken)
	return nil
}

// tokenClaims reads the claims of a JWT without verifying its signature.
// The server remains the authority; this only schedules refreshes.
func tokenClaims(token string) *jwtx.Claims {
	var claims jwtx.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	return &claims
}
