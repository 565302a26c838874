package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnsupportedAlg is returned for anything that isn't an HMAC algorithm.
var ErrUnsupportedAlg = errors.New("jwtx: unsupported signing algorithm")

// SigningMethod resolves an algorithm name (HS256, HS384, HS512) to its jwt
// signing method. Asymmetric algorithms are rejected since tokens are signed
// with shared secrets.
func SigningMethod(alg string) (jwt.SigningMethod, error) {
	m := jwt.GetSigningMethod(alg)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}
	if _, ok := m.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}
	return m, nil
}

// Issue signs a new HS256 token of the given kind for subject that expires
// after ttl.
func Issue(subject string, kind Kind, secret []byte, ttl time.Duration) (string, error) {
	return issueAt(jwt.SigningMethodHS256, subject, kind, secret, ttl, time.Now())
}

func issueAt(
	method jwt.SigningMethod,
	subject string,
	kind Kind,
	secret []byte,
	ttl time.Duration,
	now time.Time,
) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("jwtx: unknown token kind %q", kind)
	}
	if len(secret) == 0 {
		return "", errors.New("jwtx: empty signing secret")
	}

	t := jwt.NewWithClaims(method, NewClaims(subject, kind, ttl, now))
	return t.SignedString(secret)
}
