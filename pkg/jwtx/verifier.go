package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the scheme marker tokens carry when stored in cookies.
const BearerPrefix = "Bearer "

var (
	// ErrInvalidToken covers every reason a token can't be trusted. The more
	// specific errors below wrap it, so errors.Is(err, ErrInvalidToken) holds
	// for all of them.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	ErrMalformed    = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrInvalidSig   = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrExpired      = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrKindMismatch = fmt.Errorf("%w: wrong token kind", ErrInvalidToken)

	// ErrMissingSubject means the token verified but has no "sub" claim.
	ErrMissingSubject = errors.New("jwtx: missing subject")
)

// StripBearer removes an optional "Bearer" scheme and surrounding spaces. A
// bare "Bearer" yields "".
func StripBearer(raw string) string {
	raw = strings.TrimSpace(raw)
	rest, ok := strings.CutPrefix(raw, strings.TrimSpace(BearerPrefix))
	if ok && (rest == "" || rest[0] == ' ') {
		return strings.TrimSpace(rest)
	}
	return raw
}

// Verify checks an HS256 token of the given kind against secret and returns
// its claims.
func Verify(token string, kind Kind, secret []byte) (Claims, error) {
	return verifyAt(jwt.SigningMethodHS256, token, kind, secret, time.Now())
}

func verifyAt(
	method jwt.SigningMethod,
	raw string,
	kind Kind,
	secret []byte,
	now time.Time,
) (Claims, error) {
	raw = StripBearer(raw)
	if raw == "" {
		return Claims{}, ErrMalformed
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, ErrMalformed
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Kind != kind {
		return Claims{}, ErrKindMismatch
	}
	if claims.Subject == "" {
		return Claims{}, ErrMissingSubject
	}

	return claims, nil
}
