package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
)

// AccessGuard resolves an access token to an active user. Nothing is
// cached: a deactivation takes effect on the next request.
type AccessGuard struct {
	Store  store.Store
	Tokens TokenCodec
}

func (g *AccessGuard) Authenticate(ctx context.Context, accessToken string) (domain.User, error) {
	raw := jwtx.StripBearer(accessToken)
	if raw == "" {
		return domain.User{}, Fail(ErrUnauthenticated, "token is missing")
	}

	claims, err := g.Tokens.Verify(raw, jwtx.KindAccess)
	if errors.Is(err, jwtx.ErrMissingSubject) {
		return domain.User{}, Wrap(ErrUnauthenticated, "invalid token payload", err)
	}
	if err != nil {
		return domain.User{}, Wrap(ErrUnauthenticated, "invalid access token", err)
	}

	user, err := g.Store.Users().GetUserByYandexID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, Fail(ErrUnauthenticated, "user not found")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive {
		return domain.User{}, Fail(ErrForbidden, "user is deactivated")
	}
	return user, nil
}

func (g *AccessGuard) RequireSupervisor(u domain.User) error {
	if !u.IsSupervisor {
		return Fail(ErrForbidden, "administrator privileges required")
	}
	return nil
}
