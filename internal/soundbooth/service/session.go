package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/pkg/idx"
	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
)

// IdentityExchanger turns an OAuth authorization code into a profile.
type IdentityExchanger interface {
	Exchange(ctx context.Context, code string) (domain.ExternalProfile, error)
}

// TokenCodec issues and verifies session tokens.
type TokenCodec interface {
	IssuePair(subject string) (jwtx.Pair, error)
	Verify(token string, kind jwtx.Kind) (jwtx.Claims, error)
}

// SupervisorSet is the set of external ids granted the supervisor role.
type SupervisorSet map[string]struct{}

func NewSupervisorSet(ids ...string) SupervisorSet {
	s := make(SupervisorSet, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s SupervisorSet) Has(externalID string) bool {
	_, ok := s[externalID]
	return ok
}

// SessionService runs the login and refresh flows. Tokens carry the user's
// Yandex id as subject.
type SessionService struct {
	Store       store.Store
	Identity    IdentityExchanger
	Tokens      TokenCodec
	Supervisors SupervisorSet

	// RequireEmail refuses first logins whose profile has no email.
	RequireEmail bool

	Now func() time.Time
}

// Login exchanges code with the identity provider, resolves or creates the
// matching user and issues a token pair. Existing users are returned as
// stored; their profile is never overwritten from the provider.
func (s *SessionService) Login(ctx context.Context, code string) (domain.Session, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Session{}, Fail(ErrValidation, "code is required")
	}

	profile, err := s.Identity.Exchange(ctx, code)
	if err != nil {
		return domain.Session{}, err
	}

	user, created, err := s.resolveUser(ctx, profile)
	if err != nil {
		return domain.Session{}, err
	}

	pair, err := s.Tokens.IssuePair(user.YandexID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue tokens: %w", err)
	}

	slogx.FromContext(ctx).Info("user logged in",
		"user_id", user.ID,
		"new_user", created,
	)
	return domain.Session{User: user, Tokens: pair}, nil
}

func (s *SessionService) resolveUser(ctx context.Context, p domain.ExternalProfile) (domain.User, bool, error) {
	users := s.Store.Users()

	u, err := users.GetUserByYandexID(ctx, p.ExternalID)
	switch {
	case err == nil:
		return u, false, nil
	case !errors.Is(err, store.ErrNotFound):
		return domain.User{}, false, fmt.Errorf("lookup user: %w", err)
	}

	if s.RequireEmail && p.Email == nil {
		return domain.User{}, false, Fail(ErrValidation, "an email address is required to register")
	}

	now := s.now()
	u = domain.User{
		ID:           idx.NewAt(now).String(),
		YandexID:     p.ExternalID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		IsActive:     true,
		IsSupervisor: s.Supervisors.Has(p.ExternalID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = users.CreateUser(ctx, u)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, false, fmt.Errorf("create user: %w", err)
	}

	// Either a concurrent first login won the insert, or the email belongs
	// to someone else.
	existing, lerr := users.GetUserByYandexID(ctx, p.ExternalID)
	if lerr == nil {
		return existing, false, nil
	}
	if errors.Is(lerr, store.ErrNotFound) {
		return domain.User{}, false, Wrap(ErrConflict, "a user with this email already exists", err)
	}
	return domain.User{}, false, fmt.Errorf("lookup user: %w", lerr)
}

// Refresh issues a new pair for the subject of a valid refresh token. The
// presented refresh token stays valid until it expires; there is no
// rotation or revocation list.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (domain.Session, error) {
	raw := jwtx.StripBearer(refreshToken)
	if raw == "" {
		return domain.Session{}, Fail(ErrUnauthenticated, "refresh token is missing")
	}

	claims, err := s.Tokens.Verify(raw, jwtx.KindRefresh)
	if errors.Is(err, jwtx.ErrMissingSubject) {
		return domain.Session{}, Wrap(ErrUnauthenticated, "invalid token payload", err)
	}
	if err != nil {
		return domain.Session{}, Wrap(ErrUnauthenticated, "invalid refresh token", err)
	}

	user, err := s.Store.Users().GetUserByYandexID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, Fail(ErrUnauthenticated, "user not found")
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("lookup user: %w", err)
	}

	pair, err := s.Tokens.IssuePair(user.YandexID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue tokens: %w", err)
	}
	return domain.Session{User: user, Tokens: pair}, nil
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
