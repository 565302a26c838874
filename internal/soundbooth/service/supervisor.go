package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/storage"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
)

// UserUpdate is the body of a supervisor profile edit. Absent fields are
// left as they are.
type UserUpdate struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitnil,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitnil,min=1,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitnil,email,max=255"`
}

// SupervisorService implements the administrative operations on other
// users' accounts. Callers are expected to have passed
// AccessGuard.RequireSupervisor.
type SupervisorService struct {
	Store   store.Store
	Storage storage.Storage
}

func (s *SupervisorService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, Fail(ErrNotFound, "user not found")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// ListUserAudio returns every audio file of userID, optionally including
// soft-deleted ones.
func (s *SupervisorService) ListUserAudio(ctx context.Context, userID string, includeDeleted bool) ([]domain.AudioFile, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	files, err := s.Store.Audio().ListAudioByUser(ctx, userID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list audio: %w", err)
	}
	return files, nil
}

// UpdateUser applies a partial profile edit. An email already held by
// another user is a conflict.
func (s *SupervisorService) UpdateUser(ctx context.Context, userID string, upd UserUpdate) (domain.User, error) {
	upd.FirstName = trimmed(upd.FirstName)
	upd.LastName = trimmed(upd.LastName)
	upd.Email = trimmed(upd.Email)
	if err := Validate(upd); err != nil {
		return domain.User{}, err
	}

	change := domain.ProfileUpdate{FirstName: upd.FirstName, LastName: upd.LastName, Email: upd.Email}

	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return Fail(ErrNotFound, "user not found")
		}
		if err != nil {
			return fmt.Errorf("lookup user: %w", err)
		}
		if change.Empty() {
			out = u
			return nil
		}

		u = change.Apply(u)
		err = tx.Users().UpdateProfile(ctx, u)
		if errors.Is(err, store.ErrAlreadyExists) {
			return Wrap(ErrConflict, "a user with this email already exists", err)
		}
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		out, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user updated", "target_user_id", userID)
	return out, nil
}

// DeleteUser deactivates userID or, with full set, removes the user, their
// audio rows and then their stored blobs. Blob removal happens after
// commit; a failure there is logged and leaves an orphan behind.
func (s *SupervisorService) DeleteUser(ctx context.Context, userID string, full bool) error {
	log := slogx.FromContext(ctx).With("target_user_id", userID, "full_delete", full)

	if !full {
		err := s.Store.Users().SetActive(ctx, userID, false)
		if errors.Is(err, store.ErrNotFound) {
			return Fail(ErrNotFound, "user not found")
		}
		if err != nil {
			return fmt.Errorf("deactivate user: %w", err)
		}
		log.Info("user deactivated")
		return nil
	}

	var files []domain.AudioFile
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		files, err = tx.Audio().ListAudioByUser(ctx, userID, true)
		if err != nil {
			return fmt.Errorf("list audio: %w", err)
		}
		err = tx.Users().DeleteUser(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return Fail(ErrNotFound, "user not found")
		}
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := s.Storage.Delete(ctx, f.Path); err != nil {
			log.Warn("failed to purge audio blob", "audio_id", f.ID, "path", f.Path, "err", err)
		}
	}

	log.Info("user deleted", "purged_files", len(files))
	return nil
}

func (s *SupervisorService) ActivateUser(ctx context.Context, userID string) error {
	err := s.Store.Users().SetActive(ctx, userID, true)
	if errors.Is(err, store.ErrNotFound) {
		return Fail(ErrNotFound, "user not found")
	}
	if err != nil {
		return fmt.Errorf("activate user: %w", err)
	}

	slogx.FromContext(ctx).Info("user activated", "target_user_id", userID)
	return nil
}

// EnsureSupervisors grants the supervisor role to already registered users
// listed in set. Users that haven't logged in yet get the role at first
// login instead.
func (s *SupervisorService) EnsureSupervisors(ctx context.Context, set SupervisorSet) error {
	log := slogx.FromContext(ctx)

	for yandexID := range set {
		u, err := s.Store.Users().GetUserByYandexID(ctx, yandexID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("lookup supervisor %s: %w", yandexID, err)
		}
		if u.IsSupervisor {
			continue
		}
		if err := s.Store.Users().SetSupervisor(ctx, u.ID, true); err != nil {
			return fmt.Errorf("promote %s: %w", yandexID, err)
		}
		log.Info("supervisor role granted", "user_id", u.ID)
	}
	return nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
