package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store/drivers/sqlite"
	"github.com/aussiebroadwan/soundbooth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func ptr(s string) *string { return &s }

func newUser(yandexID string, email *string) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:        idx.New().String(),
		YandexID:  yandexID,
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newAudio(userID, name string) domain.AudioFile {
	return domain.AudioFile{
		ID:           idx.New().String(),
		Filename:     "user_" + userID + "_" + name + ".mp3",
		UserFilename: name,
		ContentType:  "audio/mpeg",
		Path:         "media/" + name + ".mp3",
		Size:         1234,
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	users := s.Users()

	u := newUser("yid1", ptr("a@b.com"))
	u.FirstName = ptr("Ann")
	require.NoError(t, users.CreateUser(ctx, u))

	t.Run("lookup by yandex id and id", func(t *testing.T) {
		got, err := users.GetUserByYandexID(ctx, "yid1")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "a@b.com", *got.Email)
		require.Equal(t, "Ann", *got.FirstName)
		require.Nil(t, got.LastName)
		require.True(t, got.IsActive)
		require.False(t, got.IsSupervisor)
		require.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Second)

		byID, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, got, byID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := users.GetUserByYandexID(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = users.GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate yandex id", func(t *testing.T) {
		err := users.CreateUser(ctx, newUser("yid1", nil))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := users.CreateUser(ctx, newUser("yid2", ptr("a@b.com")))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("many null emails", func(t *testing.T) {
		require.NoError(t, users.CreateUser(ctx, newUser("yid3", nil)))
		require.NoError(t, users.CreateUser(ctx, newUser("yid4", nil)))
	})

	t.Run("update profile", func(t *testing.T) {
		u2 := u
		u2.LastName = ptr("Lee")
		u2.Email = ptr("ann@example.com")
		require.NoError(t, users.UpdateProfile(ctx, u2))

		got, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Lee", *got.LastName)
		require.Equal(t, "ann@example.com", *got.Email)
		require.False(t, got.UpdatedAt.Before(got.CreatedAt))

		missing := newUser("ghost", nil)
		require.ErrorIs(t, users.UpdateProfile(ctx, missing), store.ErrNotFound)
	})

	t.Run("flags", func(t *testing.T) {
		require.NoError(t, users.SetActive(ctx, u.ID, false))
		require.NoError(t, users.SetSupervisor(ctx, u.ID, true))

		got, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.False(t, got.IsActive)
		require.True(t, got.IsSupervisor)

		require.ErrorIs(t, users.SetActive(ctx, "ghost", true), store.ErrNotFound)
		require.ErrorIs(t, users.SetSupervisor(ctx, "ghost", true), store.ErrNotFound)
	})
}

func TestAudio(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	u := newUser("yid1", nil)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	first := newAudio(u.ID, "first")
	second := newAudio(u.ID, "second")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, s.Audio().CreateAudio(ctx, first))
	require.NoError(t, s.Audio().CreateAudio(ctx, second))

	t.Run("get", func(t *testing.T) {
		got, err := s.Audio().GetAudioByID(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, first.Filename, got.Filename)
		require.Equal(t, int64(1234), got.Size)
		require.False(t, got.IsDeleted)

		_, err = s.Audio().GetAudioByID(ctx, "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("orphan rejected", func(t *testing.T) {
		err := s.Audio().CreateAudio(ctx, newAudio(idx.New().String(), "orphan"))
		require.Error(t, err)
	})

	t.Run("soft delete hides from default list", func(t *testing.T) {
		require.NoError(t, s.Audio().MarkAudioDeleted(ctx, first.ID))

		live, err := s.Audio().ListAudioByUser(ctx, u.ID, false)
		require.NoError(t, err)
		require.Len(t, live, 1)
		require.Equal(t, second.ID, live[0].ID)

		all, err := s.Audio().ListAudioByUser(ctx, u.ID, true)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, first.ID, all[0].ID)
		require.True(t, all[0].IsDeleted)
	})

	t.Run("hard delete", func(t *testing.T) {
		require.NoError(t, s.Audio().DeleteAudio(ctx, second.ID))
		require.ErrorIs(t, s.Audio().DeleteAudio(ctx, second.ID), store.ErrNotFound)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		got, err := s.Audio().ListAudioByUser(ctx, "nobody", true)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("user delete cascades", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, u.ID))

		_, err := s.Audio().GetAudioByID(ctx, first.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	t.Run("commit", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().CreateUser(ctx, newUser("committed", nil))
		})
		require.NoError(t, err)

		_, err = s.Users().GetUserByYandexID(ctx, "committed")
		require.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Users().CreateUser(ctx, newUser("rolled-back", nil)))
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = s.Users().GetUserByYandexID(ctx, "rolled-back")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("no nesting", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
	})
}
