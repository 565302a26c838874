package service_test

import (
	"context"
	"os"
	"testing"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/stretchr/testify/require"
)

func TestSupervisorGetUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	u := f.login(t, "yid1", ptr("a@b.com")).User

	got, err := f.supervisors.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "yid1", got.YandexID)

	_, err = f.supervisors.GetUser(ctx, "missing")
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.supervisors.ListUserAudio(ctx, "missing", false)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSupervisorUpdateUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	u := f.login(t, "yid1", ptr("a@b.com")).User
	f.login(t, "yid2", ptr("taken@b.com"))

	t.Run("partial", func(t *testing.T) {
		got, err := f.supervisors.UpdateUser(ctx, u.ID, service.UserUpdate{FirstName: ptr(" Ann ")})
		require.NoError(t, err)
		require.Equal(t, "Ann", *got.FirstName)
		require.Equal(t, "a@b.com", *got.Email)
		require.False(t, got.UpdatedAt.Before(u.UpdatedAt))
	})

	t.Run("empty update returns user", func(t *testing.T) {
		got, err := f.supervisors.UpdateUser(ctx, u.ID, service.UserUpdate{})
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := f.supervisors.UpdateUser(ctx, u.ID, service.UserUpdate{Email: ptr("not-an-email")})
		require.ErrorIs(t, err, service.ErrValidation)
		require.Equal(t, "email must be a valid email address", service.Detail(err))
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := f.supervisors.UpdateUser(ctx, u.ID, service.UserUpdate{LastName: ptr("  ")})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("email conflict", func(t *testing.T) {
		_, err := f.supervisors.UpdateUser(ctx, u.ID, service.UserUpdate{Email: ptr("taken@b.com")})
		require.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := f.supervisors.UpdateUser(ctx, "missing", service.UserUpdate{FirstName: ptr("x")})
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestSupervisorDeactivateAndActivate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	sess := f.login(t, "yid1", nil)

	require.NoError(t, f.supervisors.DeleteUser(ctx, sess.User.ID, false))
	_, err := f.guard.Authenticate(ctx, sess.Tokens.Access)
	require.ErrorIs(t, err, service.ErrForbidden)

	require.NoError(t, f.supervisors.ActivateUser(ctx, sess.User.ID))
	_, err = f.guard.Authenticate(ctx, sess.Tokens.Access)
	require.NoError(t, err)

	require.ErrorIs(t, f.supervisors.ActivateUser(ctx, "missing"), service.ErrNotFound)
	require.ErrorIs(t, f.supervisors.DeleteUser(ctx, "missing", false), service.ErrNotFound)
}

func TestSupervisorFullDelete(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	sess := f.login(t, "yid1", nil)
	a, err := f.audio.Upload(ctx, sess.User, upload("a", "a.flac", "audio/flac", []byte("fLaC")))
	require.NoError(t, err)
	b, err := f.audio.Upload(ctx, sess.User, upload("b", "b.m4a", "audio/mp4", []byte("ftyp")))
	require.NoError(t, err)
	require.NoError(t, f.audio.Delete(ctx, sess.User, b.ID, false))

	list, err := f.supervisors.ListUserAudio(ctx, sess.User.ID, true)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, f.supervisors.DeleteUser(ctx, sess.User.ID, true))

	for _, p := range []string{a.Path, b.Path} {
		_, err := os.Stat(p)
		require.True(t, os.IsNotExist(err), p)
	}

	_, err = f.supervisors.GetUser(ctx, sess.User.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = f.store.Audio().GetAudioByID(ctx, a.ID)
	require.Error(t, err)

	_, err = f.guard.Authenticate(ctx, sess.Tokens.Access)
	require.ErrorIs(t, err, service.ErrUnauthenticated)

	require.ErrorIs(t, f.supervisors.DeleteUser(ctx, sess.User.ID, true), service.ErrNotFound)
}

func TestEnsureSupervisors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	u := f.login(t, "yid1", nil).User
	require.False(t, u.IsSupervisor)

	require.NoError(t, f.supervisors.EnsureSupervisors(ctx, service.NewSupervisorSet("yid1", "not-yet-registered")))

	got, err := f.supervisors.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.IsSupervisor)
}
