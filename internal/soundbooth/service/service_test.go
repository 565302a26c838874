package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/storage"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store/drivers/sqlite"
	"github.com/aussiebroadwan/soundbooth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "access-secret"
	refreshSecret = "refresh-secret"
)

// fakeIdentity resolves codes from a fixed table.
type fakeIdentity struct {
	profiles map[string]domain.ExternalProfile
	err      error
}

func (f *fakeIdentity) Exchange(_ context.Context, code string) (domain.ExternalProfile, error) {
	if f.err != nil {
		return domain.ExternalProfile{}, f.err
	}
	p, ok := f.profiles[code]
	if !ok {
		return domain.ExternalProfile{}, service.Fail(service.ErrValidation, "unknown code")
	}
	return p, nil
}

type fixture struct {
	store    *sqlite.Store
	media    *storage.Local
	codec    *jwtx.Codec
	identity *fakeIdentity

	sessions    *service.SessionService
	guard       *service.AccessGuard
	audio       *service.AudioService
	supervisors *service.SupervisorService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	media, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	codec := newCodec(t, nil)
	ident := &fakeIdentity{profiles: map[string]domain.ExternalProfile{}}

	return &fixture{
		store:    st,
		media:    media,
		codec:    codec,
		identity: ident,
		sessions: &service.SessionService{
			Store:       st,
			Identity:    ident,
			Tokens:      codec,
			Supervisors: service.NewSupervisorSet("boss"),
		},
		guard:       &service.AccessGuard{Store: st, Tokens: codec},
		audio:       &service.AudioService{Store: st, Storage: media, MaxBytes: 1 << 10},
		supervisors: &service.SupervisorService{Store: st, Storage: media},
	}
}

func newCodec(t *testing.T, now func() time.Time) *jwtx.Codec {
	t.Helper()

	c, err := jwtx.NewCodec("HS256", accessSecret, refreshSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	c.Now = now
	return c
}

// login registers a profile for yandexID and logs it in.
func (f *fixture) login(t *testing.T, yandexID string, email *string) domain.Session {
	t.Helper()

	code := "code-" + yandexID
	f.identity.profiles[code] = domain.ExternalProfile{ExternalID: yandexID, Email: email}

	sess, err := f.sessions.Login(context.Background(), code)
	require.NoError(t, err)
	return sess
}

func ptr(s string) *string { return &s }
