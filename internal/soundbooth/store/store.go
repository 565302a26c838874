package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it and hand out sub-repositories, so a transaction
// scoped Store exposes the same repos as the pooled one.
type Store interface {
	Users() Users
	Audio() Audio

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing if fn returns nil and
	// rolling back otherwise. Inside fn only use tx: the pooled Store may be
	// limited to a single connection.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByYandexID is the login lookup.
	GetUserByYandexID(ctx context.Context, yandexID string) (domain.User, error)

	// CreateUser inserts u. ID and timestamps are set by the caller. A
	// duplicate yandex_id or email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile writes the name and email columns of u and bumps
	// updated_at.
	UpdateProfile(ctx context.Context, u domain.User) error

	SetActive(ctx context.Context, userID string, active bool) error
	SetSupervisor(ctx context.Context, userID string, supervisor bool) error

	// DeleteUser cascades to audio_files (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Audio interface {
	CreateAudio(ctx context.Context, a domain.AudioFile) error
	GetAudioByID(ctx context.Context, id string) (domain.AudioFile, error)

	// ListAudioByUser returns the user's files oldest first. Soft-deleted
	// rows are skipped unless includeDeleted is set.
	ListAudioByUser(ctx context.Context, userID string, includeDeleted bool) ([]domain.AudioFile, error)

	MarkAudioDeleted(ctx context.Context, id string) error
	DeleteAudio(ctx context.Context, id string) error
}
