package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/jmoiron/sqlx"
)

type userRow struct {
	ID           string         `db:"id"`
	YandexID     string         `db:"yandex_id"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	Email        sql.NullString `db:"email"`
	IsActive     bool           `db:"is_active"`
	IsSupervisor bool           `db:"is_supervisor"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		YandexID:     r.YandexID,
		FirstName:    stringPtr(r.FirstName),
		LastName:     stringPtr(r.LastName),
		Email:        stringPtr(r.Email),
		IsActive:     r.IsActive,
		IsSupervisor: r.IsSupervisor,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func fromUser(u domain.User) userRow {
	return userRow{
		ID:           u.ID,
		YandexID:     u.YandexID,
		FirstName:    nullString(u.FirstName),
		LastName:     nullString(u.LastName),
		Email:        nullString(u.Email),
		IsActive:     u.IsActive,
		IsSupervisor: u.IsSupervisor,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

const selectUser = `SELECT id, yandex_id, first_name, last_name, email, is_active, is_supervisor, created_at, updated_at FROM users`

type usersRepo struct {
	q querier
}

func (r *usersRepo) get(ctx context.Context, where string, arg any) (domain.User, error) {
	var row userRow
	if err := r.q.GetContext(ctx, &row, selectUser+` WHERE `+where+` = $1`, arg); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.get(ctx, "id", id)
}

func (r *usersRepo) GetUserByYandexID(ctx context.Context, yandexID string) (domain.User, error) {
	return r.get(ctx, "yandex_id", yandexID)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := sqlx.NamedExecContext(ctx, r.q,
		`INSERT INTO users (id, yandex_id, first_name, last_name, email, is_active, is_supervisor, created_at, updated_at)
		 VALUES (:id, :yandex_id, :first_name, :last_name, :email, :is_active, :is_supervisor, :created_at, :updated_at)`,
		fromUser(u),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, email = $3, updated_at = NOW() WHERE id = $4`,
		nullString(u.FirstName), nullString(u.LastName), nullString(u.Email), u.ID,
	)
	return requireAffected(res, mapConstraint(err))
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID))
}

func (r *usersRepo) SetSupervisor(ctx context.Context, userID string, supervisor bool) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE users SET is_supervisor = $1, updated_at = NOW() WHERE id = $2`, supervisor, userID))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID))
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
