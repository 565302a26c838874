package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
)

const userColumns = `id, yandex_id, first_name, last_name, email, is_active, is_supervisor, created_at, updated_at`

type usersRepo struct {
	q querier
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByYandexID(ctx context.Context, yandexID string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE yandex_id = ?`, yandexID))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.YandexID,
		nullString(u.FirstName), nullString(u.LastName), nullString(u.Email),
		u.IsActive, u.IsSupervisor,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, email = ?, updated_at = ? WHERE id = ?`,
		nullString(u.FirstName), nullString(u.LastName), nullString(u.Email),
		time.Now().UTC(), u.ID,
	)
	return requireAffected(res, mapConstraint(err))
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now().UTC(), userID,
	))
}

func (r *usersRepo) SetSupervisor(ctx context.Context, userID string, supervisor bool) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE users SET is_supervisor = ?, updated_at = ? WHERE id = ?`,
		supervisor, time.Now().UTC(), userID,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID))
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                  domain.User
		first, last, email sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.YandexID,
		&first, &last, &email,
		&u.IsActive, &u.IsSupervisor,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.FirstName = stringPtr(first)
	u.LastName = stringPtr(last)
	u.Email = stringPtr(email)
	return u, nil
}
