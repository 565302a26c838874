package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/jmoiron/sqlx"
)

type audioRow struct {
	ID           string    `db:"id"`
	Filename     string    `db:"filename"`
	UserFilename string    `db:"user_filename"`
	ContentType  string    `db:"content_type"`
	Path         string    `db:"path"`
	Size         int64     `db:"size"`
	UserID       string    `db:"user_id"`
	IsDeleted    bool      `db:"is_deleted"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r audioRow) toDomain() domain.AudioFile {
	return domain.AudioFile(r)
}

const selectAudio = `SELECT id, filename, user_filename, content_type, path, size, user_id, is_deleted, created_at FROM audio_files`

type audioRepo struct {
	q querier
}

func (r *audioRepo) CreateAudio(ctx context.Context, a domain.AudioFile) error {
	row := audioRow(a)
	row.CreatedAt = row.CreatedAt.UTC()

	_, err := sqlx.NamedExecContext(ctx, r.q,
		`INSERT INTO audio_files (id, filename, user_filename, content_type, path, size, user_id, is_deleted, created_at)
		 VALUES (:id, :filename, :user_filename, :content_type, :path, :size, :user_id, :is_deleted, :created_at)`,
		row,
	)
	return mapConstraint(err)
}

func (r *audioRepo) GetAudioByID(ctx context.Context, id string) (domain.AudioFile, error) {
	var row audioRow
	if err := r.q.GetContext(ctx, &row, selectAudio+` WHERE id = $1`, id); err != nil {
		return domain.AudioFile{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *audioRepo) ListAudioByUser(
	ctx context.Context,
	userID string,
	includeDeleted bool,
) ([]domain.AudioFile, error) {
	var rows []audioRow
	err := r.q.SelectContext(ctx, &rows,
		selectAudio+` WHERE user_id = $1 AND ($2 OR NOT is_deleted) ORDER BY created_at, id`,
		userID, includeDeleted,
	)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AudioFile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *audioRepo) MarkAudioDeleted(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE audio_files SET is_deleted = TRUE WHERE id = $1`, id))
}

func (r *audioRepo) DeleteAudio(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM audio_files WHERE id = $1`, id))
}
