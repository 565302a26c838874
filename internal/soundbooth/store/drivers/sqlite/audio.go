package sqlite

import (
	"context"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
)

const audioColumns = `id, filename, user_filename, content_type, path, size, user_id, is_deleted, created_at`

type audioRepo struct {
	q querier
}

func (r *audioRepo) CreateAudio(ctx context.Context, a domain.AudioFile) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO audio_files (`+audioColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Filename, a.UserFilename, a.ContentType, a.Path, a.Size,
		a.UserID, a.IsDeleted, a.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *audioRepo) GetAudioByID(ctx context.Context, id string) (domain.AudioFile, error) {
	var a domain.AudioFile
	err := scanAudio(r.q.QueryRowContext(ctx,
		`SELECT `+audioColumns+` FROM audio_files WHERE id = ?`, id), &a)
	if err != nil {
		return domain.AudioFile{}, mapNotFound(err)
	}
	return a, nil
}

func (r *audioRepo) ListAudioByUser(
	ctx context.Context,
	userID string,
	includeDeleted bool,
) ([]domain.AudioFile, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+audioColumns+` FROM audio_files
		 WHERE user_id = ? AND (? OR is_deleted = 0)
		 ORDER BY created_at, id`,
		userID, includeDeleted,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.AudioFile{}
	for rows.Next() {
		var a domain.AudioFile
		if err := scanAudio(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *audioRepo) MarkAudioDeleted(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE audio_files SET is_deleted = 1 WHERE id = ?`, id))
}

func (r *audioRepo) DeleteAudio(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM audio_files WHERE id = ?`, id))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAudio(s scanner, a *domain.AudioFile) error {
	return s.Scan(
		&a.ID, &a.Filename, &a.UserFilename, &a.ContentType, &a.Path, &a.Size,
		&a.UserID, &a.IsDeleted, &a.CreatedAt,
	)
}
