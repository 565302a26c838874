package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/storage"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/pkg/idx"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const DefaultMaxUploadBytes int64 = 50 << 20

// AllowedAudioExtensions are the upload formats we accept, lower case and
// without the dot.
var AllowedAudioExtensions = []string{"flac", "m4a", "mp3", "ogg", "wav"}

// Upload is an audio file as received from a client.
type Upload struct {
	UserFilename string        `json:"file_name" validate:"required,max=255"`
	OriginalName string        `json:"filename" validate:"required,max=255"`
	ContentType  string        `json:"content_type"`
	Size         int64         `json:"size" validate:"gt=0"`
	Body         io.ReadSeeker `json:"-"`
}

type AudioService struct {
	Store   store.Store
	Storage storage.Storage

	// MaxBytes caps upload size. Zero means DefaultMaxUploadBytes.
	MaxBytes int64

	Now func() time.Time
}

// Upload validates up, stores the blob and records it for user. If the row
// can't be written the blob is removed again.
func (s *AudioService) Upload(ctx context.Context, user domain.User, up Upload) (domain.AudioFile, error) {
	log := slogx.FromContext(ctx)

	up.UserFilename = strings.TrimSpace(up.UserFilename)
	ext, err := s.check(&up)
	if err != nil {
		return domain.AudioFile{}, err
	}

	now := s.now()
	filename := fmt.Sprintf("user_%s_%s.%s", user.ID, uuid.NewString(), ext)

	path, err := s.Storage.Save(ctx, filename, up.Body, up.Size, up.ContentType)
	if err != nil {
		return domain.AudioFile{}, Wrap(ErrStorage, "failed to store file", err)
	}

	audio := domain.AudioFile{
		ID:           idx.NewAt(now).String(),
		Filename:     filename,
		UserFilename: up.UserFilename,
		ContentType:  up.ContentType,
		Path:         path,
		Size:         up.Size,
		UserID:       user.ID,
		CreatedAt:    now,
	}
	if err := s.Store.Audio().CreateAudio(ctx, audio); err != nil {
		if derr := s.Storage.Delete(ctx, path); derr != nil {
			log.Error("failed to remove orphaned blob", "path", path, "err", derr)
		}
		return domain.AudioFile{}, fmt.Errorf("record audio: %w", err)
	}

	log.Info("audio uploaded", "audio_id", audio.ID, "size", audio.Size, "content_type", audio.ContentType)
	return audio, nil
}

// check validates up in place, sniffing the content type when the client
// didn't send a useful one, and returns the normalised extension.
func (s *AudioService) check(up *Upload) (string, error) {
	if err := Validate(up); err != nil {
		return "", err
	}
	if up.Body == nil {
		return "", Fail(ErrValidation, "file is required")
	}

	limit := s.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	if up.Size > limit {
		return "", Fail(ErrValidation, fmt.Sprintf("file exceeds the maximum size of %d bytes", limit))
	}

	ct := strings.ToLower(strings.TrimSpace(up.ContentType))
	if ct == "" || ct == "application/octet-stream" {
		mt, err := mimetype.DetectReader(up.Body)
		if err != nil {
			return "", Wrap(ErrValidation, "could not read file", err)
		}
		if _, err := up.Body.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("rewind upload: %w", err)
		}
		ct = mt.String()
	}
	if !strings.HasPrefix(ct, "audio/") {
		return "", Fail(ErrValidation, "only audio files are allowed")
	}
	up.ContentType = ct

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(up.OriginalName), "."))
	if !slices.Contains(AllowedAudioExtensions, ext) {
		return "", Fail(ErrValidation, "unsupported file format, allowed formats: "+strings.Join(AllowedAudioExtensions, ", "))
	}
	return ext, nil
}

// List returns user's files. Soft-deleted files are included only when
// includeDeleted is set.
func (s *AudioService) List(ctx context.Context, userID string, includeDeleted bool) ([]domain.AudioFile, error) {
	files, err := s.Store.Audio().ListAudioByUser(ctx, userID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list audio: %w", err)
	}
	return files, nil
}

// Delete removes an audio file on behalf of caller, who must own it or be a
// supervisor. A soft delete only flags the row; a full delete drops the row
// and the blob together.
func (s *AudioService) Delete(ctx context.Context, caller domain.User, audioID string, full bool) error {
	audio, err := s.Store.Audio().GetAudioByID(ctx, audioID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && audio.IsDeleted) {
		return Fail(ErrNotFound, "audio file not found")
	}
	if err != nil {
		return fmt.Errorf("lookup audio: %w", err)
	}

	if audio.UserID != caller.ID && !caller.IsSupervisor {
		return Fail(ErrForbidden, "you don't have permission to delete this audio file")
	}

	log := slogx.FromContext(ctx).With("audio_id", audio.ID, "full_delete", full)

	if !full {
		if err := s.Store.Audio().MarkAudioDeleted(ctx, audio.ID); err != nil {
			return fmt.Errorf("mark audio deleted: %w", err)
		}
		log.Info("audio soft-deleted")
		return nil
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Audio().DeleteAudio(ctx, audio.ID); err != nil {
			return fmt.Errorf("delete audio row: %w", err)
		}
		if err := s.Storage.Delete(ctx, audio.Path); err != nil {
			return Wrap(ErrStorage, "failed to delete file", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("audio deleted")
	return nil
}

func (s *AudioService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
