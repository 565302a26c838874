package service_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"strings"
	"testing"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/stretchr/testify/require"
)

// wavHeader is a minimal PCM WAV file with no samples.
func wavHeader() []byte {
	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36))
	b.WriteString("WAVEfmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))     // PCM
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))     // mono
	_ = binary.Write(&b, binary.LittleEndian, uint32(8000))  // sample rate
	_ = binary.Write(&b, binary.LittleEndian, uint32(16000)) // byte rate
	_ = binary.Write(&b, binary.LittleEndian, uint16(2))
	_ = binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(0))
	return b.Bytes()
}

func upload(name, original, contentType string, body []byte) service.Upload {
	return service.Upload{
		UserFilename: name,
		OriginalName: original,
		ContentType:  contentType,
		Size:         int64(len(body)),
		Body:         bytes.NewReader(body),
	}
}

func TestUpload(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	owner := f.login(t, "yid1", nil).User

	t.Run("declared audio type", func(t *testing.T) {
		a, err := f.audio.Upload(ctx, owner, upload("My song", "track.MP3", "audio/mpeg", []byte("ID3 fake frames")))
		require.NoError(t, err)
		require.Equal(t, "My song", a.UserFilename)
		require.Equal(t, "audio/mpeg", a.ContentType)
		require.Equal(t, owner.ID, a.UserID)
		require.True(t, strings.HasPrefix(a.Filename, "user_"+owner.ID+"_"))
		require.True(t, strings.HasSuffix(a.Filename, ".mp3"))

		data, err := os.ReadFile(a.Path)
		require.NoError(t, err)
		require.Equal(t, "ID3 fake frames", string(data))

		stored, err := f.store.Audio().GetAudioByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, a.Path, stored.Path)
		require.EqualValues(t, 15, stored.Size)
	})

	t.Run("sniffed when type is generic", func(t *testing.T) {
		body := wavHeader()
		a, err := f.audio.Upload(ctx, owner, upload("voice", "memo.wav", "application/octet-stream", body))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(a.ContentType, "audio/"), a.ContentType)

		data, err := os.ReadFile(a.Path)
		require.NoError(t, err)
		require.Equal(t, body, data, "body must be rewound after sniffing")
	})
}

func TestUploadRejects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	owner := f.login(t, "yid1", nil).User

	cases := []struct {
		name   string
		up     service.Upload
		detail string
	}{
		{
			name:   "non audio type",
			up:     upload("doc", "doc.mp3", "application/pdf", []byte("%PDF-1.4")),
			detail: "only audio files are allowed",
		},
		{
			name:   "sniffed non audio",
			up:     upload("doc", "doc.mp3", "", []byte("%PDF-1.4\n%%EOF")),
			detail: "only audio files are allowed",
		},
		{
			name: "unsupported extension",
			up:   upload("clip", "clip.aiff", "audio/aiff", []byte("FORM")),
		},
		{
			name: "missing label",
			up:   upload("   ", "a.mp3", "audio/mpeg", []byte("x")),
		},
		{
			name: "empty file",
			up:   upload("a", "a.mp3", "audio/mpeg", nil),
		},
		{
			name: "too large",
			up:   upload("a", "a.mp3", "audio/mpeg", bytes.Repeat([]byte{1}, 2<<10)),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.audio.Upload(ctx, owner, tc.up)
			require.ErrorIs(t, err, service.ErrValidation)
			if tc.detail != "" {
				require.Equal(t, tc.detail, service.Detail(err))
			}
		})
	}

	files, err := f.audio.List(ctx, owner.ID, true)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestUploadRemovesBlobWhenRecordFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	ghost := domain.User{ID: "no-such-user"}
	_, err := f.audio.Upload(context.Background(), ghost, upload("a", "a.mp3", "audio/mpeg", []byte("x")))
	require.Error(t, err)

	entries, err := os.ReadDir(f.media.Root)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestDeleteAudio(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	owner := f.login(t, "yid1", nil).User
	other := f.login(t, "yid2", nil).User
	boss := f.login(t, "boss", nil).User

	newFile := func(t *testing.T) domain.AudioFile {
		t.Helper()
		a, err := f.audio.Upload(ctx, owner, upload("a", "a.ogg", "audio/ogg", []byte("OggS")))
		require.NoError(t, err)
		return a
	}

	t.Run("soft delete hides from owner list", func(t *testing.T) {
		a := newFile(t)
		require.NoError(t, f.audio.Delete(ctx, owner, a.ID, false))

		visible, err := f.audio.List(ctx, owner.ID, false)
		require.NoError(t, err)
		for _, v := range visible {
			require.NotEqual(t, a.ID, v.ID)
		}

		all, err := f.audio.List(ctx, owner.ID, true)
		require.NoError(t, err)
		require.Contains(t, ids(all), a.ID)

		_, err = os.Stat(a.Path)
		require.NoError(t, err, "soft delete keeps the blob")

		err = f.audio.Delete(ctx, owner, a.ID, false)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("full delete removes blob and row", func(t *testing.T) {
		a := newFile(t)
		require.NoError(t, f.audio.Delete(ctx, owner, a.ID, true))

		_, err := os.Stat(a.Path)
		require.True(t, os.IsNotExist(err))

		all, err := f.audio.List(ctx, owner.ID, true)
		require.NoError(t, err)
		require.NotContains(t, ids(all), a.ID)
	})

	t.Run("non owner forbidden", func(t *testing.T) {
		a := newFile(t)
		err := f.audio.Delete(ctx, other, a.ID, false)
		require.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("supervisor may delete", func(t *testing.T) {
		a := newFile(t)
		require.NoError(t, f.audio.Delete(ctx, boss, a.ID, true))
	})

	t.Run("missing", func(t *testing.T) {
		err := f.audio.Delete(ctx, owner, "nope", false)
		require.ErrorIs(t, err, service.ErrNotFound)
		require.Equal(t, "audio file not found", service.Detail(err))
	})
}

func ids(files []domain.AudioFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.ID)
	}
	return out
}
