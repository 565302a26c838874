package boothsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
)

// Me returns the signed-in user.
func (s *Session) Me(ctx context.Context) (*UserInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/user/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var info UserInfo
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListAudio returns the signed-in user's audio files.
func (s *Session) ListAudio(ctx context.Context) ([]AudioResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/user/audio", nil, nil)
	if err != nil {
		return nil, err
	}

	var files []AudioResponse
	if err := decodeJSON(resp, &files, http.StatusOK); err != nil {
		return nil, err
	}
	return files, nil
}

// UploadAudio uploads body as filename, labelled fileName. contentType may
// be empty to let the server detect it.
func (s *Session) UploadAudio(
	ctx context.Context,
	fileName, filename, contentType string,
	body io.Reader,
) (*AudioResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	path := "/api/user/upload-audio?" + url.Values{"file_name": {fileName}}.Encode()
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, &buf, map[string]string{
		"Content-Type": mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	var out AudioResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAudio deletes one of the caller's audio files. A full delete also
// removes the stored file.
func (s *Session) DeleteAudio(ctx context.Context, audioID string, full bool) error {
	q := url.Values{
		"audio_id":    {audioID},
		"full_delete": {strconv.FormatBool(full)},
	}
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/user/delete-audio?"+q.Encode(), nil, nil)
	if err != nil {
		return err
	}

	var ok bool
	return decodeJSON(resp, &ok, http.StatusOK)
}

// Logout clears the session cookies server-side. The tokens themselves
// stay valid until they expire.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
