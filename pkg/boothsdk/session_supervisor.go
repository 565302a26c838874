package boothsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Supervisor operations. All of them require the caller to be a
// supervisor.

// GetUser returns any user by id.
func (s *Session) GetUser(ctx context.Context, userID string) (*UserInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/supervisor/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return nil, err
	}

	var info UserInfo
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListUserAudio returns a user's audio files, optionally including
// soft-deleted ones.
func (s *Session) ListUserAudio(ctx context.Context, userID string, includeDeleted bool) ([]AudioFullInfo, error) {
	path := fmt.Sprintf("/api/supervisor/%s/audio?include_deleted=%t", url.PathEscape(userID), includeDeleted)
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var files []AudioFullInfo
	if err := decodeJSON(resp, &files, http.StatusOK); err != nil {
		return nil, err
	}
	return files, nil
}

// UpdateUser edits a user's profile.
func (s *Session) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*UserInfo, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/supervisor/"+url.PathEscape(userID),
		bytes.NewReader(body), map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return nil, err
	}

	var info UserInfo
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteUser deactivates a user, or removes them with all their files when
// full is set.
func (s *Session) DeleteUser(ctx context.Context, userID string, full bool) error {
	path := "/api/supervisor/" + url.PathEscape(userID) + "?full_delete=" + strconv.FormatBool(full)
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	var ok bool
	return decodeJSON(resp, &ok, http.StatusOK)
}

// ActivateUser re-enables a deactivated user.
func (s *Session) ActivateUser(ctx context.Context, userID string) error {
	path := "/api/supervisor/activate-user?" + url.Values{"user_id": {userID}}.Encode()
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, nil, nil)
	if err != nil {
		return err
	}

	var ok bool
	return decodeJSON(resp, &ok, http.StatusOK)
}
