// Package storage keeps uploaded audio blobs. Backends return an opaque
// path on Save which is the only handle later Delete calls need.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var ErrInvalidKey = errors.New("storage: invalid key")

type Storage interface {
	// Save writes size bytes from body under key and returns the stored path.
	Save(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (string, error)

	// Delete removes the blob at path. Missing blobs are not an error.
	Delete(ctx context.Context, path string) error

	// Ping checks the backend is reachable and writable.
	Ping(ctx context.Context) error
}

// cleanKey rejects keys that could escape the backend's root.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsRune(key, '\\') {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != key {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
