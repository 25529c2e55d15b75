package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Blobs larger than this are rejected outright; signature strokes and scanned
// identity documents stay well under it.
const maxBlobSize = 10 << 20

var allowedContentTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"application/pdf": ".pdf",
}

// LocalStore writes blobs under a base directory and serves them from
// /files/.
type LocalStore struct {
	baseDir string
	baseURL string
	log     *zap.Logger
}

// NewLocalStore builds a disk-backed blob store rooted at baseDir.
func NewLocalStore(baseDir, publicOrigin string, log *zap.Logger) *LocalStore {
	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(publicOrigin, "/") + "/files",
		log:     log.Named("storage.local"),
	}
}

// BaseDir exposes the root directory for static file serving.
func (s *LocalStore) BaseDir() string { return s.baseDir }

func (s *LocalStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyBlob
	}
	if len(data) > maxBlobSize {
		return "", ErrTooLarge
	}
	ext, ok := allowedContentTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupported
	}

	name := cleaned + ext
	full := filepath.Join(s.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}

	return s.baseURL + "/" + name, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}
	for _, ext := range allowedContentTypes {
		full := filepath.Join(s.baseDir, cleaned+ext)
		if err := os.Remove(full); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	// Nothing on disk for this key; treat as already deleted.
	return nil
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(cleaned, "..") || strings.HasPrefix(cleaned, "/") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
