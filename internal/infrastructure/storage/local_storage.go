package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/indolink/backend/internal/application/catalog"
)

// Ensure LocalImageStorage implements ImageStorage
var _ catalogapp.ImageStorage = (*LocalImageStorage)(nil)

// LocalImageStorage writes images to a local directory. Intended for
// development and tests; production deployments use S3ImageStorage.
type LocalImageStorage struct {
	dir     string
	baseURL string
}

// NewLocalImageStorage creates a new LocalImageStorage rooted at dir
func NewLocalImageStorage(dir, baseURL string) (*LocalImageStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalImageStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload writes the image bytes under key and returns its public URL
func (s *LocalImageStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	// Keys may contain slashes for per-product prefixes
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the image stored under key; a missing file is not an error
func (s *LocalImageStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
