package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MockStorage implements document storage on the local filesystem.
// This is for development and tests without a GCS bucket.
type MockStorage struct {
	baseURL    string // server URL (e.g. "http://localhost:8080")
	uploadsDir string // local directory for uploads
}

// NewMockStorage creates a filesystem-backed store rooted at uploadsDir.
func NewMockStorage(baseURL, uploadsDir string) (*MockStorage, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &MockStorage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsDir: uploadsDir,
	}, nil
}

func (m *MockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := m.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %q: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file %q: %w", key, err)
	}
	return fmt.Sprintf("%s/api/v1/files/%s", m.baseURL, key), nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(m.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(m.path(key))
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

// Open returns the stored file for the mock download handler.
func (m *MockStorage) Open(key string) (io.ReadCloser, error) {
	return os.Open(m.path(key))
}

// path maps a storage key onto the local filesystem, refusing traversal.
func (m *MockStorage) path(key string) string {
	clean := filepath.Clean("/" + key)
	return filepath.Join(m.uploadsDir, clean)
}
