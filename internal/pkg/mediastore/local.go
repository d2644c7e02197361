package mediastore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore stores media objects on the local filesystem
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a filesystem-backed media store rooted at basePath
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", basePath, err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Put writes a media object to disk
func (l *LocalStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_ = ctx
	_ = size
	_ = contentType

	path := filepath.Join(l.basePath, filepath.Clean("/"+key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// Delete removes a media object from disk; a missing file is not an error
func (l *LocalStore) Delete(ctx context.Context, key string) error {
	_ = ctx
	path := filepath.Join(l.basePath, filepath.Clean("/"+key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", path, err)
	}
	return nil
}

// Exists checks whether a media object is present on disk
func (l *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	_ = ctx
	path := filepath.Join(l.basePath, filepath.Clean("/"+key))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
