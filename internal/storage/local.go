package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/observer/parley/internal/domain"
)

// LocalStorage keeps uploads on the local filesystem.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save writes the object to disk under its key.
func (l *LocalStorage) Save(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	f, err := os.Create(l.path(key))
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("failed to write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close upload file: %w", err)
	}
	return nil
}

// Open returns the stored file and a content type guessed from its
// extension.
func (l *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	f, err := os.Open(l.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", domain.ErrObjectNotFound
		}
		return nil, "", fmt.Errorf("failed to open upload file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}

// DownloadURL returns "" so the server streams local files itself.
func (l *LocalStorage) DownloadURL(ctx context.Context, key string) (string, error) {
	return "", nil
}

// path confines keys to the upload directory. Keys are server-generated
// but download requests arrive with client-supplied names.
func (l *LocalStorage) path(key string) string {
	return filepath.Join(l.dir, filepath.Base(key))
}
