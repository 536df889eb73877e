// Package storage persists upload blobs. The local backend writes files
// under the configured upload directory and lets the server stream them
// back; the R2 backend pushes objects to a bucket over the S3 API and
// hands out presigned download URLs instead.
package storage

import (
	"context"
	"io"
)

// Store is the blob backend behind the upload endpoints.
type Store interface {
	// Save writes an object under the given key.
	Save(ctx context.Context, key, contentType string, body io.Reader, size int64) error

	// Open returns the object's content and content type. Returns
	// domain.ErrObjectNotFound for unknown keys.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)

	// DownloadURL returns the URL clients should fetch the object from,
	// or "" when the server should stream the object itself.
	DownloadURL(ctx context.Context, key string) (string, error)
}
