package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Kinds recorded on file handles.
const (
	KindLocal       = "local"
	KindObjectStore = "object_store"
)

var (
	ErrObjectNotFound = errors.New("stored object not found")
	ErrInvalidPath    = errors.New("invalid storage path")
)

// FileStorage keeps opaque blobs addressed by a relative path/key.
type FileStorage interface {
	// Upload stores the content and returns the normalized path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete is idempotent: deleting a missing object is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns a public or presigned URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)

	// Kind is KindLocal or KindObjectStore
	Kind() string
}
