package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	assert.Equal(t, KindLocal, s.Kind())

	path, err := s.Upload(ctx, strings.NewReader("payload"), "items/INV-0001/a.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "items/INV-0001/a.jpg", path)

	ok, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	url, err := s.GetURL(ctx, path, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/items/INV-0001/a.jpg", url)

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path))

	ok, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Download(ctx, path)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_TraversalStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://x")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("x"), "../../escape.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", path)

	_, err = s.Upload(ctx, strings.NewReader("x"), "/", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestObjectKey(t *testing.T) {
	key, err := objectKey("/files/2026/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "files/2026/a.pdf", key)

	_, err = objectKey("files/../../a.pdf")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = objectKey("")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestNormalizeEndpoint(t *testing.T) {
	got, err := normalizeEndpoint("minio:9000")
	require.NoError(t, err)
	assert.Equal(t, "https://minio:9000", got)

	got, err = normalizeEndpoint("http://localhost:9000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", got)

	got, err = normalizeEndpoint("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewS3Storage_RequiresBucketAndKeys(t *testing.T) {
	_, err := NewS3Storage(context.Background(), S3Config{AccessKey: "a", SecretKey: "b"})
	assert.Error(t, err)

	_, err = NewS3Storage(context.Background(), S3Config{Bucket: "files"})
	assert.Error(t, err)

	s, err := NewS3Storage(context.Background(), S3Config{
		Endpoint: "http://localhost:9000", Bucket: "files", AccessKey: "a", SecretKey: "b", UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, KindObjectStore, s.Kind())
	assert.Equal(t, 15*time.Minute, s.presignExpiration)
}
