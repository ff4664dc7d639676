package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryFiles struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]file.File
	inUse  map[int64]bool
}

func newMemoryFiles() *memoryFiles {
	return &memoryFiles{rows: map[int64]file.File{}, inUse: map[int64]bool{}}
}

func (m *memoryFiles) Create(ctx context.Context, f file.File) (file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	f.ID = m.nextID
	m.rows[f.ID] = f
	return f, nil
}

func (m *memoryFiles) GetByID(ctx context.Context, id int64) (file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.rows[id]
	if !ok {
		return file.File{}, file.ErrFileNotFound
	}
	return f, nil
}

func (m *memoryFiles) List(ctx context.Context, filter file.FileFilter) ([]file.File, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]file.File, 0, len(m.rows))
	for id := int64(1); id <= m.nextID; id++ {
		if f, ok := m.rows[id]; ok {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryFiles) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return file.ErrFileNotFound
	}
	if m.inUse[id] {
		return file.ErrFileInUse
	}
	delete(m.rows, id)
	return nil
}

func newTestService(t *testing.T) (file.FileService, *memoryFiles, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)
	repo := newMemoryFiles()
	return NewFileService(repo, local, 0), repo, dir
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(w * h)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFileService_UploadImageConvertsToJPEG(t *testing.T) {
	ctx := context.Background()
	svc, _, dir := newTestService(t)

	resp, err := svc.UploadImage(ctx, file.Upload{
		Reader:   bytes.NewReader(pngBytes(t, 64, 48)),
		Filename: "vest.png",
		Folder:   "items/UNI-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "vest.png", resp.Filename)
	assert.Equal(t, "image/jpeg", resp.MimeType)
	assert.Equal(t, storage.KindLocal, resp.StorageType)
	assert.True(t, strings.HasPrefix(resp.Path, "items/UNI-01/"))
	assert.True(t, strings.HasSuffix(resp.UniqueFilename, ".jpg"))
	assert.Equal(t, "http://localhost:8080/uploads/"+resp.Path, resp.URL)

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(resp.Path)))
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, int64(len(stored)), *resp.Size)
}

func TestFileService_UploadImageRejectsOtherTypes(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	_, err := svc.UploadImage(ctx, file.Upload{Reader: strings.NewReader("GIF89a"), Filename: "a.gif"})
	assert.ErrorIs(t, err, file.ErrInvalidFileType)

	_, err = svc.UploadImage(ctx, file.Upload{Reader: strings.NewReader("not really a png"), Filename: "a.png"})
	assert.ErrorIs(t, err, file.ErrInvalidFileType)
	assert.Empty(t, repo.rows)
}

func TestFileService_UploadTooLarge(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), file.Upload{
		Reader:   bytes.NewReader(make([]byte, file.MaxUploadSize+1)),
		Filename: "dump.bin",
	})
	assert.ErrorIs(t, err, file.ErrFileTooLarge)
}

func TestFileService_UploadListDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo, dir := newTestService(t)

	doc, err := svc.Upload(ctx, file.Upload{Reader: strings.NewReader("roster"), Filename: "roster.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.True(t, strings.HasSuffix(doc.Path, ".pdf"))

	list, err := svc.ListFiles(ctx, file.FileFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Equal(t, 1, list.TotalPages)

	repo.inUse[doc.ID] = true
	assert.ErrorIs(t, svc.DeleteFile(ctx, doc.ID), file.ErrFileInUse)
	_, err = os.Stat(filepath.Join(dir, doc.Path))
	require.NoError(t, err, "blob must survive a refused delete")

	repo.inUse[doc.ID] = false
	require.NoError(t, svc.DeleteFile(ctx, doc.ID))
	_, err = os.Stat(filepath.Join(dir, doc.Path))
	assert.True(t, os.IsNotExist(err))

	_, err = svc.GetFile(ctx, doc.ID)
	assert.ErrorIs(t, err, file.ErrFileNotFound)
}

func TestCompressImage_ShrinksLargeImages(t *testing.T) {
	src := pngBytes(t, 1200, 900)
	out, err := compressImage(src, 20*1024, 1024)
	require.NoError(t, err)
	assert.Less(t, len(out), len(src))

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}
