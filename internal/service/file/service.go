package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"log/slog"
	"math"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	// item photos are squeezed into this range before they are stored
	imageMaxSize = 300 * 1024
	imageMinSize = 40 * 1024
)

var imageExts = []string{".jpg", ".jpeg", ".png"}

type FileServiceImpl struct {
	fileRepo  file.FileRepository
	storage   storage.FileStorage
	urlExpiry time.Duration
}

func NewFileService(fileRepo file.FileRepository, storage storage.FileStorage, urlExpiry time.Duration) file.FileService {
	return &FileServiceImpl{
		fileRepo:  fileRepo,
		storage:   storage,
		urlExpiry: urlExpiry,
	}
}

// Upload implements file.FileService.
func (s *FileServiceImpl) Upload(ctx context.Context, upload file.Upload) (file.FileResponse, error) {
	if upload.Size > file.MaxUploadSize {
		return file.FileResponse{}, file.ErrFileTooLarge
	}
	buffer, err := io.ReadAll(io.LimitReader(upload.Reader, file.MaxUploadSize+1))
	if err != nil {
		return file.FileResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(buffer) > file.MaxUploadSize {
		return file.FileResponse{}, file.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return s.store(ctx, upload, buffer, ext, contentType)
}

// UploadImage implements file.FileService. PNGs are converted to JPEG.
func (s *FileServiceImpl) UploadImage(ctx context.Context, upload file.Upload) (file.FileResponse, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !isImageExt(ext) {
		return file.FileResponse{}, fmt.Errorf("%w: only jpg, jpeg, png allowed", file.ErrInvalidFileType)
	}
	if upload.Size > file.MaxUploadSize {
		return file.FileResponse{}, file.ErrFileTooLarge
	}

	buffer, err := io.ReadAll(io.LimitReader(upload.Reader, file.MaxUploadSize+1))
	if err != nil {
		return file.FileResponse{}, fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > file.MaxUploadSize {
		return file.FileResponse{}, file.ErrFileTooLarge
	}

	compressed, err := compressImage(buffer, imageMaxSize, imageMinSize)
	if err != nil {
		return file.FileResponse{}, fmt.Errorf("%w: %v", file.ErrInvalidFileType, err)
	}

	return s.store(ctx, upload, compressed, ".jpg", "image/jpeg")
}

// store writes the blob, then registers the handle. A failed registration
// removes the blob again.
func (s *FileServiceImpl) store(ctx context.Context, upload file.Upload, content []byte, ext, contentType string) (file.FileResponse, error) {
	uniqueFilename := uuid.New().String() + ext
	key := uniqueFilename
	if upload.Folder != "" {
		key = path.Join(upload.Folder, uniqueFilename)
	}

	storedPath, err := s.storage.Upload(ctx, bytes.NewReader(content), key, contentType)
	if err != nil {
		return file.FileResponse{}, fmt.Errorf("failed to upload file: %w", err)
	}

	size := int64(len(content))
	created, err := s.fileRepo.Create(ctx, file.File{
		Filename:       filepath.Base(upload.Filename),
		UniqueFilename: uniqueFilename,
		Path:           storedPath,
		StorageType:    s.storage.Kind(),
		MimeType:       contentType,
		Size:           &size,
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, storedPath); delErr != nil {
			slog.WarnContext(ctx, "Failed to remove unregistered blob", "path", storedPath, "error", delErr)
		}
		return file.FileResponse{}, err
	}

	return s.response(ctx, created), nil
}

// GetFile implements file.FileService.
func (s *FileServiceImpl) GetFile(ctx context.Context, id int64) (file.FileResponse, error) {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return file.FileResponse{}, err
	}
	return s.response(ctx, f), nil
}

// ListFiles implements file.FileService.
func (s *FileServiceImpl) ListFiles(ctx context.Context, filter file.FileFilter) (file.ListFileResponse, error) {
	if err := filter.Validate(); err != nil {
		return file.ListFileResponse{}, err
	}

	files, total, err := s.fileRepo.List(ctx, filter)
	if err != nil {
		return file.ListFileResponse{}, fmt.Errorf("failed to list files: %w", err)
	}

	responses := make([]file.FileResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, s.response(ctx, f))
	}

	return file.ListFileResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Files:      responses,
	}, nil
}

// DeleteFile implements file.FileService. The row goes first so a file
// still referenced by an item image is never orphaned.
func (s *FileServiceImpl) DeleteFile(ctx context.Context, id int64) error {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, f.Path); err != nil {
		slog.WarnContext(ctx, "File unregistered but blob removal failed", "file_id", id, "path", f.Path, "error", err)
	}
	return nil
}

func (s *FileServiceImpl) response(ctx context.Context, f file.File) file.FileResponse {
	url, err := s.storage.GetURL(ctx, f.Path, s.urlExpiry)
	if err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		slog.WarnContext(ctx, "Failed to build file URL", "file_id", f.ID, "error", err)
	}
	return file.NewFileResponse(f, url)
}

func isImageExt(ext string) bool {
	for _, allowed := range imageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ==================== HELPER FUNCTIONS ====================

// compressImage re-encodes an image as JPEG, lowering quality and then
// resolution until it fits between minSize and maxSize bytes.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// JPEGs already in range are kept as they are
	if format == "jpeg" && len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize {
			return compressed, nil
		}
		quality -= 5
	}

	// Still too large: scale down towards the middle of the range
	targetSize := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
	newWidth := int(float64(originalWidth) * ratio)
	newHeight := int(float64(originalHeight) * ratio)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	resized := resizeImage(img, newWidth, newHeight)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
