package file

import (
	"context"
	"io"
)

// Upload is a blob handed to the file service.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64

	// Folder groups blobs under a storage prefix, e.g. "items/INV-0001"
	Folder string
}

type FileService interface {
	// Upload stores the bytes and registers the handle
	Upload(ctx context.Context, upload Upload) (FileResponse, error)

	// UploadImage accepts jpg/png, recompresses to JPEG and registers the handle
	UploadImage(ctx context.Context, upload Upload) (FileResponse, error)

	GetFile(ctx context.Context, id int64) (FileResponse, error)
	ListFiles(ctx context.Context, filter FileFilter) (ListFileResponse, error)

	// DeleteFile removes the registry row and then the blob
	DeleteFile(ctx context.Context, id int64) error
}
