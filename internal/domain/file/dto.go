package file

import (
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
)

type FileFilter struct {
	StorageType *string `json:"storage_type,omitempty"`
	MimeType    *string `json:"mime_type,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *FileFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.StorageType != nil && !validator.IsInSlice(*f.StorageType, []string{"local", "object_store"}) {
		errs = append(errs, validator.ValidationError{Field: "storage_type", Message: "must be local or object_store"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FileResponse struct {
	ID             int64  `json:"id"`
	Filename       string `json:"filename"`
	UniqueFilename string `json:"unique_filename"`
	Path           string `json:"path"`
	StorageType    string `json:"storage_type"`
	MimeType       string `json:"mime_type"`
	Size           *int64 `json:"size,omitempty"`
	URL            string `json:"url,omitempty"`
	CreatedAt      string `json:"created_at"`
}

func NewFileResponse(f File, url string) FileResponse {
	return FileResponse{
		ID:             f.ID,
		Filename:       f.Filename,
		UniqueFilename: f.UniqueFilename,
		Path:           f.Path,
		StorageType:    f.StorageType,
		MimeType:       f.MimeType,
		Size:           f.Size,
		URL:            url,
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
	}
}

type ListFileResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Files      []FileResponse `json:"files"`
}
