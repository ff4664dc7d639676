package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http/response"
)

type FileHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	fileService file.FileService
}

func NewFileHandler(fileService file.FileService) FileHandler {
	return &fileHandlerImpl{fileService: fileService}
}

// Upload implements FileHandler. Expects multipart field "file" and an
// optional "folder" value.
func (h *fileHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, file.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(file.MaxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	upload, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer upload.Close()

	result, err := h.fileService.Upload(r.Context(), file.Upload{
		Reader:      upload,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Folder:      r.FormValue("folder"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded", result)
}

// Get implements FileHandler.
func (h *fileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.fileService.GetFile(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements FileHandler.
func (h *fileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := file.FileFilter{
		StorageType: optionalQuery(r, "storage_type"),
		MimeType:    optionalQuery(r, "mime_type"),
	}
	filter.Page, filter.Limit = pageQuery(r)

	result, err := h.fileService.ListFiles(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Files, meta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// Delete implements FileHandler.
func (h *fileHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "File deleted", nil)
}
