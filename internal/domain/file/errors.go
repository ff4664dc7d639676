package file

import "errors"

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrFileInUse       = errors.New("file is still attached to a record")
)
