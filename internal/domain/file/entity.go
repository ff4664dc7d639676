package file

import "time"

// File is a registered handle to an uploaded blob. The bytes live in
// storage; only the handle is kept here.
type File struct {
	ID             int64
	Filename       string
	UniqueFilename string
	Path           string
	StorageType    string // storage.KindLocal or storage.KindObjectStore
	MimeType       string
	Size           *int64
	CreatedAt      time.Time
}

// MaxUploadSize caps a single upload in bytes.
const MaxUploadSize = 10 << 20
