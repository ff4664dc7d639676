package file

import "context"

type FileRepository interface {
	Create(ctx context.Context, f File) (File, error)
	GetByID(ctx context.Context, id int64) (File, error)
	List(ctx context.Context, filter FileFilter) ([]File, int64, error)

	// Delete fails with ErrFileInUse while an item image references the file
	Delete(ctx context.Context, id int64) error
}
