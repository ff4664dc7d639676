package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type fileRepositoryImpl struct {
	db *database.DB
}

func NewFileRepository(db *database.DB) file.FileRepository {
	return &fileRepositoryImpl{db: db}
}

const fileColumns = `id, filename, unique_filename, path, storage_type, mime_type, size, created_at`

func scanFile(row pgx.Row) (file.File, error) {
	var f file.File
	err := row.Scan(&f.ID, &f.Filename, &f.UniqueFilename, &f.Path, &f.StorageType, &f.MimeType, &f.Size, &f.CreatedAt)
	return f, err
}

func (r *fileRepositoryImpl) Create(ctx context.Context, f file.File) (file.File, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO files (filename, unique_filename, path, storage_type, mime_type, size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + fileColumns

	created, err := scanFile(q.QueryRow(ctx, query, f.Filename, f.UniqueFilename, f.Path, f.StorageType, f.MimeType, f.Size))
	if err != nil {
		return file.File{}, fmt.Errorf("failed to register file: %w", err)
	}
	return created, nil
}

func (r *fileRepositoryImpl) GetByID(ctx context.Context, id int64) (file.File, error) {
	q := GetQuerier(ctx, r.db)

	f, err := scanFile(q.QueryRow(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return file.File{}, file.ErrFileNotFound
		}
		return file.File{}, fmt.Errorf("failed to get file %d: %w", id, err)
	}
	return f, nil
}

func (r *fileRepositoryImpl) List(ctx context.Context, filter file.FileFilter) ([]file.File, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.StorageType != nil && *filter.StorageType != "" {
		conditions = append(conditions, fmt.Sprintf("storage_type = $%d", argIdx))
		args = append(args, *filter.StorageType)
		argIdx++
	}
	if filter.MimeType != nil && *filter.MimeType != "" {
		conditions = append(conditions, fmt.Sprintf("mime_type = $%d", argIdx))
		args = append(args, *filter.MimeType)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM files WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count files: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM files WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		fileColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	files := make([]file.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (r *fileRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return file.ErrFileInUse
		}
		return fmt.Errorf("failed to delete file %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return file.ErrFileNotFound
	}
	return nil
}
