package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coveyrise/steward/internal/db"
	"github.com/coveyrise/steward/internal/domain"
)

// SQLiteFileRepo implements FileRepo using a SQLite database.
type SQLiteFileRepo struct {
	conn db.DBTX
}

func NewSQLiteFileRepo(conn db.DBTX) *SQLiteFileRepo {
	return &SQLiteFileRepo{conn: conn}
}

const fileColumns = `id, project_id, label, blob_key, content_type, size_bytes, created_at`

func (r *SQLiteFileRepo) Create(ctx context.Context, f *domain.FileRecord) error {
	query := `INSERT INTO files (` + fileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		f.ID, f.ProjectID, f.Label, f.Key, f.ContentType, f.SizeBytes,
		f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting file record: %w", err)
	}
	return nil
}

func (r *SQLiteFileRepo) GetByID(ctx context.Context, id string) (*domain.FileRecord, error) {
	row := r.conn.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = ?`, id)
	f, err := scanFile(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	return f, err
}

func (r *SQLiteFileRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.FileRecord, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE project_id = ? ORDER BY created_at DESC`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	var files []*domain.FileRecord
	for rows.Next() {
		f, err := scanFile(rows.Scan)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating files: %w", err)
	}
	return files, nil
}

func (r *SQLiteFileRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting file record: %w", err)
	}
	return nil
}

func scanFile(scan func(dest ...any) error) (*domain.FileRecord, error) {
	var f domain.FileRecord
	var createdAtStr string

	err := scan(&f.ID, &f.ProjectID, &f.Label, &f.Key, &f.ContentType, &f.SizeBytes, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning file record: %w", err)
	}

	var parseErr error
	f.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}

	return &f, nil
}
