package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coveyrise/steward/internal/db"
	"github.com/coveyrise/steward/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	conn db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo. conn may be a *sql.DB
// or a transaction handle.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{conn: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, title, location, acreage, objective, status, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Location,
		p.Acreage,
		p.Objective,
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, title, location, acreage, objective, status, archived_at, created_at, updated_at
		FROM projects WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	p, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT id, title, location, acreage, objective, status, archived_at, created_at, updated_at
		FROM projects WHERE archived_at IS NULL ORDER BY created_at`
	if includeArchived {
		query = `SELECT id, title, location, acreage, objective, status, archived_at, created_at, updated_at
			FROM projects ORDER BY created_at`
	}
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET title = ?, location = ?, acreage = ?, objective = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		p.Title,
		p.Location,
		p.Acreage,
		p.Objective,
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE projects SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, now, now, id); err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Unarchive(ctx context.Context, id string) error {
	query := `UPDATE projects SET status = 'active', archived_at = NULL, updated_at = ? WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, nowUTC(), id); err != nil {
		return fmt.Errorf("unarchiving project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(scan func(dest ...any) error) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	err := scan(
		&p.ID, &p.Title, &p.Location, &p.Acreage, &p.Objective,
		&statusStr, &archivedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &p, nil
}
