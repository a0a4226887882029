package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coveyrise/steward/internal/db"
	"github.com/coveyrise/steward/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	conn db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{conn: conn}
}

const taskColumns = `id, project_id, title, notes, order_index, status, due_on, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query, taskArgs(t)...)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// CreateBatch inserts all tasks in a single multi-row statement. Order of the
// slice is preserved in the stored order_index values set by the caller.
func (r *SQLiteTaskRepo) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES `
	args := make([]any, 0, len(tasks)*9)
	for i, t := range tasks {
		if i > 0 {
			query += ", "
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, taskArgs(t)...)
	}
	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("batch inserting %d tasks: %w", len(tasks), err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.conn.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY order_index, created_at`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, notes = ?, order_index = ?, status = ?, due_on = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		t.Title,
		t.Notes,
		t.OrderIndex,
		string(t.Status),
		nullableTimeToString(t.DueOn, dateLayout),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) SetStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	query := `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, string(status), nowUTC(), id); err != nil {
		return fmt.Errorf("setting task status: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func taskArgs(t *domain.Task) []any {
	return []any{
		t.ID,
		t.ProjectID,
		t.Title,
		t.Notes,
		t.OrderIndex,
		string(t.Status),
		nullableTimeToString(t.DueOn, dateLayout),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	}
}

func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var t domain.Task
	var statusStr, createdAtStr, updatedAtStr string
	var dueOnStr sql.NullString

	err := scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Notes, &t.OrderIndex,
		&statusStr, &dueOnStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(statusStr)
	t.DueOn = parseNullableTime(dueOnStr, dateLayout)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &t, nil
}
