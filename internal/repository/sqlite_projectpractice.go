package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coveyrise/steward/internal/db"
	"github.com/coveyrise/steward/internal/domain"
)

// SQLiteProjectPracticeRepo implements ProjectPracticeRepo using a SQLite database.
type SQLiteProjectPracticeRepo struct {
	conn db.DBTX
}

func NewSQLiteProjectPracticeRepo(conn db.DBTX) *SQLiteProjectPracticeRepo {
	return &SQLiteProjectPracticeRepo{conn: conn}
}

const projectPracticeColumns = `id, project_id, practice_id, custom_title, quantity, unit, est_rate, status, deadline, notes, created_at, updated_at`

// CreateBatch inserts all practice rows in a single multi-row statement.
func (r *SQLiteProjectPracticeRepo) CreateBatch(ctx context.Context, practices []*domain.ProjectPractice) error {
	if len(practices) == 0 {
		return nil
	}
	query := `INSERT INTO project_practices (` + projectPracticeColumns + `) VALUES `
	args := make([]any, 0, len(practices)*12)
	for i, p := range practices {
		if i > 0 {
			query += ", "
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			p.ID,
			p.ProjectID,
			nullableStringToValue(p.PracticeID),
			p.CustomTitle,
			nullableFloatToValue(p.Quantity),
			p.Unit,
			nullableFloatToValue(p.EstimatedPaymentRate),
			string(p.Status),
			nullableTimeToString(p.Deadline, dateLayout),
			p.Notes,
			p.CreatedAt.Format(time.RFC3339),
			p.UpdatedAt.Format(time.RFC3339),
		)
	}
	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("batch inserting %d project practices: %w", len(practices), err)
	}
	return nil
}

func (r *SQLiteProjectPracticeRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPractice, error) {
	query := `SELECT ` + projectPracticeColumns + ` FROM project_practices WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project practices: %w", err)
	}
	defer rows.Close()

	var practices []*domain.ProjectPractice
	for rows.Next() {
		p, err := scanProjectPractice(rows.Scan)
		if err != nil {
			return nil, err
		}
		practices = append(practices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project practices: %w", err)
	}
	return practices, nil
}

func (r *SQLiteProjectPracticeRepo) Update(ctx context.Context, p *domain.ProjectPractice) error {
	query := `UPDATE project_practices SET custom_title = ?, quantity = ?, unit = ?, est_rate = ?, status = ?, deadline = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		p.CustomTitle,
		nullableFloatToValue(p.Quantity),
		p.Unit,
		nullableFloatToValue(p.EstimatedPaymentRate),
		string(p.Status),
		nullableTimeToString(p.Deadline, dateLayout),
		p.Notes,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project practice: %w", err)
	}
	return nil
}

func (r *SQLiteProjectPracticeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM project_practices WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project practice: %w", err)
	}
	return nil
}

func scanProjectPractice(scan func(dest ...any) error) (*domain.ProjectPractice, error) {
	var p domain.ProjectPractice
	var practiceID, deadlineStr sql.NullString
	var quantity, estRate sql.NullFloat64
	var statusStr, createdAtStr, updatedAtStr string

	err := scan(
		&p.ID, &p.ProjectID, &practiceID, &p.CustomTitle,
		&quantity, &p.Unit, &estRate,
		&statusStr, &deadlineStr, &p.Notes,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning project practice: %w", err)
	}

	p.PracticeID = stringFromNull(practiceID)
	p.Quantity = floatFromNull(quantity)
	p.EstimatedPaymentRate = floatFromNull(estRate)
	p.Status = domain.PracticeStatus(statusStr)
	p.Deadline = parseNullableTime(deadlineStr, dateLayout)

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
