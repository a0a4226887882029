package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coveyrise/steward/internal/db"
	"github.com/coveyrise/steward/internal/domain"
)

// SQLiteFundingRepo implements FundingRepo over the funding_programs and
// funding_practices reference tables.
type SQLiteFundingRepo struct {
	conn db.DBTX
}

func NewSQLiteFundingRepo(conn db.DBTX) *SQLiteFundingRepo {
	return &SQLiteFundingRepo{conn: conn}
}

func (r *SQLiteFundingRepo) ListPrograms(ctx context.Context) ([]*domain.FundingProgram, error) {
	rows, err := r.conn.QueryContext(ctx, `SELECT id, name, created_at FROM funding_programs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing funding programs: %w", err)
	}
	defer rows.Close()

	var programs []*domain.FundingProgram
	for rows.Next() {
		var p domain.FundingProgram
		var nameStr, createdAtStr string
		if err := rows.Scan(&p.ID, &nameStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning funding program: %w", err)
		}
		p.Name = domain.ProgramName(nameStr)
		p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		programs = append(programs, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating funding programs: %w", err)
	}
	return programs, nil
}

func (r *SQLiteFundingRepo) ListPractices(ctx context.Context) ([]*domain.FundingPractice, error) {
	query := `SELECT id, program_id, code, title, default_payment_rate, unit, created_at
		FROM funding_practices ORDER BY program_id, code, title`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing funding practices: %w", err)
	}
	defer rows.Close()

	var practices []*domain.FundingPractice
	for rows.Next() {
		var p domain.FundingPractice
		var rate sql.NullFloat64
		var createdAtStr string
		if err := rows.Scan(&p.ID, &p.ProgramID, &p.Code, &p.Title, &rate, &p.Unit, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning funding practice: %w", err)
		}
		p.DefaultPaymentRate = floatFromNull(rate)
		p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		practices = append(practices, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating funding practices: %w", err)
	}
	return practices, nil
}

// UpsertProgram inserts the program or updates its name on ID conflict.
func (r *SQLiteFundingRepo) UpsertProgram(ctx context.Context, p *domain.FundingProgram) error {
	query := `INSERT INTO funding_programs (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`
	_, err := r.conn.ExecContext(ctx, query, p.ID, string(p.Name), p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting funding program: %w", err)
	}
	return nil
}

// UpsertPractice inserts the practice or refreshes its reference fields on ID conflict.
func (r *SQLiteFundingRepo) UpsertPractice(ctx context.Context, p *domain.FundingPractice) error {
	query := `INSERT INTO funding_practices (id, program_id, code, title, default_payment_rate, unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			program_id = excluded.program_id,
			code = excluded.code,
			title = excluded.title,
			default_payment_rate = excluded.default_payment_rate,
			unit = excluded.unit`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID,
		p.ProgramID,
		p.Code,
		p.Title,
		nullableFloatToValue(p.DefaultPaymentRate),
		p.Unit,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting funding practice: %w", err)
	}
	return nil
}
