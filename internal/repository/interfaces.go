package repository

import (
	"context"
	"errors"

	"github.com/coveyrise/steward/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	CreateBatch(ctx context.Context, tasks []*domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) error
	Delete(ctx context.Context, id string) error
}

// FundingRepo covers both reference tables. Upserts exist for operator-driven
// reference data imports; the playbook workflow only reads.
type FundingRepo interface {
	ListPrograms(ctx context.Context) ([]*domain.FundingProgram, error)
	ListPractices(ctx context.Context) ([]*domain.FundingPractice, error)
	UpsertProgram(ctx context.Context, p *domain.FundingProgram) error
	UpsertPractice(ctx context.Context, p *domain.FundingPractice) error
}

type ProjectPracticeRepo interface {
	CreateBatch(ctx context.Context, practices []*domain.ProjectPractice) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPractice, error)
	Update(ctx context.Context, p *domain.ProjectPractice) error
	Delete(ctx context.Context, id string) error
}

type FileRepo interface {
	Create(ctx context.Context, f *domain.FileRecord) error
	GetByID(ctx context.Context, id string) (*domain.FileRecord, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.FileRecord, error)
	Delete(ctx context.Context, id string) error
}
