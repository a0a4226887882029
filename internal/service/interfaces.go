package service

import (
	"context"
	"io"
	"time"

	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/playbook"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	MarkDone(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ApplyResult summarizes one playbook application.
type ApplyResult struct {
	PlaybookKey     string
	PlaybookLabel   string
	TasksSeeded     int
	PracticesSeeded int
	// Unresolved counts practice rows whose reference lookup missed and
	// which therefore carry no practice ID.
	Unresolved int
	AppliedAt  time.Time
}

type PlaybookService interface {
	List(ctx context.Context) []playbook.Playbook
	Get(ctx context.Context, key string) (playbook.Playbook, error)
	Apply(ctx context.Context, projectID, key string) (*ApplyResult, error)
}

// ReferenceSet is the operator-provided funding reference data import format.
type ReferenceSet struct {
	Programs []ReferenceProgram `json:"programs"`
}

type ReferenceProgram struct {
	Name      string              `json:"name"`
	Practices []ReferencePractice `json:"practices"`
}

type ReferencePractice struct {
	Code               string   `json:"code,omitempty"`
	Title              string   `json:"title"`
	DefaultPaymentRate *float64 `json:"default_payment_rate,omitempty"`
	Unit               string   `json:"unit,omitempty"`
}

// ImportStats reports what a reference import touched.
type ImportStats struct {
	Programs  int
	Practices int
}

type FundingService interface {
	ListPrograms(ctx context.Context) ([]*domain.FundingProgram, error)
	ListPractices(ctx context.Context) ([]*domain.FundingPractice, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPractice, error)
	ImportReference(ctx context.Context, set *ReferenceSet) (*ImportStats, error)
}

type FileService interface {
	Upload(ctx context.Context, projectID, label, filename, contentType string, r io.Reader) (*domain.FileRecord, error)
	Open(ctx context.Context, id string) (*domain.FileRecord, io.ReadCloser, error)
	DownloadURL(ctx context.Context, id string) (string, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.FileRecord, error)
	Delete(ctx context.Context, id string) error
}
