package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithAcreage(a float64) ProjectOption {
	return func(p *domain.Project) {
		p.Acreage = a
	}
}

func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Title:     title,
		Location:  "Stillwater, OK",
		Acreage:   40,
		Objective: "Restore native habitat",
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithDueOn(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueOn = &d
	}
}

func WithOrderIndex(i int) TaskOption {
	return func(t *domain.Task) {
		t.OrderIndex = i
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	task := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.TaskTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// Funding reference fixtures

func NewTestProgram(name domain.ProgramName) *domain.FundingProgram {
	return &domain.FundingProgram{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

type PracticeOption func(*domain.FundingPractice)

func WithDefaultRate(rate float64) PracticeOption {
	return func(p *domain.FundingPractice) {
		p.DefaultPaymentRate = &rate
	}
}

func WithUnit(unit string) PracticeOption {
	return func(p *domain.FundingPractice) {
		p.Unit = unit
	}
}

func NewTestPractice(programID, code, title string, opts ...PracticeOption) *domain.FundingPractice {
	p := &domain.FundingPractice{
		ID:        uuid.New().String(),
		ProgramID: programID,
		Code:      code,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SeedReferenceData loads the funding programs and practices every playbook in
// the default catalog can resolve against. Returns program IDs by name.
func SeedReferenceData(t *testing.T, funding repository.FundingRepo) map[domain.ProgramName]string {
	t.Helper()
	ctx := context.Background()

	ids := make(map[domain.ProgramName]string, 3)
	for _, name := range []domain.ProgramName{domain.ProgramEQIP, domain.ProgramCRP, domain.ProgramACEPWRE} {
		prog := NewTestProgram(name)
		if err := funding.UpsertProgram(ctx, prog); err != nil {
			t.Fatalf("seeding program %s: %v", name, err)
		}
		ids[name] = prog.ID
	}

	practices := []*domain.FundingPractice{
		NewTestPractice(ids[domain.ProgramEQIP], "647", "Early Successional Habitat Development/Management", WithUnit("ac"), WithDefaultRate(150)),
		NewTestPractice(ids[domain.ProgramEQIP], "314", "Brush Management", WithUnit("ac"), WithDefaultRate(120)),
		NewTestPractice(ids[domain.ProgramCRP], "391", "Riparian Forest Buffer", WithUnit("ac"), WithDefaultRate(400)),
		NewTestPractice(ids[domain.ProgramACEPWRE], "", "Wetland Reserve Easement (restoration)", WithUnit("ac")),
	}
	for _, p := range practices {
		if err := funding.UpsertPractice(ctx, p); err != nil {
			t.Fatalf("seeding practice %s/%s: %v", p.Code, p.Title, err)
		}
	}

	return ids
}
