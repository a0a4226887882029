package service

import (
	"context"
	"time"

	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	projects repository.ProjectRepo
}

func NewTaskService(tasks repository.TaskRepo, projects repository.ProjectRepo) TaskService {
	return &taskService{tasks: tasks, projects: projects}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if err := t.Validate(); err != nil {
		return err
	}
	// Manually created tasks append after any seeded ones.
	if t.OrderIndex == 0 {
		existing, err := s.tasks.ListByProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		t.OrderIndex = len(existing)
	}
	if _, err := s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return err
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) MarkDone(ctx context.Context, id string) error {
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		return err
	}
	return s.tasks.SetStatus(ctx, id, domain.TaskDone)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
