package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/playbook"
	"github.com/coveyrise/steward/internal/repository"
)

type playbookService struct {
	catalog   *playbook.Catalog
	projects  repository.ProjectRepo
	tasks     repository.TaskRepo
	practices repository.ProjectPracticeRepo
	funding   repository.FundingRepo
	observer  UseCaseObserver
	now       func() time.Time
}

func NewPlaybookService(
	catalog *playbook.Catalog,
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	practices repository.ProjectPracticeRepo,
	funding repository.FundingRepo,
	observers ...UseCaseObserver,
) PlaybookService {
	return &playbookService{
		catalog:   catalog,
		projects:  projects,
		tasks:     tasks,
		practices: practices,
		funding:   funding,
		observer:  observerOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *playbookService) List(ctx context.Context) []playbook.Playbook {
	return s.catalog.List()
}

func (s *playbookService) Get(ctx context.Context, key string) (playbook.Playbook, error) {
	return s.catalog.Get(key)
}

// Apply seeds the project with the named playbook's tasks and funding
// practices. All dates derive from a single anchor captured here, so every
// row produced by one invocation is consistent.
//
// The task batch and the practice batch are two independent inserts: if the
// practice batch fails after the task batch committed, the project keeps its
// tasks. Re-applying the same playbook inserts duplicates; callers are
// expected to confirm before invoking.
func (s *playbookService) Apply(ctx context.Context, projectID, key string) (result *ApplyResult, err error) {
	startedAt := time.Now().UTC()
	unresolved := 0
	fields := map[string]any{
		"playbook": key,
		"project":  projectID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:       "apply-playbook",
			StartedAt:  startedAt,
			Duration:   time.Since(startedAt),
			Err:        err,
			Unresolved: unresolved,
			Fields:     fields,
		})
	}()

	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	var pb playbook.Playbook
	pb, err = s.catalog.Get(key)
	if err != nil {
		return nil, err
	}

	anchor := s.now()
	tasks := playbook.MaterializeTasks(pb.Tasks, projectID, anchor)

	// The two reference reads are independent; fetch them concurrently.
	var (
		wg           sync.WaitGroup
		programs     []*domain.FundingProgram
		refPractices []*domain.FundingPractice
		progErr      error
		pracErr      error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		programs, progErr = s.funding.ListPrograms(ctx)
	}()
	go func() {
		defer wg.Done()
		refPractices, pracErr = s.funding.ListPractices(ctx)
	}()
	wg.Wait()
	if progErr != nil {
		return nil, fmt.Errorf("loading funding reference data: %w", progErr)
	}
	if pracErr != nil {
		return nil, fmt.Errorf("loading funding reference data: %w", pracErr)
	}

	idx := playbook.NewReferenceIndex(programs, refPractices)
	resolved := make([]*domain.ProjectPractice, 0, len(pb.Practices))
	for _, bp := range pb.Practices {
		pp := playbook.ResolvePractice(idx, bp, projectID, anchor)
		if !pp.Resolved() {
			unresolved++
		}
		resolved = append(resolved, pp)
	}
	fields["task_count"] = len(tasks)
	fields["practice_count"] = len(resolved)

	if err = s.tasks.CreateBatch(ctx, tasks); err != nil {
		return nil, fmt.Errorf("seeding tasks: %w", err)
	}
	if err = s.practices.CreateBatch(ctx, resolved); err != nil {
		return nil, fmt.Errorf("seeding practices: %w", err)
	}

	return &ApplyResult{
		PlaybookKey:     pb.Key,
		PlaybookLabel:   pb.Label,
		TasksSeeded:     len(tasks),
		PracticesSeeded: len(resolved),
		Unresolved:      unresolved,
		AppliedAt:       anchor,
	}, nil
}
