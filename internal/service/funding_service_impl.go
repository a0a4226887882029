package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/coveyrise/steward/internal/db"
	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/google/uuid"
)

type fundingService struct {
	funding          repository.FundingRepo
	projectPractices repository.ProjectPracticeRepo
	uow              db.UnitOfWork
	observer         UseCaseObserver
}

func NewFundingService(
	funding repository.FundingRepo,
	projectPractices repository.ProjectPracticeRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) FundingService {
	return &fundingService{
		funding:          funding,
		projectPractices: projectPractices,
		uow:              uow,
		observer:         observerOrNoop(observers),
	}
}

// LoadReferenceFile reads and parses a reference data JSON file.
func LoadReferenceFile(path string) (*ReferenceSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var set ReferenceSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing reference file: %w", err)
	}
	return &set, nil
}

func (s *fundingService) ListPrograms(ctx context.Context) ([]*domain.FundingProgram, error) {
	return s.funding.ListPrograms(ctx)
}

func (s *fundingService) ListPractices(ctx context.Context) ([]*domain.FundingPractice, error) {
	return s.funding.ListPractices(ctx)
}

func (s *fundingService) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPractice, error) {
	return s.projectPractices.ListByProject(ctx, projectID)
}

// ImportReference upserts the given programs and practices atomically.
// Existing programs are matched by name so re-imports refresh rather than
// duplicate; practices are matched by (program, code) or (program, title).
func (s *fundingService) ImportReference(ctx context.Context, set *ReferenceSet) (stats *ImportStats, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{}
		if stats != nil {
			fields["programs"] = stats.Programs
			fields["practices"] = stats.Practices
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-reference",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Err:       err,
			Fields:    fields,
		})
	}()

	if set == nil || len(set.Programs) == 0 {
		return nil, fmt.Errorf("reference set is empty")
	}
	for _, prog := range set.Programs {
		if !domain.ValidProgramNames[domain.ProgramName(prog.Name)] {
			return nil, fmt.Errorf("unsupported program name %q", prog.Name)
		}
	}

	stats = &ImportStats{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txFunding := repository.NewSQLiteFundingRepo(tx)

		existingPrograms, err := txFunding.ListPrograms(ctx)
		if err != nil {
			return err
		}
		programIDs := make(map[domain.ProgramName]string, len(existingPrograms))
		for _, p := range existingPrograms {
			programIDs[p.Name] = p.ID
		}

		existingPractices, err := txFunding.ListPractices(ctx)
		if err != nil {
			return err
		}
		practiceIDs := make(map[string]string, len(existingPractices))
		for _, p := range existingPractices {
			practiceIDs[p.ProgramID+"\x00"+domain.CoalesceStr(p.Code, p.Title)] = p.ID
		}

		now := time.Now().UTC()
		for _, prog := range set.Programs {
			name := domain.ProgramName(prog.Name)
			id, ok := programIDs[name]
			if !ok {
				id = uuid.New().String()
				programIDs[name] = id
			}
			if err := txFunding.UpsertProgram(ctx, &domain.FundingProgram{ID: id, Name: name, CreatedAt: now}); err != nil {
				return err
			}
			stats.Programs++

			for _, prac := range prog.Practices {
				key := id + "\x00" + domain.CoalesceStr(prac.Code, prac.Title)
				pid, ok := practiceIDs[key]
				if !ok {
					pid = uuid.New().String()
					practiceIDs[key] = pid
				}
				err := txFunding.UpsertPractice(ctx, &domain.FundingPractice{
					ID:                 pid,
					ProgramID:          id,
					Code:               prac.Code,
					Title:              prac.Title,
					DefaultPaymentRate: prac.DefaultPaymentRate,
					Unit:               prac.Unit,
					CreatedAt:          now,
				})
				if err != nil {
					return err
				}
				stats.Practices++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
