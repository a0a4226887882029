package playbook

import (
	"time"

	"github.com/coveyrise/steward/internal/domain"
	"github.com/google/uuid"
)

// ReferenceIndex indexes the funding reference tables for a single playbook
// application. Built once per invocation from freshly fetched rows.
type ReferenceIndex struct {
	programsByName map[domain.ProgramName]string
	byCode         map[practiceKey]*domain.FundingPractice
	byTitle        map[practiceKey]*domain.FundingPractice
}

type practiceKey struct {
	programID string
	value     string
}

// NewReferenceIndex builds lookup maps over the given reference rows. When
// two practices collide on (program, code) or (program, title) the first row
// wins, matching the stored ordering.
func NewReferenceIndex(programs []*domain.FundingProgram, practices []*domain.FundingPractice) *ReferenceIndex {
	idx := &ReferenceIndex{
		programsByName: make(map[domain.ProgramName]string, len(programs)),
		byCode:         make(map[practiceKey]*domain.FundingPractice, len(practices)),
		byTitle:        make(map[practiceKey]*domain.FundingPractice, len(practices)),
	}
	for _, p := range programs {
		if _, dup := idx.programsByName[p.Name]; !dup {
			idx.programsByName[p.Name] = p.ID
		}
	}
	for _, pr := range practices {
		if pr.Code != "" {
			k := practiceKey{pr.ProgramID, pr.Code}
			if _, dup := idx.byCode[k]; !dup {
				idx.byCode[k] = pr
			}
		}
		if pr.Title != "" {
			k := practiceKey{pr.ProgramID, pr.Title}
			if _, dup := idx.byTitle[k]; !dup {
				idx.byTitle[k] = pr
			}
		}
	}
	return idx
}

// ProgramID returns the ID for a program name, or "" when the reference
// tables do not know the program.
func (idx *ReferenceIndex) ProgramID(name domain.ProgramName) string {
	return idx.programsByName[name]
}

// Match finds the reference practice for a blueprint's program and join keys.
// Code takes precedence over title; title is only consulted when the
// blueprint carries no code. Returns nil when nothing matches.
func (idx *ReferenceIndex) Match(programID, code, title string) *domain.FundingPractice {
	if programID == "" {
		return nil
	}
	if code != "" {
		return idx.byCode[practiceKey{programID, code}]
	}
	if title != "" {
		return idx.byTitle[practiceKey{programID, title}]
	}
	return nil
}

// ResolvePractice maps one blueprint to a ProjectPractice row, substituting
// canonical reference data where available. Resolution never fails: an
// unmatched blueprint yields a row with a nil PracticeID so the original ask
// survives for manual follow-up.
func ResolvePractice(idx *ReferenceIndex, bp PracticeBlueprint, projectID string, anchor time.Time) *domain.ProjectPractice {
	programID := idx.ProgramID(bp.Program)
	match := idx.Match(programID, bp.Code, bp.Title)

	pp := &domain.ProjectPractice{
		ID:                   uuid.New().String(),
		ProjectID:            projectID,
		CustomTitle:          bp.Title,
		Quantity:             bp.Quantity,
		Unit:                 bp.Unit,
		EstimatedPaymentRate: bp.EstimatedRate,
		Status:               domain.PracticeResearching,
		Deadline:             DueDate(anchor, bp.DeadlineOffsetDays),
		Notes:                bp.Notes,
		CreatedAt:            anchor,
		UpdatedAt:            anchor,
	}
	if match != nil {
		id := match.ID
		pp.PracticeID = &id
		pp.Unit = domain.CoalesceStr(bp.Unit, match.Unit)
		pp.EstimatedPaymentRate = domain.Float64PtrCoalesce(bp.EstimatedRate, match.DefaultPaymentRate)
	}
	return pp
}

// MaterializeTasks maps task blueprints to Task rows in blueprint order,
// assigning dense 0-based order indexes. Status is always "todo".
func MaterializeTasks(bps []TaskBlueprint, projectID string, anchor time.Time) []*domain.Task {
	tasks := make([]*domain.Task, 0, len(bps))
	for i, bp := range bps {
		tasks = append(tasks, &domain.Task{
			ID:         uuid.New().String(),
			ProjectID:  projectID,
			Title:      bp.Title,
			Notes:      bp.Notes,
			OrderIndex: i,
			Status:     domain.TaskTodo,
			DueOn:      DueDate(anchor, bp.DueOffsetDays),
			CreatedAt:  anchor,
			UpdatedAt:  anchor,
		})
	}
	return tasks
}
