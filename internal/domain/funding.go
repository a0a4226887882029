package domain

import "time"

// FundingProgram is a cost-share program (e.g. EQIP) from the reference tables.
type FundingProgram struct {
	ID        string
	Name      ProgramName
	CreatedAt time.Time
}

// FundingPractice is a line-item practice within a program, identified by a
// program-scoped practice code (e.g. EQIP 647) or, failing that, its title.
type FundingPractice struct {
	ID                 string
	ProgramID          string
	Code               string
	Title              string
	DefaultPaymentRate *float64
	Unit               string
	CreatedAt          time.Time
}

// ProjectPractice records a project's intent to pursue a funding practice.
// PracticeID is nil when the reference row could not be resolved; the
// blueprint's own title and figures are preserved for manual follow-up.
type ProjectPractice struct {
	ID                   string
	ProjectID            string
	PracticeID           *string
	CustomTitle          string
	Quantity             *float64
	Unit                 string
	EstimatedPaymentRate *float64
	Status               PracticeStatus
	Deadline             *time.Time
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Resolved reports whether the practice was matched against reference data.
func (pp *ProjectPractice) Resolved() bool {
	return pp.PracticeID != nil
}
