package domain

import (
	"fmt"
	"time"
)

const (
	maxTitleLen     = 200
	maxObjectiveLen = 5000
)

type Project struct {
	ID         string
	Title      string
	Location   string
	Acreage    float64
	Objective  string
	Status     ProjectStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks that the project carries the minimum required fields and
// that free-text fields stay within storage limits.
func (p *Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if len(p.Title) > maxTitleLen {
		return fmt.Errorf("project title exceeds %d characters", maxTitleLen)
	}
	if len(p.Objective) > maxObjectiveLen {
		return fmt.Errorf("project objective exceeds %d characters", maxObjectiveLen)
	}
	if p.Acreage < 0 {
		return fmt.Errorf("acreage must not be negative")
	}
	return nil
}

// DisplayID returns a short identifier suitable for tables and logs.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
