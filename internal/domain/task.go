package domain

import (
	"fmt"
	"time"
)

type Task struct {
	ID         string
	ProjectID  string
	Title      string
	Notes      string
	OrderIndex int
	Status     TaskStatus
	DueOn      *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks required fields and status membership.
func (t *Task) Validate() error {
	if t.ProjectID == "" {
		return fmt.Errorf("task project ID is required")
	}
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if len(t.Title) > maxTitleLen {
		return fmt.Errorf("task title exceeds %d characters", maxTitleLen)
	}
	if t.Status != "" && !ValidTaskStatuses[string(t.Status)] {
		return fmt.Errorf("invalid task status %q", t.Status)
	}
	return nil
}

// IsOverdue reports whether the task has a due date in the past and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueOn == nil || t.Status == TaskDone {
		return false
	}
	return t.DueOn.Before(now.Truncate(24 * time.Hour))
}
