// Package playbook holds the static catalog of project seeding templates and
// the logic that turns a template into concrete task and funding-practice
// rows for one project.
package playbook

import (
	"errors"
	"fmt"

	"github.com/coveyrise/steward/internal/domain"
)

// ErrUnknownPlaybook is returned when a catalog lookup misses.
var ErrUnknownPlaybook = errors.New("unknown playbook")

// TaskBlueprint is one task template entry. DueOffsetDays is relative to the
// moment the playbook is applied; zero or negative means no due date.
type TaskBlueprint struct {
	Title         string
	Notes         string
	DueOffsetDays int
}

// PracticeBlueprint is one funding-practice template entry. Code takes
// precedence over Title when resolving against reference data.
type PracticeBlueprint struct {
	Program            domain.ProgramName
	Code               string
	Title              string
	Quantity           *float64
	Unit               string
	EstimatedRate      *float64
	Notes              string
	DeadlineOffsetDays int
}

// Playbook is a named, static bundle of task and practice blueprints.
type Playbook struct {
	Key       string
	Label     string
	Tasks     []TaskBlueprint
	Practices []PracticeBlueprint
}

// Catalog is an immutable set of playbooks with stable listing order.
// Construct once at startup and inject where needed.
type Catalog struct {
	entries []Playbook
	byKey   map[string]int
}

// NewCatalog builds a catalog from the given playbooks. Duplicate keys are a
// programming error and panic at construction time.
func NewCatalog(playbooks ...Playbook) *Catalog {
	c := &Catalog{
		entries: playbooks,
		byKey:   make(map[string]int, len(playbooks)),
	}
	for i, pb := range playbooks {
		if _, dup := c.byKey[pb.Key]; dup {
			panic(fmt.Sprintf("playbook catalog: duplicate key %q", pb.Key))
		}
		c.byKey[pb.Key] = i
	}
	return c
}

// Get looks up a playbook by key.
func (c *Catalog) Get(key string) (Playbook, error) {
	i, ok := c.byKey[key]
	if !ok {
		return Playbook{}, fmt.Errorf("%w: %q", ErrUnknownPlaybook, key)
	}
	return c.entries[i], nil
}

// List returns all playbooks in catalog order.
func (c *Catalog) List() []Playbook {
	out := make([]Playbook, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of playbooks in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}
