package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/coveyrise/steward/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatProjectList(t *testing.T) {
	projects := []*domain.Project{
		{ID: "11111111-aaaa", Title: "North Forty", Location: "Stillwater, OK", Acreage: 40, Status: domain.ProjectActive},
		{ID: "22222222-bbbb", Title: "Creek Bottom", Acreage: 12.5, Status: domain.ProjectArchived},
	}

	out := FormatProjectList(projects)
	assert.Contains(t, out, "North Forty")
	assert.Contains(t, out, "Creek Bottom")
	assert.Contains(t, out, "40 ac")
	assert.Contains(t, out, "12.5 ac")
	assert.Contains(t, out, "11111111")
	assert.NotContains(t, out, "11111111-aaaa", "IDs are shortened in tables")
}

func TestFormatTaskList_DueAndOrder(t *testing.T) {
	due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tasks := []*domain.Task{
		{ID: "aaaaaaaa-1", Title: "Baseline assessment", OrderIndex: 0, Status: domain.TaskTodo, DueOn: &due},
		{ID: "bbbbbbbb-2", Title: "Burn plan", OrderIndex: 1, Status: domain.TaskDone},
	}

	out := FormatTaskList(tasks)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, out, "2024-01-15")
	assert.Contains(t, out, "done")
	firstRow := strings.Index(out, "Baseline assessment")
	secondRow := strings.Index(out, "Burn plan")
	assert.Less(t, firstRow, secondRow, "rows keep their given order")
}

func TestFormatPracticeList_MarksUnmatched(t *testing.T) {
	qty := 40.0
	rate := 150.0
	pid := "ref-1"
	practices := []*domain.ProjectPractice{
		{CustomTitle: "Early Successional Habitat", PracticeID: &pid, Quantity: &qty, Unit: "ac", EstimatedPaymentRate: &rate, Status: domain.PracticeResearching},
		{CustomTitle: "Mystery Practice", Status: domain.PracticeResearching},
	}

	out := FormatPracticeList(practices)
	assert.Contains(t, out, "$150.00")
	assert.Contains(t, out, "40 ac")
	assert.Contains(t, out, "Mystery Practice (unmatched)")
	assert.NotContains(t, out, "Early Successional Habitat (unmatched)")
}

func TestFormatProjectInspect_EmptySections(t *testing.T) {
	data := ProjectInspectData{
		Project: &domain.Project{ID: "11111111-aaaa", Title: "North Forty", Status: domain.ProjectActive},
	}

	out := FormatProjectInspect(data)
	assert.Contains(t, out, "NORTH FORTY")
	assert.Contains(t, out, "Apply a playbook")
	assert.Contains(t, out, "No funding practices tracked")
	assert.NotContains(t, out, "FILES", "file section is omitted when empty")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
