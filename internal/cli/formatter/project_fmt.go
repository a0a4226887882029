package formatter

import (
	"fmt"
	"strings"

	"github.com/coveyrise/steward/internal/domain"
)

// FormatProjectList renders the project table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "Title", "Location", "Acres", "Status"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			Dim(p.DisplayID()),
			p.Title,
			p.Location,
			formatAcreage(p.Acreage),
			ProjectStatusStyle(p.Status).Render(string(p.Status)),
		})
	}
	return RenderTable(headers, rows)
}

// ProjectInspectData bundles everything the inspect view shows.
type ProjectInspectData struct {
	Project   *domain.Project
	Tasks     []*domain.Task
	Practices []*domain.ProjectPractice
	Files     []*domain.FileRecord
}

// FormatProjectInspect renders the full project detail view.
func FormatProjectInspect(data ProjectInspectData) string {
	p := data.Project
	var b strings.Builder

	b.WriteString(Header(p.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  ID:        %s\n", Dim(p.ID))
	fmt.Fprintf(&b, "  Status:    %s\n", ProjectStatusStyle(p.Status).Render(string(p.Status)))
	if p.Location != "" {
		fmt.Fprintf(&b, "  Location:  %s\n", p.Location)
	}
	fmt.Fprintf(&b, "  Acreage:   %s\n", formatAcreage(p.Acreage))
	if p.Objective != "" {
		fmt.Fprintf(&b, "  Objective: %s\n", p.Objective)
	}
	b.WriteString("\n")

	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	if len(data.Tasks) == 0 {
		b.WriteString(Dim("  No tasks yet. Apply a playbook to seed a work plan.") + "\n")
	} else {
		b.WriteString(FormatTaskList(data.Tasks))
	}
	b.WriteString("\n")

	b.WriteString(Header("Funding practices"))
	b.WriteString("\n")
	if len(data.Practices) == 0 {
		b.WriteString(Dim("  No funding practices tracked.") + "\n")
	} else {
		b.WriteString(FormatPracticeList(data.Practices))
	}

	if len(data.Files) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Files"))
		b.WriteString("\n")
		for _, f := range data.Files {
			fmt.Fprintf(&b, "  %s %s\n", Dim(f.ID[:8]), f.DisplayName())
		}
	}

	return b.String()
}

// FormatTaskList renders the task table, ordered as given.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"#", "ID", "Title", "Due", "Status"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := Dim("—")
		if t.DueOn != nil {
			due = t.DueOn.Format("2006-01-02")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.OrderIndex+1),
			Dim(shortID(t.ID)),
			t.Title,
			due,
			TaskStatusBadge(t.Status),
		})
	}
	return RenderTable(headers, rows)
}

// FormatPracticeList renders the funding practice table. Unresolved rows are
// marked so operators know the reference lookup missed.
func FormatPracticeList(practices []*domain.ProjectPractice) string {
	headers := []string{"Practice", "Qty", "Est. Rate", "Deadline", "Status"}
	rows := make([][]string, 0, len(practices))
	for _, pp := range practices {
		title := pp.CustomTitle
		if !pp.Resolved() {
			title += " " + StyleYellow.Render("(unmatched)")
		}
		qty := Dim("—")
		if pp.Quantity != nil {
			qty = strings.TrimSpace(fmt.Sprintf("%g %s", *pp.Quantity, pp.Unit))
		}
		rate := Dim("—")
		if pp.EstimatedPaymentRate != nil {
			rate = fmt.Sprintf("$%.2f", *pp.EstimatedPaymentRate)
		}
		deadline := Dim("—")
		if pp.Deadline != nil {
			deadline = pp.Deadline.Format("2006-01-02")
		}
		rows = append(rows, []string{title, qty, rate, deadline, PracticeStatusBadge(pp.Status)})
	}
	return RenderTable(headers, rows)
}

func formatAcreage(acres float64) string {
	if acres == 0 {
		return Dim("—")
	}
	return fmt.Sprintf("%g ac", acres)
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
