package formatter

import (
	"fmt"
	"strings"

	"github.com/coveyrise/steward/internal/playbook"
	"github.com/coveyrise/steward/internal/service"
)

// FormatPlaybookList renders the catalog table.
func FormatPlaybookList(playbooks []playbook.Playbook) string {
	headers := []string{"Key", "Label", "Tasks", "Practices"}
	rows := make([][]string, 0, len(playbooks))
	for _, pb := range playbooks {
		rows = append(rows, []string{
			Bold(pb.Key),
			pb.Label,
			fmt.Sprintf("%d", len(pb.Tasks)),
			fmt.Sprintf("%d", len(pb.Practices)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatPlaybookInspect renders one playbook's blueprints.
func FormatPlaybookInspect(pb playbook.Playbook) string {
	var b strings.Builder

	b.WriteString(Header(pb.Label))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Key: %s\n\n", Bold(pb.Key))

	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	for i, t := range pb.Tasks {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, t.Title, Dim(fmt.Sprintf("(day %d)", t.DueOffsetDays)))
		if t.Notes != "" {
			fmt.Fprintf(&b, "     %s\n", Dim(t.Notes))
		}
	}
	b.WriteString("\n")

	b.WriteString(Header("Funding practices"))
	b.WriteString("\n")
	for _, p := range pb.Practices {
		label := string(p.Program)
		if p.Code != "" {
			label += " " + p.Code
		}
		fmt.Fprintf(&b, "  %s  %s\n", Bold(label), p.Title)
	}

	return b.String()
}

// FormatApplyResult summarizes a seeding run for the operator.
func FormatApplyResult(result *service.ApplyResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		StyleGreen.Render("Applied"),
		Bold(result.PlaybookLabel))
	fmt.Fprintf(&b, "  %d tasks and %d funding practices seeded\n",
		result.TasksSeeded, result.PracticesSeeded)
	if result.Unresolved > 0 {
		fmt.Fprintf(&b, "  %s\n", StyleYellow.Render(fmt.Sprintf(
			"%d practice(s) did not match the funding reference data; import it with `steward funding import`",
			result.Unresolved)))
	}
	return b.String()
}
