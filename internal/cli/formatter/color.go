package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/coveyrise/steward/internal/domain"
)

// Earth-toned palette.
var (
	ColorGreen  = lipgloss.Color("#87a96b")
	ColorYellow = lipgloss.Color("#e3b23c")
	ColorRed    = lipgloss.Color("#c75146")
	ColorBlue   = lipgloss.Color("#6d9dc5")
	ColorDim    = lipgloss.Color("#8a817c")
	ColorFg     = lipgloss.Color("#f0ebe1")
	ColorHeader = lipgloss.Color("#d98e04")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TaskStatusBadge returns a colored marker for a task status.
func TaskStatusBadge(status domain.TaskStatus) string {
	switch status {
	case domain.TaskDone:
		return StyleGreen.Render("✓ done")
	case domain.TaskInProgress:
		return StyleYellow.Render("… in progress")
	default:
		return StyleDim.Render("○ todo")
	}
}

// PracticeStatusBadge returns a colored marker for a funding practice status.
func PracticeStatusBadge(status domain.PracticeStatus) string {
	switch status {
	case domain.PracticeCompleted:
		return StyleGreen.Render(string(status))
	case domain.PracticeContracted:
		return StyleBlue.Render(string(status))
	case domain.PracticeApplied:
		return StyleYellow.Render(string(status))
	default:
		return StyleDim.Render(string(status))
	}
}

// ProjectStatusStyle returns the style used for a project status cell.
func ProjectStatusStyle(status domain.ProjectStatus) lipgloss.Style {
	switch status {
	case domain.ProjectActive:
		return StyleGreen
	case domain.ProjectPaused:
		return StyleYellow
	case domain.ProjectDone:
		return StyleBlue
	default:
		return StyleDim
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
