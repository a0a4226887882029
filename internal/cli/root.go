package cli

import (
	"github.com/coveyrise/steward/internal/feed"
	"github.com/coveyrise/steward/internal/httpapi"
	"github.com/coveyrise/steward/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Tasks     service.TaskService
	Playbooks service.PlaybookService
	Funding   service.FundingService
	Files     service.FileService
	Feed      *feed.Reader

	// ServerConfig feeds the serve command.
	ServerConfig httpapi.Config

	// IsInteractive reports whether stdin is a terminal; interactive
	// pickers and confirmations are skipped when it returns false.
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "steward" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "steward",
		Short: "Land-stewardship project planner and client portal",
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newPlaybookCmd(app),
		newFundingCmd(app),
		newKnowledgeCmd(app),
		newServeCmd(app),
	)

	return root
}
