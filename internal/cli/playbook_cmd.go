package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/coveyrise/steward/internal/cli/formatter"
	"github.com/coveyrise/steward/internal/playbook"
	"github.com/spf13/cobra"
)

func newPlaybookCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playbook",
		Short: "Browse and apply restoration playbooks",
	}

	cmd.AddCommand(
		newPlaybookListCmd(app),
		newPlaybookInspectCmd(app),
		newPlaybookApplyCmd(app),
	)

	return cmd
}

func newPlaybookListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available playbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			playbooks := app.Playbooks.List(context.Background())
			fmt.Print(formatter.FormatPlaybookList(playbooks))
			return nil
		},
	}
}

func newPlaybookInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect KEY",
		Short: "Show a playbook's task and practice blueprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pb, err := app.Playbooks.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatPlaybookInspect(pb))
			return nil
		},
	}
}

func newPlaybookApplyCmd(app *App) *cobra.Command {
	var project string
	var yes bool

	cmd := &cobra.Command{
		Use:   "apply [KEY]",
		Short: "Seed a project with a playbook's tasks and funding practices",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				key, err = pickPlaybook(app)
				if err != nil {
					return err
				}
			}

			pb, err := app.Playbooks.Get(ctx, key)
			if err != nil {
				return err
			}

			if !yes {
				confirmed, err := confirmApply(app, pb, p.Title)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			result, err := app.Playbooks.Apply(ctx, projectID, key)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatApplyResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID (or unique prefix)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// pickPlaybook resolves a playbook key when none was given on the command
// line: interactively via the list picker on a terminal, otherwise with an
// error naming the valid keys.
func pickPlaybook(app *App) (string, error) {
	playbooks := app.Playbooks.List(context.Background())
	if app.interactive() {
		return runPlaybookPicker(playbooks)
	}

	keys := make([]string, 0, len(playbooks))
	for _, pb := range playbooks {
		keys = append(keys, pb.Key)
	}
	return "", fmt.Errorf("playbook key is required (one of: %s)", strings.Join(keys, ", "))
}

// confirmApply prompts before seeding. Re-applying duplicates rows, so the
// prompt spells out exactly what will be written.
func confirmApply(app *App, pb playbook.Playbook, projectTitle string) (bool, error) {
	if !app.interactive() {
		return true, nil
	}

	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Apply %q to %s?", pb.Label, projectTitle)).
			Description(fmt.Sprintf(
				"Seeds %d tasks and %d funding practices. Applying the same playbook again adds them a second time.",
				len(pb.Tasks), len(pb.Practices))).
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
