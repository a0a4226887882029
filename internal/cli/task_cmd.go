package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/coveyrise/steward/internal/cli/formatter"
	"github.com/coveyrise/steward/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, title, notes, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			task := &domain.Task{
				ProjectID: projectID,
				Title:     title,
				Notes:     notes,
			}
			if due != "" {
				d, err := time.ParseInLocation("2006-01-02", due, time.UTC)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				task.DueOn = &d
			}
			if err := app.Tasks.Create(ctx, task); err != nil {
				return err
			}

			fmt.Printf("Added task %q\n", task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID (or unique prefix)")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks in work-plan order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID (or unique prefix)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Tasks.MarkDone(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Task marked done.")
			return nil
		},
	}
}
