package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coveyrise/steward/internal/blob"
	"github.com/coveyrise/steward/internal/cli"
	"github.com/coveyrise/steward/internal/db"
	"github.com/coveyrise/steward/internal/feed"
	"github.com/coveyrise/steward/internal/httpapi"
	"github.com/coveyrise/steward/internal/playbook"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/coveyrise/steward/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.steward/steward.db
	dbPath := os.Getenv("STEWARD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".steward", "steward.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	practiceRepo := repository.NewSQLiteProjectPracticeRepo(database)
	fundingRepo := repository.NewSQLiteFundingRepo(database)
	fileRepo := repository.NewSQLiteFileRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Blob storage for project file attachments
	store, err := blob.Open(context.Background())
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}

	observer := service.NewLogUseCaseObserver(os.Stderr)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo),
		Tasks:     service.NewTaskService(taskRepo, projectRepo),
		Playbooks: service.NewPlaybookService(playbook.DefaultCatalog(), projectRepo, taskRepo, practiceRepo, fundingRepo, observer),
		Funding:   service.NewFundingService(fundingRepo, practiceRepo, uow, observer),
		Files:     service.NewFileService(fileRepo, projectRepo, store, observer),
		ServerConfig: httpapi.Config{
			Addr:  envOr("STEWARD_ADDR", "127.0.0.1:8080"),
			Token: os.Getenv("STEWARD_TOKEN"),
		},
	}

	// Knowledge feed is optional; the commands report when it is unset.
	if ghostURL := os.Getenv("GHOST_BASE_URL"); ghostURL != "" {
		app.Feed = feed.NewReader(ghostURL)
	}

	// Detect interactive terminal for pickers and confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
