package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mfurukawa/girder/internal/cli"
	"github.com/mfurukawa/girder/internal/config"
	"github.com/mfurukawa/girder/internal/db"
	"github.com/mfurukawa/girder/internal/repository"
	"github.com/mfurukawa/girder/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.girder/girder.db
	dbPath := os.Getenv("GIRDER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".girder", "girder.db")
	}

	// Config file: env var or default ~/.girder/girder.yaml. A missing
	// file yields the defaults.
	cfgPath := os.Getenv("GIRDER_CONFIG")
	if cfgPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		cfgPath = filepath.Join(home, ".girder", "girder.yaml")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo),
		Tasks:     service.NewTaskService(taskRepo),
		Employees: service.NewEmployeeService(employeeRepo, memberRepo),
		Import:    service.NewImportService(projectRepo, taskRepo),
		Export:    service.NewExportService(taskRepo),
		Config:    cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
