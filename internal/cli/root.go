package cli

import (
	"github.com/mfurukawa/girder/internal/config"
	"github.com/mfurukawa/girder/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Tasks     service.TaskService
	Employees service.EmployeeService
	Import    service.ImportService
	Export    service.ExportService

	Config *config.Config

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "girder" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "girder",
		Short: "Construction project planner with Gantt and S-curve views",
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newGanttCmd(app),
		newScurveCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newEmployeeCmd(app),
	)

	return root
}
