package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mfurukawa/girder/internal/cli/formatter"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/scurve"
	"github.com/mfurukawa/girder/internal/timeline"
	"github.com/spf13/cobra"
)

func newScurveCmd(app *App) *cobra.Command {
	var project, modeFlag string
	var height int

	cmd := &cobra.Command{
		Use:   "scurve",
		Short: "Show the cumulative plan and actual curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			var mode scurve.Mode
			switch modeFlag {
			case "physical":
				mode = scurve.ModePhysical
			case "financial":
				mode = scurve.ModeFinancial
			default:
				return fmt.Errorf("unknown mode %q (want physical or financial)", modeFlag)
			}

			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks to chart.")
				return nil
			}

			today := domain.Date(time.Now())
			start, end := planBounds(tasks)
			tl, err := timeline.Generate(start, end, timeline.ZoomDay, app.Config.WeekStart())
			if err != nil {
				return err
			}

			cellWidth := app.Config.CellWidth("day")
			series := scurve.Compute(tasks, tl, mode, cellWidth, today)
			fmt.Print(formatter.RenderScurve(series, height))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	cmd.Flags().StringVar(&modeFlag, "mode", "physical", "Weighting mode (physical or financial)")
	cmd.Flags().IntVar(&height, "height", 12, "Chart height in rows")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
