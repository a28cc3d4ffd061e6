package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mfurukawa/girder/internal/cli/formatter"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/layout"
	"github.com/mfurukawa/girder/internal/render"
	"github.com/mfurukawa/girder/internal/scurve"
	"github.com/mfurukawa/girder/internal/timeline"
	"github.com/mfurukawa/girder/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// zoomValue validates the zoom level as the flag is parsed.
type zoomValue timeline.Zoom

var _ pflag.Value = (*zoomValue)(nil)

func (z *zoomValue) String() string { return string(*z) }
func (z *zoomValue) Type() string   { return "zoom" }

func (z *zoomValue) Set(s string) error {
	parsed, err := timeline.ParseZoom(s)
	if err != nil {
		return err
	}
	*z = zoomValue(parsed)
	return nil
}

// planBounds returns the earliest plan start and latest plan end
// across the project's tasks.
func planBounds(tasks []*domain.Task) (time.Time, time.Time) {
	var start, end time.Time
	for _, t := range tasks {
		if start.IsZero() || t.PlanStartDate.Before(start) {
			start = t.PlanStartDate
		}
		if end.IsZero() || t.PlanEndDate.After(end) {
			end = t.PlanEndDate
		}
	}
	return start, end
}

func newGanttCmd(app *App) *cobra.Command {
	var (
		project, svgPath      string
		zoomFlag              zoomValue
		fourWeek, interactive bool
	)

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Render the project Gantt chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			if interactive {
				if !app.IsInteractive() {
					return fmt.Errorf("interactive mode requires a terminal")
				}
				return tui.Run(ctx, app.Tasks, projectID, app.Config)
			}

			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks to chart.")
				return nil
			}

			zoom := timeline.Zoom(zoomFlag)
			if zoom == "" {
				if zoom, err = timeline.ParseZoom(app.Config.View.Zoom); err != nil {
					return err
				}
			}

			today := domain.Date(time.Now())
			start, end := planBounds(tasks)
			if fourWeek {
				// The four week window is a day-level view by definition.
				zoom = timeline.ZoomDay
				start, end = timeline.FourWeekWindow(today, app.Config.WeekStart())
			}

			tl, err := timeline.Generate(start, end, zoom, app.Config.WeekStart())
			if err != nil {
				return err
			}

			cellWidth := app.Config.CellWidth(string(zoom))
			chart := layout.BuildRows(tasks, layout.Opts{
				Start:     tl.Start,
				Zoom:      zoom,
				CellWidth: cellWidth,
				Today:     today,
			})

			if svgPath != "" {
				series := scurve.Compute(tasks, tl, scurve.ModePhysical, cellWidth, today)
				f, err := os.Create(svgPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", svgPath, err)
				}
				defer f.Close()
				if err := render.SVG(f, tl, chart, series, cellWidth, today, svgStyle(app)); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", svgPath)
				return nil
			}

			fmt.Print(formatter.RenderGantt(tl, chart, cellWidth, formatter.GanttOptions{
				Today:   today,
				Columns: app.Config.VisibleColumns(),
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	cmd.Flags().Var(&zoomFlag, "zoom", "Zoom level (day, week, month)")
	cmd.Flags().BoolVar(&fourWeek, "four-week", false, "Show a rolling four week window")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Write the chart as SVG to this file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive chart")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// svgStyle maps the configured colors and sizes onto the renderer.
func svgStyle(app *App) render.Style {
	st := render.DefaultStyle()
	c := app.Config.Colors
	if c.PlanBar != "" {
		st.PlanBar = c.PlanBar
	}
	if c.ActualBar != "" {
		st.ActualBar = c.ActualBar
	}
	if c.GroupBar != "" {
		st.GroupBar = c.GroupBar
	}
	if c.ScurvePlan != "" {
		st.ScurvePlan = c.ScurvePlan
	}
	if c.ScurveActual != "" {
		st.ScurveActual = c.ScurveActual
	}
	if c.Today != "" {
		st.Today = c.Today
	}
	if app.Config.SVG.RowHeight > 0 {
		st.RowHeight = app.Config.SVG.RowHeight
	}
	if app.Config.SVG.HeaderHeight > 0 {
		st.HeaderHeight = app.Config.SVG.HeaderHeight
	}
	return st
}
