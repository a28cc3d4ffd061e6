package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mfurukawa/girder/internal/cli/formatter"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/service"
	"github.com/spf13/cobra"
)

// resolveTaskID accepts a full ID, an ID prefix, or an exact task name
// within the project.
func resolveTaskID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task is required")
	}
	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}
	for _, t := range tasks {
		if strings.EqualFold(t.Name, input) {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parseDateFlag(value, flag string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: %w", flag, value, err)
	}
	return d, nil
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskProgressCmd(app),
		newTaskRescheduleCmd(app),
		newTaskShiftCmd(app),
		newTaskSubtaskCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		project, name, taskType, category, start, end string
		predecessors                                  []string
		cost, quantity                                float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			t := &domain.Task{
				ProjectID: projectID,
				Name:      name,
				Type:      domain.TaskType(taskType),
				Category:  category,
				Cost:      cost,
				Quantity:  quantity,
			}
			if start != "" {
				if t.PlanStartDate, err = parseDateFlag(start, "start"); err != nil {
					return err
				}
			}
			if end != "" {
				if t.PlanEndDate, err = parseDateFlag(end, "end"); err != nil {
					return err
				}
			}
			for _, pred := range predecessors {
				id, err := resolveTaskID(ctx, app, projectID, pred)
				if err != nil {
					return err
				}
				t.Predecessors = append(t.Predecessors, id)
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Created task %s (%s – %s)\n", t.Name,
				t.PlanStartDate.Format("2006-01-02"), t.PlanEndDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&taskType, "type", "task", "Task type (task or group)")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&start, "start", "", "Plan start (YYYY-MM-DD); defaults from predecessors")
	cmd.Flags().StringVar(&end, "end", "", "Plan end (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&predecessors, "after", nil, "Predecessor tasks (ID or name)")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Cost weight")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "Quantity")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a project",
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

			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []string{
					t.ID[:8],
					t.Name,
					formatter.PeriodLabel(t.PlanStartDate, t.PlanEndDate),
					strconv.Itoa(t.PlanDuration()) + "d",
					formatter.RenderProgress(float64(t.Progress)/100, 10),
					formatter.StatusIndicator(t.Status),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"ID", "NAME", "PERIOD", "DAYS", "PROGRESS", "STATUS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskProgressCmd(app *App) *cobra.Command {
	var (
		project, dateStr, note string
		progress               int
		startingWork           bool
	)

	cmd := &cobra.Command{
		Use:   "progress TASK",
		Short: "Record task progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			update := service.ProgressUpdate{
				Progress:     progress,
				Note:         note,
				StartingWork: startingWork,
			}
			if dateStr != "" {
				if update.Date, err = parseDateFlag(dateStr, "date"); err != nil {
					return err
				}
			}

			t, err := app.Tasks.UpdateProgress(ctx, taskID, update)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s %s\n", t.Name,
				formatter.RenderProgress(float64(t.Progress)/100, 10),
				formatter.StatusIndicator(t.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percent (0-100)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Report date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&note, "note", "", "Progress note")
	cmd.Flags().BoolVar(&startingWork, "start-work", false, "Mark work as started at 0%")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("progress")

	return cmd
}

func newTaskRescheduleCmd(app *App) *cobra.Command {
	var project, start, end string

	cmd := &cobra.Command{
		Use:   "reschedule TASK",
		Short: "Move a task's plan dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			startDate, err := parseDateFlag(start, "start")
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag(end, "end")
			if err != nil {
				return err
			}

			t, err := app.Tasks.UpdateSchedule(ctx, taskID, startDate, endDate)
			if err != nil {
				return err
			}
			fmt.Printf("Rescheduled %s to %s\n", t.Name,
				formatter.PeriodLabel(t.PlanStartDate, t.PlanEndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	cmd.Flags().StringVar(&start, "start", "", "New plan start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New plan end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTaskShiftCmd(app *App) *cobra.Command {
	var project string
	var days int

	cmd := &cobra.Command{
		Use:   "shift TASK",
		Short: "Shift a task's plan by whole days, keeping its duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			t, err := app.Tasks.ShiftSchedule(ctx, taskID, days)
			if err != nil {
				return err
			}
			fmt.Printf("Shifted %s to %s\n", t.Name,
				formatter.PeriodLabel(t.PlanStartDate, t.PlanEndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	cmd.Flags().IntVar(&days, "days", 0, "Days to shift (negative moves earlier)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newTaskSubtaskCmd(app *App) *cobra.Command {
	var project, name string

	cmd := &cobra.Command{
		Use:   "subtask PARENT",
		Short: "Add a subtask under a parent task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			parentID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			t, err := app.Tasks.AddSubtask(ctx, parentID, name)
			if err != nil {
				return err
			}
			fmt.Printf("Created subtask %s starting %s\n", t.Name,
				t.PlanStartDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	cmd.Flags().StringVar(&name, "name", "", "Subtask name")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove TASK",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", taskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
