package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/service"
)

func validateProgress(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// progressFields holds form-bound values for the progress report form.
type progressFields struct {
	progress string
	date     string
	note     string
	started  bool
}

// newProgressForm builds the progress report form for a task, pre-populated
// with the current progress and today's date.
func newProgressForm(t *domain.Task, today time.Time) (*huh.Form, *progressFields) {
	f := &progressFields{
		progress: strconv.Itoa(t.Progress),
		date:     today.Format("2006-01-02"),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Progress %% (currently %d%%)", t.Progress)).
				Value(&f.progress).
				Validate(validateProgress),
			huh.NewInput().
				Title("Report Date (YYYY-MM-DD)").
				Value(&f.date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Note (optional)").
				Value(&f.note),
			huh.NewConfirm().
				Title("Work started on site?").
				Description("Only matters while progress is 0%").
				Value(&f.started),
		),
	).WithTheme(girderHuhTheme()).WithShowHelp(false)

	return form, f
}

// applyProgress persists the form values through the board.
func applyProgress(board *service.Board, taskID string, f *progressFields) tea.Cmd {
	return func() tea.Msg {
		progress, _ := strconv.Atoi(f.progress)
		update := service.ProgressUpdate{
			Progress:     progress,
			Note:         f.note,
			StartingWork: f.started,
		}
		if f.date != "" {
			if d, err := time.Parse("2006-01-02", f.date); err == nil {
				update.Date = d
			}
		}
		if err := board.SetProgress(context.Background(), taskID, update); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: fmt.Sprintf("Recorded %d%%", progress)}
	}
}

// subtaskFields holds form-bound values for the add subtask form.
type subtaskFields struct {
	name string
}

func newSubtaskForm(parent *domain.Task) (*huh.Form, *subtaskFields) {
	f := &subtaskFields{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Subtask under %q", parent.Name)).
				Placeholder("Subtask name").
				Value(&f.name).
				Validate(validateRequired),
		),
	).WithTheme(girderHuhTheme()).WithShowHelp(false)
	return form, f
}

func applySubtask(board *service.Board, parentID string, f *subtaskFields) tea.Cmd {
	return func() tea.Msg {
		t, err := board.AddSubtask(context.Background(), parentID, f.name)
		if err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: fmt.Sprintf("Added %q", t.Name)}
	}
}
