package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mfurukawa/girder/internal/cli/formatter"
	"github.com/mfurukawa/girder/internal/config"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/layout"
	"github.com/mfurukawa/girder/internal/service"
	"github.com/mfurukawa/girder/internal/timeline"
)

// mutatedMsg reports the outcome of a board mutation.
type mutatedMsg struct {
	status string
	err    error
}

// refreshedMsg signals that the board has been reloaded from storage.
type refreshedMsg struct{ err error }

// Model is the interactive Gantt chart. The chart is recomputed from the
// board on every render so mutations show up immediately.
type Model struct {
	board     *service.Board
	cfg       *config.Config
	zoom      timeline.Zoom
	fourWeek  bool
	collapsed map[string]bool
	cursor    int

	vp    viewport.Model
	ready bool

	// form, when set, captures all input until completed or cancelled.
	form     *huh.Form
	formDone func() tea.Cmd

	status string
	err    error
	today  time.Time
}

func newModel(board *service.Board, cfg *config.Config) *Model {
	zoom, err := timeline.ParseZoom(cfg.View.Zoom)
	if err != nil {
		zoom = timeline.ZoomDay
	}
	return &Model{
		board:     board,
		cfg:       cfg,
		zoom:      zoom,
		collapsed: make(map[string]bool),
		vp:        viewport.New(0, 0),
		today:     domain.Date(time.Now()),
	}
}

// Run opens the interactive chart for a project and blocks until quit.
func Run(ctx context.Context, tasks service.TaskService, projectID string, cfg *config.Config) error {
	board := service.NewBoard(tasks, projectID)
	if err := board.Refresh(ctx); err != nil {
		return err
	}
	p := tea.NewProgram(newModel(board, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 3 // title, status, help
		if m.vp.Height < 1 {
			m.vp.Height = 1
		}
		m.ready = true
		return m, nil

	case refreshedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "Reloaded."
		}
		m.clampCursor()
		return m, nil

	case mutatedMsg:
		m.err = msg.err
		m.status = msg.status
		m.clampCursor()
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.formDone = nil
		m.status = "Cancelled."
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		done := m.formDone
		m.form = nil
		m.formDone = nil
		if done != nil {
			return m, tea.Batch(cmd, done())
		}
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.chart().Rows

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case "h", "left":
		if row, ok := m.selected(rows); ok && !row.Task.IsGroup() {
			return m, m.shiftCmd(row.Task.ID, -1)
		}
	case "l", "right":
		if row, ok := m.selected(rows); ok && !row.Task.IsGroup() {
			return m, m.shiftCmd(row.Task.ID, 1)
		}

	case "+", "=":
		m.zoom = zoomIn(m.zoom)
	case "-":
		m.zoom = zoomOut(m.zoom)

	case "w":
		m.fourWeek = !m.fourWeek

	case "c":
		if row, ok := m.selected(rows); ok && row.Task.IsGroup() {
			m.collapsed[row.Task.ID] = !m.collapsed[row.Task.ID]
			m.clampCursor()
		}

	case "enter":
		if row, ok := m.selected(rows); ok {
			if row.Task.IsGroup() {
				m.collapsed[row.Task.ID] = !m.collapsed[row.Task.ID]
				m.clampCursor()
				return m, nil
			}
			form, fields := newProgressForm(row.Task, m.today)
			m.form = form
			taskID := row.Task.ID
			m.formDone = func() tea.Cmd { return applyProgress(m.board, taskID, fields) }
			return m, m.form.Init()
		}

	case "a":
		if row, ok := m.selected(rows); ok {
			form, fields := newSubtaskForm(row.Task)
			m.form = form
			parentID := row.Task.ID
			m.formDone = func() tea.Cmd { return applySubtask(m.board, parentID, fields) }
			return m, m.form.Init()
		}

	case "r":
		return m, m.refreshCmd()

	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) shiftCmd(taskID string, days int) tea.Cmd {
	return func() tea.Msg {
		if err := m.board.Shift(context.Background(), taskID, days); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.board.Refresh(context.Background())}
	}
}

func (m *Model) selected(rows []layout.Row) (layout.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(rows) {
		return layout.Row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.chart().Rows); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// window returns the chart's date range, either the full plan span or the
// rolling four week window.
func (m *Model) window() (time.Time, time.Time, timeline.Zoom) {
	if m.fourWeek {
		start, end := timeline.FourWeekWindow(m.today, m.cfg.WeekStart())
		return start, end, timeline.ZoomDay
	}
	var start, end time.Time
	for _, t := range m.board.Tasks() {
		if start.IsZero() || t.PlanStartDate.Before(start) {
			start = t.PlanStartDate
		}
		if end.IsZero() || t.PlanEndDate.After(end) {
			end = t.PlanEndDate
		}
	}
	return start, end, m.zoom
}

func (m *Model) chart() *layout.Chart {
	start, _, zoom := m.window()
	return layout.BuildRows(m.board.Tasks(), layout.Opts{
		Start:     start,
		Zoom:      zoom,
		CellWidth: m.cfg.CellWidth(string(zoom)),
		Today:     m.today,
		Collapsed: m.collapsed,
	})
}

func (m *Model) View() string {
	if !m.ready {
		return "\n  " + formatter.StyleDim.Render("Loading...")
	}
	if m.form != nil {
		return m.titleLine() + "\n" + m.form.View()
	}
	if m.board.Len() == 0 {
		return m.titleLine() + "\n\n  " + formatter.StyleDim.Render("No tasks in this project.")
	}

	start, end, zoom := m.window()
	cellWidth := m.cfg.CellWidth(string(zoom))
	tl, err := timeline.Generate(start, end, zoom, m.cfg.WeekStart())
	if err != nil {
		return m.titleLine() + "\n\n  " + formatter.StyleRed.Render("Error: "+err.Error())
	}
	chart := layout.BuildRows(m.board.Tasks(), layout.Opts{
		Start:     tl.Start,
		Zoom:      zoom,
		CellWidth: cellWidth,
		Today:     m.today,
		Collapsed: m.collapsed,
	})

	body := formatter.RenderGantt(tl, chart, cellWidth, formatter.GanttOptions{
		Today:      m.today,
		ShowCursor: true,
		Cursor:     m.cursor,
		Columns:    m.cfg.VisibleColumns(),
	})
	m.vp.SetContent(body)
	m.scrollToCursor()

	return strings.Join([]string{
		m.titleLine(),
		m.vp.View(),
		m.statusLine(),
		m.helpLine(),
	}, "\n")
}

// scrollToCursor keeps the selected row inside the viewport. The cursor row
// sits below two header lines and the today marker line.
func (m *Model) scrollToCursor() {
	line := m.cursor + 3
	if line < m.vp.YOffset {
		m.vp.SetYOffset(line)
	} else if line >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(line - m.vp.Height + 1)
	}
}

func (m *Model) titleLine() string {
	mode := string(m.zoom)
	if m.fourWeek {
		mode = "4-week window"
	}
	return formatter.StyleHeader.Render("Gantt") + "  " + formatter.StyleDim.Render(mode)
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return formatter.StyleGreen.Render(m.status)
	}
	return ""
}

func (m *Model) helpLine() string {
	return formatter.StyleDim.Render(
		"j/k move  h/l shift day  enter progress  a subtask  c collapse  +/- zoom  w window  r reload  q quit")
}

func zoomIn(z timeline.Zoom) timeline.Zoom {
	switch z {
	case timeline.ZoomMonth:
		return timeline.ZoomWeek
	case timeline.ZoomWeek:
		return timeline.ZoomDay
	default:
		return timeline.ZoomDay
	}
}

func zoomOut(z timeline.Zoom) timeline.Zoom {
	switch z {
	case timeline.ZoomDay:
		return timeline.ZoomWeek
	case timeline.ZoomWeek:
		return timeline.ZoomMonth
	default:
		return timeline.ZoomMonth
	}
}
