package layout

import (
	"sort"
	"time"

	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/timeline"
)

// Bar is a horizontal span in pixels.
type Bar struct {
	X float64
	W float64
}

func (b Bar) Right() float64 { return b.X + b.W }

// Row is one rendered Gantt row: a task with its vertical position, indent
// depth and bar geometry.
type Row struct {
	Index     int
	Depth     int
	Task      *domain.Task
	PlanBar   Bar
	ActualBar *Bar // nil until actual work is recorded
}

// Link is a dependency arrow from a predecessor's bar end to a successor's
// bar start. Links are purely visual: infeasible orderings render as-is.
type Link struct {
	FromRow int
	FromX   float64
	ToRow   int
	ToX     float64
}

// Opts parameterizes a layout pass. The same Start/Zoom/CellWidth must be
// used for the S-curve overlay so both share one coordinate system.
type Opts struct {
	Start     time.Time
	Zoom      timeline.Zoom
	CellWidth float64
	Today     time.Time
	Collapsed map[string]bool // group task ids whose descendants are hidden
}

// Chart is the laid-out Gantt body.
type Chart struct {
	Rows  []Row
	Links []Link
}

// BuildRows flattens the task tree into visible rows (depth-first, siblings
// by Order ascending) and computes bar geometry for each. Collapsed groups
// keep their own row with an aggregated span; their descendants are hidden.
func BuildRows(tasks []*domain.Task, opts Opts) *Chart {
	byID := make(map[string]*domain.Task, len(tasks))
	children := make(map[string][]*domain.Task)
	for _, t := range tasks {
		byID[t.ID] = t
	}
	for _, t := range tasks {
		parent := ""
		// A dangling parent id renders the task at the root rather than
		// dropping it.
		if t.ParentTaskID != nil && byID[*t.ParentTaskID] != nil {
			parent = *t.ParentTaskID
		}
		children[parent] = append(children[parent], t)
	}
	for _, siblings := range children {
		sortSiblings(siblings)
	}

	chart := &Chart{}
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, t := range children[parent] {
			row := Row{
				Index: len(chart.Rows),
				Depth: depth,
				Task:  t,
			}
			start, end := t.PlanStartDate, t.PlanEndDate
			if t.IsGroup() {
				if s, e, ok := descendantSpan(t.ID, children); ok {
					start, end = s, e
				}
			}
			row.PlanBar = planBar(start, end, opts)
			row.ActualBar = actualBar(t, opts)
			chart.Rows = append(chart.Rows, row)

			if t.IsGroup() && opts.Collapsed[t.ID] {
				continue
			}
			walk(t.ID, depth+1)
		}
	}
	walk("", 0)

	chart.Links = buildLinks(chart.Rows)
	return chart
}

// sortSiblings orders by Order ascending; name then id break ties so the
// vertical order is stable across recomputation.
func sortSiblings(siblings []*domain.Task) {
	sort.SliceStable(siblings, func(i, j int) bool {
		a, b := siblings[i], siblings[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

// descendantSpan aggregates the plan interval over every leaf descendant of
// the group, including descendants hidden by collapse.
func descendantSpan(groupID string, children map[string][]*domain.Task) (time.Time, time.Time, bool) {
	var start, end time.Time
	found := false
	var visit func(id string)
	visit = func(id string) {
		for _, c := range children[id] {
			if c.IsGroup() {
				visit(c.ID)
				continue
			}
			if !found || c.PlanStartDate.Before(start) {
				start = c.PlanStartDate
			}
			if !found || c.PlanEndDate.After(end) {
				end = c.PlanEndDate
			}
			found = true
		}
	}
	visit(groupID)
	return start, end, found
}

// planBar positions the plan interval. The end date is inclusive, so the
// bar extends to the start of the day after the end date.
func planBar(start, end time.Time, opts Opts) Bar {
	x := timeline.DateToX(start, opts.Start, opts.Zoom, opts.CellWidth)
	right := timeline.DateToX(end.AddDate(0, 0, 1), opts.Start, opts.Zoom, opts.CellWidth)
	w := right - x
	if w < 0 {
		w = 0
	}
	return Bar{X: x, W: w}
}

// actualBar positions the progress overlay. Drawn only once actual work has
// started; its span runs from the actual start to min(today, actual end),
// scaled by progress while the task is in progress.
func actualBar(t *domain.Task, opts Opts) *Bar {
	if t.ActualStartDate == nil {
		return nil
	}
	today := domain.Date(opts.Today)
	rightDate := today
	if t.ActualEndDate != nil && t.ActualEndDate.Before(today) {
		rightDate = domain.Date(*t.ActualEndDate)
	}
	if rightDate.Before(domain.Date(*t.ActualStartDate)) {
		rightDate = domain.Date(*t.ActualStartDate)
	}

	x := timeline.DateToX(*t.ActualStartDate, opts.Start, opts.Zoom, opts.CellWidth)
	right := timeline.DateToX(rightDate.AddDate(0, 0, 1), opts.Start, opts.Zoom, opts.CellWidth)
	w := right - x
	if w < 0 {
		w = 0
	}
	if t.Status != domain.StatusCompleted {
		w = w * float64(t.Progress) / 100
	}
	return &Bar{X: x, W: w}
}

// buildLinks resolves predecessor arrows between visible rows only.
func buildLinks(rows []Row) []Link {
	rowByTask := make(map[string]int, len(rows))
	for _, r := range rows {
		rowByTask[r.Task.ID] = r.Index
	}
	var links []Link
	for _, r := range rows {
		for _, predID := range r.Task.Predecessors {
			predRow, ok := rowByTask[predID]
			if !ok {
				continue
			}
			links = append(links, Link{
				FromRow: predRow,
				FromX:   rows[predRow].PlanBar.Right(),
				ToRow:   r.Index,
				ToX:     r.PlanBar.X,
			})
		}
	}
	return links
}
