// Package scurve aggregates cumulative planned and actual progress over the
// timeline, producing the series drawn on top of the Gantt grid.
package scurve

import (
	"time"

	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/timeline"
)

// Mode selects how tasks are weighted in the cumulative percentages.
type Mode string

const (
	// ModePhysical weights every leaf task equally.
	ModePhysical Mode = "physical"
	// ModeFinancial weights each leaf task by its cost.
	ModeFinancial Mode = "financial"
)

// Point is one sample of the series: one per timeline item. X comes from the
// same coordinate mapper as the task bars so the overlay aligns with them.
type Point struct {
	Date   time.Time
	X      float64
	Plan   float64 // cumulative planned completion, percent
	Actual float64 // cumulative actual completion, percent
}

// Series is the full S-curve. The actual channel is meaningful only up to
// MaxActualDate; rendering stops the actual line there instead of
// extrapolating.
type Series struct {
	Points        []Point
	MaxActualDate *time.Time
	TotalScope    float64
}

// HasActual reports whether the actual channel is defined at d.
func (s *Series) HasActual(d time.Time) bool {
	return s.MaxActualDate != nil && !domain.Date(d).After(*s.MaxActualDate)
}

func weight(t *domain.Task, mode Mode) float64 {
	if mode == ModeFinancial {
		return t.Cost
	}
	return 1
}

// Compute samples the plan and actual channels at every timeline item.
// Group tasks carry no scope of their own; only leaf tasks contribute.
// A zero total scope defines both channels as 0 everywhere.
func Compute(tasks []*domain.Task, tl *timeline.Timeline, mode Mode, cellWidth float64, today time.Time) *Series {
	today = domain.Date(today)

	var leaves []*domain.Task
	total := 0.0
	for _, t := range tasks {
		if t.IsGroup() {
			continue
		}
		leaves = append(leaves, t)
		total += weight(t, mode)
	}

	series := &Series{TotalScope: total}
	series.MaxActualDate = maxActualDate(leaves)

	for _, d := range tl.Items {
		p := Point{
			Date: d,
			X:    timeline.DateToX(d, tl.Start, tl.Zoom, cellWidth),
		}
		if total > 0 {
			var plan, actual float64
			for _, t := range leaves {
				w := weight(t, mode)
				if !domain.Date(t.PlanEndDate).After(d) {
					plan += w
				}
				actual += actualCredit(t, w, d, today)
			}
			p.Plan = plan / total * 100
			p.Actual = actual / total * 100
		}
		series.Points = append(series.Points, p)
	}
	return series
}

// actualCredit is the weight a task contributes to the actual channel at
// item d: full weight once its actual end is on or before d, partial credit
// proportional to progress while it is in progress, nothing otherwise.
func actualCredit(t *domain.Task, w float64, d, today time.Time) float64 {
	if t.ActualEndDate != nil && !domain.Date(*t.ActualEndDate).After(d) {
		return w
	}
	if t.Status == domain.StatusInProgress && t.ActualStartDate != nil &&
		!domain.Date(*t.ActualStartDate).After(d) && !d.After(today) {
		return w * float64(t.Progress) / 100
	}
	return 0
}

// maxActualDate is the latest date any task has recorded actual progress.
func maxActualDate(tasks []*domain.Task) *time.Time {
	var max *time.Time
	consider := func(d *time.Time) {
		if d == nil {
			return
		}
		v := domain.Date(*d)
		if max == nil || v.After(*max) {
			max = &v
		}
	}
	for _, t := range tasks {
		consider(t.ActualStartDate)
		consider(t.ActualEndDate)
		consider(t.ProgressUpdatedAt)
	}
	return max
}
