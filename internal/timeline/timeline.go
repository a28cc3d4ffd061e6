// Package timeline generates the calendar axis of the Gantt chart and owns
// the date↔pixel mapping shared by task bars and the S-curve overlay.
package timeline

import (
	"fmt"
	"time"
)

type Zoom string

const (
	ZoomDay   Zoom = "day"
	ZoomWeek  Zoom = "week"
	ZoomMonth Zoom = "month"
)

// ParseZoom converts a flag value into a Zoom.
func ParseZoom(s string) (Zoom, error) {
	switch Zoom(s) {
	case ZoomDay, ZoomWeek, ZoomMonth:
		return Zoom(s), nil
	}
	return "", fmt.Errorf("invalid zoom %q (expected day, week or month)", s)
}

// Group is one cell of the coarser header row: a (year, month) pair for
// day/week zoom, a year for month zoom. Count is the number of items that
// belong to the group, so group pixel widths always sum to the grid width
// even when the range starts or ends mid-group.
type Group struct {
	Start time.Time
	Count int
}

// Timeline is the ordered item/group sequence for a date range at one zoom
// level. It is derived, never persisted, and regenerated on every range or
// zoom change.
type Timeline struct {
	Start     time.Time
	End       time.Time
	Zoom      Zoom
	WeekStart time.Weekday

	Items  []time.Time
	Groups []Group

	// Go time layouts for header labels. Week item labels are not a plain
	// layout (week numbers reset per month); use ItemLabel.
	ItemFormat  string
	GroupFormat string
}

// dateOnly truncates to midnight UTC. The whole package works in
// date-valued UTC times.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the latest weekStart on or before d.
func startOfWeek(d time.Time, weekStart time.Weekday) time.Time {
	d = dateOnly(d)
	diff := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -diff)
}

// WeekOfMonth returns the 1-based week number of d within its month, where
// numbering restarts at 1 on the 1st of every month. These are not ISO week
// numbers.
func WeekOfMonth(d time.Time) int {
	return (d.Day()-1)/7 + 1
}

// Generate produces the timeline for [start, end] at the given zoom.
// Reversed bounds are swapped. weekStart configures which weekday opens a
// week at week zoom (Monday in the default views).
//
// Start is the grid origin, Items[0]. At week and month zoom the first item
// snaps earlier than the requested start (to the week start or the 1st), so
// Start can precede the requested date. DateToX offsets computed against
// Start therefore line up with header columns at every zoom.
func Generate(start, end time.Time, zoom Zoom, weekStart time.Weekday) (*Timeline, error) {
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		start, end = end, start
	}

	tl := &Timeline{Start: start, End: end, Zoom: zoom, WeekStart: weekStart}

	switch zoom {
	case ZoomDay:
		tl.ItemFormat, tl.GroupFormat = "2", "Jan 2006"
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			tl.Items = append(tl.Items, d)
		}
		tl.Groups = groupByMonth(tl.Items)

	case ZoomWeek:
		tl.ItemFormat, tl.GroupFormat = "", "Jan 2006"
		for d := startOfWeek(start, weekStart); !d.After(end); d = d.AddDate(0, 0, 7) {
			tl.Items = append(tl.Items, d)
		}
		tl.Groups = groupByMonth(tl.Items)

	case ZoomMonth:
		tl.ItemFormat, tl.GroupFormat = "Jan", "2006"
		for d := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !d.After(end); d = d.AddDate(0, 1, 0) {
			tl.Items = append(tl.Items, d)
		}
		tl.Groups = groupByYear(tl.Items)

	default:
		return nil, fmt.Errorf("invalid zoom %q", zoom)
	}

	if len(tl.Items) > 0 {
		tl.Start = tl.Items[0]
	}

	return tl, nil
}

func groupByMonth(items []time.Time) []Group {
	var groups []Group
	for _, d := range items {
		monthStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		if n := len(groups); n > 0 && groups[n-1].Start.Equal(monthStart) {
			groups[n-1].Count++
			continue
		}
		groups = append(groups, Group{Start: monthStart, Count: 1})
	}
	return groups
}

func groupByYear(items []time.Time) []Group {
	var groups []Group
	for _, d := range items {
		yearStart := time.Date(d.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		if n := len(groups); n > 0 && groups[n-1].Start.Equal(yearStart) {
			groups[n-1].Count++
			continue
		}
		groups = append(groups, Group{Start: yearStart, Count: 1})
	}
	return groups
}

// ItemLabel renders the header label for one item.
func (tl *Timeline) ItemLabel(d time.Time) string {
	if tl.Zoom == ZoomWeek {
		return fmt.Sprintf("W%d", WeekOfMonth(d))
	}
	return d.Format(tl.ItemFormat)
}

// GroupLabel renders the header label for one group.
func (tl *Timeline) GroupLabel(g Group) string {
	return g.Start.Format(tl.GroupFormat)
}

// GroupWidth is the pixel width of a group cell: item count times cell
// width, never a fixed calendar-unit width.
func (tl *Timeline) GroupWidth(g Group, cellWidth float64) float64 {
	return float64(g.Count) * cellWidth
}

// Width is the total pixel width of the grid.
func (tl *Timeline) Width(cellWidth float64) float64 {
	return float64(len(tl.Items)) * cellWidth
}

// FourWeekWindow is the restricted day-zoom view: one week back and two
// weeks ahead of today, clamped to whole weeks starting on weekStart.
func FourWeekWindow(today time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	start := startOfWeek(dateOnly(today).AddDate(0, 0, -7), weekStart)
	end := startOfWeek(dateOnly(today).AddDate(0, 0, 14), weekStart).AddDate(0, 0, 6)
	return start, end
}
