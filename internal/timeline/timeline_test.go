package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_Day_InclusiveCount(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		wantItems  int
	}{
		{"single day", date(2024, 1, 1), date(2024, 1, 1), 1},
		{"one week", date(2024, 1, 1), date(2024, 1, 7), 7},
		{"across month boundary", date(2024, 1, 30), date(2024, 2, 2), 4},
		{"across year boundary", date(2023, 12, 30), date(2024, 1, 2), 4},
		{"leap february", date(2024, 2, 1), date(2024, 2, 29), 29},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tl, err := Generate(tc.start, tc.end, ZoomDay, time.Monday)
			require.NoError(t, err)
			assert.Len(t, tl.Items, tc.wantItems)
		})
	}
}

func TestGenerate_Day_GroupWidthsSumToTotal(t *testing.T) {
	// Starts mid-month and crosses a year boundary: both edge groups are partial.
	tl, err := Generate(date(2023, 11, 20), date(2024, 2, 10), ZoomDay, time.Monday)
	require.NoError(t, err)

	const cellWidth = 24.0
	var sum float64
	for _, g := range tl.Groups {
		sum += tl.GroupWidth(g, cellWidth)
	}
	assert.Equal(t, tl.Width(cellWidth), sum, "group widths must sum to total width, no gaps")

	require.Len(t, tl.Groups, 4) // Nov, Dec, Jan, Feb
	assert.Equal(t, 11, tl.Groups[0].Count, "partial November: 20..30")
	assert.Equal(t, 31, tl.Groups[1].Count)
	assert.Equal(t, 31, tl.Groups[2].Count)
	assert.Equal(t, 10, tl.Groups[3].Count, "partial February: 1..10")
}

func TestGenerate_SwapsReversedBounds(t *testing.T) {
	tl, err := Generate(date(2024, 1, 10), date(2024, 1, 1), ZoomDay, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), tl.Start)
	assert.Len(t, tl.Items, 10)
}

func TestGenerate_Week_SnapsToWeekStart(t *testing.T) {
	// 2024-01-03 is a Wednesday; the week containing it starts Monday 01-01.
	tl, err := Generate(date(2024, 1, 3), date(2024, 1, 20), ZoomWeek, time.Monday)
	require.NoError(t, err)
	require.NotEmpty(t, tl.Items)
	assert.Equal(t, date(2024, 1, 1), tl.Items[0])
	for _, item := range tl.Items {
		assert.Equal(t, time.Monday, item.Weekday())
	}
	// Weeks of 01-01, 01-08, 01-15 overlap the range.
	assert.Len(t, tl.Items, 3)
}

func TestGenerate_StartIsGridOrigin(t *testing.T) {
	// Wednesday start: the first week item snaps back to Monday 01-01 and
	// Start snaps with it, so item offsets land on exact column edges.
	tl, err := Generate(date(2024, 1, 3), date(2024, 1, 20), ZoomWeek, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, tl.Items[0], tl.Start)
	for i, item := range tl.Items {
		assert.Equal(t, float64(i)*56, DateToX(item, tl.Start, ZoomWeek, 56), "week column %d", i)
	}

	// Mid-month start at month zoom: Start snaps to the 1st. Columns line up
	// within the documented average-month approximation.
	tl, err = Generate(date(2023, 11, 15), date(2024, 2, 10), ZoomMonth, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, date(2023, 11, 1), tl.Start)
	assert.Equal(t, 0.0, DateToX(tl.Items[0], tl.Start, ZoomMonth, 100))
	for i, item := range tl.Items {
		assert.InDelta(t, float64(i)*100, DateToX(item, tl.Start, ZoomMonth, 100), 6, "month column %d", i)
	}
}

func TestGenerate_Week_LabelsResetPerMonth(t *testing.T) {
	tl, err := Generate(date(2024, 1, 29), date(2024, 2, 12), ZoomWeek, time.Monday)
	require.NoError(t, err)
	require.Len(t, tl.Items, 3) // Jan 29, Feb 5, Feb 12

	assert.Equal(t, "W5", tl.ItemLabel(tl.Items[0]))
	assert.Equal(t, "W1", tl.ItemLabel(tl.Items[1]), "week numbering restarts each month")
	assert.Equal(t, "W2", tl.ItemLabel(tl.Items[2]))
}

func TestGenerate_Month_ItemsAndYearGroups(t *testing.T) {
	tl, err := Generate(date(2023, 11, 15), date(2024, 2, 10), ZoomMonth, time.Monday)
	require.NoError(t, err)

	require.Len(t, tl.Items, 4)
	assert.Equal(t, date(2023, 11, 1), tl.Items[0])
	assert.Equal(t, date(2024, 2, 1), tl.Items[3])

	require.Len(t, tl.Groups, 2)
	assert.Equal(t, 2, tl.Groups[0].Count, "Nov+Dec 2023")
	assert.Equal(t, 2, tl.Groups[1].Count, "Jan+Feb 2024")
	assert.Equal(t, "2023", tl.GroupLabel(tl.Groups[0]))
}

func TestGenerate_InvalidZoom(t *testing.T) {
	_, err := Generate(date(2024, 1, 1), date(2024, 1, 2), Zoom("hour"), time.Monday)
	assert.Error(t, err)
}

func TestDateToX_Day(t *testing.T) {
	start := date(2024, 1, 1)
	assert.Equal(t, 0.0, DateToX(start, start, ZoomDay, 24))
	assert.Equal(t, 24.0, DateToX(date(2024, 1, 2), start, ZoomDay, 24))
	assert.Equal(t, 240.0, DateToX(date(2024, 1, 11), start, ZoomDay, 24))
}

func TestDateToX_Week_Fractional(t *testing.T) {
	start := date(2024, 1, 1)
	// Mid-week dates are positioned proportionally, not snapped.
	x := DateToX(date(2024, 1, 4), start, ZoomWeek, 70)
	assert.InDelta(t, 3.0/7.0*70, x, 1e-9)
}

func TestDateToX_Month_AverageApproximation(t *testing.T) {
	start := date(2024, 1, 1)
	x := DateToX(date(2024, 2, 1), start, ZoomMonth, 100)
	assert.InDelta(t, 31.0/30.44*100, x, 1e-9)
}

func TestXToDate_InverseOfDateToX(t *testing.T) {
	start := date(2024, 1, 1)
	for _, zoom := range []Zoom{ZoomDay, ZoomWeek, ZoomMonth} {
		for offset := 0; offset <= 400; offset += 7 {
			d := start.AddDate(0, 0, offset)
			x := DateToX(d, start, zoom, 30)
			back := XToDate(x, start, zoom, 30)
			assert.Equal(t, d, back, "zoom=%s offset=%d", zoom, offset)
		}
	}
}

func TestXToDate_DegenerateInputs(t *testing.T) {
	start := date(2024, 1, 1)
	assert.Equal(t, start, XToDate(100, start, ZoomDay, 0), "zero cell width renders at offset 0")
	assert.Equal(t, start, XToDate(100, start, ZoomDay, -5))
	assert.Equal(t, 0.0, DateToX(start, start, ZoomWeek, 0), "zero-width range never yields NaN")
}

func TestFourWeekWindow(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	start, end := FourWeekWindow(date(2024, 3, 13), time.Monday)
	assert.Equal(t, date(2024, 3, 4), start, "Monday of the week one week back")
	assert.Equal(t, date(2024, 3, 31), end, "Sunday closing the week two weeks ahead")
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Sunday, end.Weekday())

	tl, err := Generate(start, end, ZoomDay, time.Monday)
	require.NoError(t, err)
	assert.Len(t, tl.Items, 28)
}

func TestWeekOfMonth(t *testing.T) {
	assert.Equal(t, 1, WeekOfMonth(date(2024, 2, 1)))
	assert.Equal(t, 1, WeekOfMonth(date(2024, 2, 7)))
	assert.Equal(t, 2, WeekOfMonth(date(2024, 2, 8)))
	assert.Equal(t, 5, WeekOfMonth(date(2024, 2, 29)))
}
