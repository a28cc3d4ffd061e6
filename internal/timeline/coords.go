package timeline

import (
	"math"
	"time"
)

// avgMonthDays approximates a month at month zoom. Documented imprecision:
// month-boundary snapping is not required at that zoom level.
const avgMonthDays = 30.44

// DateToX converts a calendar date to a horizontal pixel offset from the
// timeline start. This is the single source of truth for bar placement and
// S-curve point placement; both must call it with identical parameters.
func DateToX(d, start time.Time, zoom Zoom, cellWidth float64) float64 {
	days := dateOnly(d).Sub(dateOnly(start)).Hours() / 24
	switch zoom {
	case ZoomWeek:
		return days / 7 * cellWidth
	case ZoomMonth:
		return days / avgMonthDays * cellWidth
	default:
		return days * cellWidth
	}
}

// XToDate is the inverse of DateToX up to day rounding. A non-positive cell
// width denotes a degenerate zero-width range: everything renders at the
// start date rather than producing Inf or NaN.
func XToDate(x float64, start time.Time, zoom Zoom, cellWidth float64) time.Time {
	start = dateOnly(start)
	if cellWidth <= 0 {
		return start
	}
	var days float64
	switch zoom {
	case ZoomWeek:
		days = x / cellWidth * 7
	case ZoomMonth:
		days = x / cellWidth * avgMonthDays
	default:
		days = x / cellWidth
	}
	if math.IsNaN(days) || math.IsInf(days, 0) {
		return start
	}
	return start.AddDate(0, 0, int(math.Round(days)))
}
