package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/mfurukawa/girder/internal/domain"
)

// Accepted in order. Two-digit years are handled separately so the century
// pivot is explicit rather than Go's default.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"2006.01.02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// parseDate parses a CSV date cell. Empty or unparseable cells fall back to
// the given default rather than failing the row.
func parseDate(cell string, fallback time.Time) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return fallback, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return domain.Date(t), true
		}
	}
	if t, ok := parseTwoDigitYear(cell); ok {
		return t, true
	}
	return fallback, false
}

// parseTwoDigitYear handles DD/MM/YY. Years below 50 land in 20xx, the rest
// in 19xx.
func parseTwoDigitYear(cell string) (time.Time, bool) {
	parts := strings.Split(cell, "/")
	if len(parts) != 3 || len(parts[2]) != 2 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	if year < 50 {
		year += 2000
	} else {
		year += 1900
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
