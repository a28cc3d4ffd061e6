package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mfurukawa/girder/internal/domain"
)

// ErrNoValidRows is returned when the file parses but contains no usable
// task rows. Distinct from a parse failure so callers can word the message.
var ErrNoValidRows = errors.New("no valid task rows in file")

// Result is the outcome of parsing one CSV file. Tasks carry fresh IDs and
// resolved parent/predecessor links but no project assignment yet.
type Result struct {
	Tasks       []*domain.Task
	SkippedRows int
}

// Parse reads a task CSV. Rows with an empty name are skipped, which also
// drops the documentation row an export writes. Group rows open a parent
// scope: following task rows in the same category attach to the group until
// the category changes or another group row appears. Consecutive task rows
// are chained predecessor to successor in file order.
//
// importDate is the fallback for missing or unparseable plan start dates.
func Parse(r io.Reader, importDate time.Time) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := resolveHeader(header)
	if !hasColumn(cols, colName) {
		return nil, fmt.Errorf("no task name column found (accepted: Task Name, Task, Name)")
	}

	importDate = domain.Date(importDate)
	res := &Result{}
	var (
		group    *domain.Task
		groupCat string
		prev     *domain.Task
		order    int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		row := project(record, cols)
		if strings.TrimSpace(row[colName]) == "" {
			res.SkippedRows++
			continue
		}

		t := rowToTask(row, importDate)
		t.Order = order
		order++

		if t.Type == domain.TypeGroup {
			group = t
			groupCat = t.Category
			prev = nil
		} else {
			if group != nil && t.Category == groupCat {
				parentID := group.ID
				t.ParentTaskID = &parentID
			} else {
				group = nil
			}
			if prev != nil {
				t.Predecessors = []string{prev.ID}
			}
			prev = t
		}
		res.Tasks = append(res.Tasks, t)
	}

	if len(res.Tasks) == 0 {
		return nil, ErrNoValidRows
	}
	return res, nil
}

// project rearranges a raw record into canonical column order.
func project(record []string, cols []int) [colCount]string {
	var row [colCount]string
	for i, cell := range record {
		if i >= len(cols) || cols[i] < 0 {
			continue
		}
		row[cols[i]] = stripBOM(cell)
	}
	return row
}

func rowToTask(row [colCount]string, importDate time.Time) *domain.Task {
	t := &domain.Task{
		ID:             uuid.New().String(),
		Type:           domain.TypeTask,
		Name:           strings.TrimSpace(row[colName]),
		Category:       strings.TrimSpace(row[colCategory]),
		Subcategory:    strings.TrimSpace(row[colSubcategory]),
		SubSubcategory: strings.TrimSpace(row[colSubSubcategory]),
		Responsible:    strings.TrimSpace(row[colResponsible]),
		Color:          strings.TrimSpace(row[colColor]),
		Quantity:       parseFloat(row[colQuantity]),
		Cost:           parseFloat(row[colCost]),
	}
	if strings.EqualFold(strings.TrimSpace(row[colType]), string(domain.TypeGroup)) {
		t.Type = domain.TypeGroup
	}

	t.PlanStartDate, _ = parseDate(row[colPlanStart], importDate)
	t.PlanEndDate, _ = parseDate(row[colPlanEnd], t.PlanStartDate)
	if t.PlanEndDate.Before(t.PlanStartDate) {
		t.PlanEndDate = t.PlanStartDate
	}
	if start, ok := parseDate(row[colActualStart], time.Time{}); ok {
		t.ActualStartDate = &start
	}
	if end, ok := parseDate(row[colActualEnd], time.Time{}); ok {
		t.ActualEndDate = &end
	}

	t.Progress = clampProgress(row[colProgress])
	t.Status = domain.StatusForProgress(t.Progress)
	return t
}

func parseFloat(cell string) float64 {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cell == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return f
}

func clampProgress(cell string) int {
	cell = strings.TrimSuffix(strings.TrimSpace(cell), "%")
	if cell == "" {
		return 0
	}
	p, err := strconv.Atoi(cell)
	if err != nil {
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func hasColumn(cols []int, want int) bool {
	for _, c := range cols {
		if c == want {
			return true
		}
	}
	return false
}
