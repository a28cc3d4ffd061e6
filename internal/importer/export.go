package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mfurukawa/girder/internal/domain"
)

// instructionRow is a documentation-only row written under the header. Its
// name cell is empty, so imports drop it through the empty-name rule.
var instructionRow = []string{
	"task or group",
	"",
	"e.g. Foundation",
	"e.g. Piling",
	"e.g. North block",
	"YYYY-MM-DD",
	"YYYY-MM-DD",
	"YYYY-MM-DD or blank",
	"YYYY-MM-DD or blank",
	"0-100",
	"derived from progress",
	"number",
	"number",
	"person",
	"hex or name",
}

// Export writes tasks as CSV in the fixed header order. Output starts with a
// UTF-8 BOM so spreadsheet tools pick the right encoding. Fields with quotes
// or commas are escaped by the writer (internal quotes doubled).
func Export(w io.Writer, tasks []*domain.Task) error {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.Write(instructionRow); err != nil {
		return fmt.Errorf("writing instruction row: %w", err)
	}
	for _, t := range tasks {
		if err := cw.Write(taskToRow(t)); err != nil {
			return fmt.Errorf("writing task %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func taskToRow(t *domain.Task) []string {
	row := make([]string, colCount)
	row[colType] = string(t.Type)
	row[colName] = t.Name
	row[colCategory] = t.Category
	row[colSubcategory] = t.Subcategory
	row[colSubSubcategory] = t.SubSubcategory
	row[colPlanStart] = t.PlanStartDate.Format("2006-01-02")
	row[colPlanEnd] = t.PlanEndDate.Format("2006-01-02")
	if t.ActualStartDate != nil {
		row[colActualStart] = t.ActualStartDate.Format("2006-01-02")
	}
	if t.ActualEndDate != nil {
		row[colActualEnd] = t.ActualEndDate.Format("2006-01-02")
	}
	row[colProgress] = strconv.Itoa(t.Progress)
	row[colStatus] = string(t.Status)
	row[colCost] = formatNumber(t.Cost)
	row[colQuantity] = formatNumber(t.Quantity)
	row[colResponsible] = t.Responsible
	row[colColor] = t.Color
	return row
}

func formatNumber(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
