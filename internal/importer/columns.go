package importer

import "strings"

// ExportHeader is the fixed column order written on export. Import accepts
// any column arrangement and resolves names through headerAliases.
var ExportHeader = []string{
	"Type",
	"Task Name",
	"Category",
	"Subcategory",
	"Sub-subcategory",
	"Plan Start",
	"Plan End",
	"Actual Start",
	"Actual End",
	"Progress",
	"Status",
	"Cost",
	"Quantity",
	"Responsible",
	"Color",
}

const (
	colType = iota
	colName
	colCategory
	colSubcategory
	colSubSubcategory
	colPlanStart
	colPlanEnd
	colActualStart
	colActualEnd
	colProgress
	colStatus
	colCost
	colQuantity
	colResponsible
	colColor
	colCount
)

// headerAliases maps recognized header spellings, lowercased and trimmed, to
// the canonical column index.
var headerAliases = map[string]int{
	"type":            colType,
	"kind":            colType,
	"task name":       colName,
	"task":            colName,
	"name":            colName,
	"category":        colCategory,
	"subcategory":     colSubcategory,
	"sub category":    colSubcategory,
	"sub-subcategory": colSubSubcategory,
	"subsubcategory":  colSubSubcategory,
	"plan start":      colPlanStart,
	"start":           colPlanStart,
	"start date":      colPlanStart,
	"plan end":        colPlanEnd,
	"end":             colPlanEnd,
	"end date":        colPlanEnd,
	"actual start":    colActualStart,
	"actual end":      colActualEnd,
	"progress":        colProgress,
	"progress %":      colProgress,
	"status":          colStatus,
	"cost":            colCost,
	"weight":          colCost,
	"quantity":        colQuantity,
	"qty":             colQuantity,
	"responsible":     colResponsible,
	"assignee":        colResponsible,
	"color":           colColor,
}

// resolveHeader maps each CSV header cell to a canonical column index, or -1
// for columns we do not recognize.
func resolveHeader(header []string) []int {
	out := make([]int, len(header))
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(stripBOM(cell)))
		if idx, ok := headerAliases[key]; ok {
			out[i] = idx
		} else {
			out[i] = -1
		}
	}
	return out
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
