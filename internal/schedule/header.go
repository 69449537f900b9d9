package schedule

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical column names after NormalizeHeader.
const (
	ColActivityID    = "Activity_Id"
	ColActivityName  = "Activity_Name"
	ColUpdateID      = "Update_Id"
	ColPlannedStart  = "Planned_Start"
	ColPlannedFinish = "Planned_Finish"
	ColActualStart   = "Actual_Start"
	ColActualFinish  = "Actual_Finish"
	ColLongestPath   = "Longest_Path"
	ColTotalFloat    = "Total_Float"
	ColDelayCause    = "Delay_Cause"
)

// RequiredColumns lists the columns every schedule file must carry, in report order.
var RequiredColumns = []string{
	ColActivityID,
	ColActivityName,
	ColUpdateID,
	ColPlannedStart,
	ColPlannedFinish,
	ColActualStart,
	ColActualFinish,
	ColLongestPath,
	ColTotalFloat,
}

// NormalizeHeader trims a header, joins whitespace-separated words with
// underscores, and title-cases every underscore-separated part:
// " update  ID" and "UPDATE_ID" both become "Update_Id".
func NormalizeHeader(h string) string {
	words := strings.Fields(h)
	if len(words) == 0 {
		return ""
	}
	caser := cases.Title(language.Und)
	parts := strings.Split(strings.Join(words, "_"), "_")
	for i, p := range parts {
		parts[i] = caser.String(p)
	}
	return strings.Join(parts, "_")
}

// SchemaError reports required columns missing from the input.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schedule: missing required columns: %s", strings.Join(e.Missing, ", "))
}

// columnIndex maps normalized header names to their first position.
type columnIndex map[string]int

func indexHeader(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		name := NormalizeHeader(h)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

// validate returns a SchemaError naming every absent required column.
func (idx columnIndex) validate() error {
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

func (idx columnIndex) has(col string) bool {
	_, ok := idx[col]
	return ok
}

// cell returns the row value for col, or nil when the column or cell is absent.
func (idx columnIndex) cell(row []any, col string) any {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}
