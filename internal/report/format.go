// Package report renders analysis results as terminal tables, CSV, JSON,
// YAML, Excel workbooks, and the HTML page served by the upload server.
package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/delay-cli/internal/analysis"
)

// Format is an output format name.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatCSV, FormatJSON, FormatYAML, FormatXLSX:
		return f, nil
	case "":
		return FormatTable, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("report: unknown format %q (expected table, csv, json, yaml or xlsx)", s)
	}
}

// Streams reports whether the format can be written to an io.Writer.
func (f Format) Streams() bool {
	return f != FormatXLSX
}

// Write renders res to w in a streaming format.
func Write(w io.Writer, f Format, res *analysis.Result) error {
	switch f {
	case FormatTable:
		return WriteTable(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatYAML:
		return WriteYAML(w, res)
	default:
		return eris.Errorf("report: format %q needs an output file", f)
	}
}

// detailHeader is the column order shared by the table, CSV and workbook writers.
var detailHeader = []string{
	"Update_Id", "Activity_Id", "Activity_Name", "Delay_Days",
	"Planned_Finish_Baseline", "Actual_Finish_Update",
	"Total_Float_Update", "Total_Float_Baseline", "Delay_Cause",
}

func detailFields(r analysis.DelayRecord) []string {
	return []string{
		r.UpdateID,
		r.ActivityID,
		r.ActivityName,
		strconv.Itoa(r.DelayDays),
		formatDate(r.PlannedFinishBaseline),
		formatDate(r.ActualFinishUpdate),
		formatFloat(r.TotalFloatUpdate),
		formatFloat(r.TotalFloatBaseline),
		r.DelayCause,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
