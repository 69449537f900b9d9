package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/delay-cli/internal/analysis"
)

// Sheet names used by WriteXLSX.
const (
	SheetDelays     = "Delays"
	SheetSummary    = "Summary"
	SheetAdvisories = "Advisories"
)

// WriteXLSX saves the result as a workbook at path. The Summary sheet is only
// written when the result carries a cause summary.
func WriteXLSX(path string, res *analysis.Result) error {
	f := xlsx.NewFile()

	delays, err := f.AddSheet(SheetDelays)
	if err != nil {
		return eris.Wrap(err, "report: add delays sheet")
	}
	addHeader(delays, detailHeader)
	for _, r := range res.Records() {
		row := delays.AddRow()
		row.AddCell().SetString(r.UpdateID)
		row.AddCell().SetString(r.ActivityID)
		row.AddCell().SetString(r.ActivityName)
		row.AddCell().SetInt(r.DelayDays)
		row.AddCell().SetDate(r.PlannedFinishBaseline)
		row.AddCell().SetDate(r.ActualFinishUpdate)
		addFloat(row, r.TotalFloatUpdate)
		addFloat(row, r.TotalFloatBaseline)
		row.AddCell().SetString(r.DelayCause)
	}

	if len(res.Summary) > 0 {
		summary, err := f.AddSheet(SheetSummary)
		if err != nil {
			return eris.Wrap(err, "report: add summary sheet")
		}
		addHeader(summary, []string{"Update_Id", "Delay_Cause", "Delay_Days", "Activities"})
		for _, s := range res.Summary {
			row := summary.AddRow()
			row.AddCell().SetString(s.UpdateID)
			row.AddCell().SetString(s.Cause)
			row.AddCell().SetInt(s.DelayDays)
			row.AddCell().SetInt(s.Activities)
		}
	}

	advisories, err := f.AddSheet(SheetAdvisories)
	if err != nil {
		return eris.Wrap(err, "report: add advisories sheet")
	}
	addHeader(advisories, []string{"Update_Id", "Message"})
	for _, a := range res.Advisories {
		row := advisories.AddRow()
		row.AddCell().SetString(a.UpdateID)
		row.AddCell().SetString(a.Message)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, cols []string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().SetString(c)
	}
}

func addFloat(row *xlsx.Row, f *float64) {
	cell := row.AddCell()
	if f != nil {
		cell.SetFloat(*f)
	}
}
