package schedule

import (
	"github.com/sells-group/delay-cli/internal/fetcher"
)

// Options configures FromTable.
type Options struct {
	// BaselineID overrides DefaultBaselineID.
	BaselineID string
}

// FromTable validates the table header and coerces every row into an
// Activity. A *SchemaError is returned, unwrapped, when required columns
// are missing; no rows are read in that case.
func FromTable(t *fetcher.Table, opts Options) (*Dataset, error) {
	idx := indexHeader(t.Header)
	if err := idx.validate(); err != nil {
		return nil, err
	}

	ds := &Dataset{
		Source:        t.Source,
		BaselineID:    opts.BaselineID,
		HasDelayCause: idx.has(ColDelayCause),
	}
	if ds.BaselineID == "" {
		ds.BaselineID = DefaultBaselineID
	}

	for i, row := range t.Rows {
		if blankRow(row) {
			continue
		}
		a := Activity{
			Row:           i + 2, // 1-based, after the header
			UpdateID:      ParseText(idx.cell(row, ColUpdateID)),
			ActivityID:    ParseText(idx.cell(row, ColActivityID)),
			ActivityName:  ParseText(idx.cell(row, ColActivityName)),
			PlannedStart:  ParseDate(idx.cell(row, ColPlannedStart)),
			PlannedFinish: ParseDate(idx.cell(row, ColPlannedFinish)),
			ActualStart:   ParseDate(idx.cell(row, ColActualStart)),
			ActualFinish:  ParseDate(idx.cell(row, ColActualFinish)),
			LongestPath:   ParseFlag(idx.cell(row, ColLongestPath)),
			TotalFloat:    ParseFloat(idx.cell(row, ColTotalFloat)),
			DelayCause:    ParseText(idx.cell(row, ColDelayCause)),
		}
		if a.UpdateID == "" {
			ds.Skipped++
			continue
		}
		ds.Activities = append(ds.Activities, a)
	}

	return ds, nil
}

func blankRow(row []any) bool {
	for _, v := range row {
		if ParseText(v) != "" {
			return false
		}
	}
	return true
}
