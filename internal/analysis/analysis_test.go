package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/delay-cli/internal/fetcher"
	"github.com/sells-group/delay-cli/internal/schedule"
)

var header = []string{
	"Activity_ID", "Activity_Name", "Update_ID", "Planned_Start", "Planned_Finish",
	"Actual_Start", "Actual_Finish", "Longest_Path", "Total_Float", "Delay_Cause",
}

func datasetFromRows(t *testing.T, rows [][]any) *schedule.Dataset {
	t.Helper()
	ds, err := schedule.FromTable(&fetcher.Table{Header: header, Rows: rows}, schedule.Options{})
	require.NoError(t, err)
	return ds
}

func TestAnalyzeTable_Scenario(t *testing.T) {
	tbl := &fetcher.Table{
		Source: "schedule.xlsx",
		Header: header,
		Rows: [][]any{
			{"A1", "Foundations", "Baseline", "2024-01-01", "2024-01-10", nil, nil, "Yes", 0.0, nil},
			{"A2", "Steel", "Baseline", "2024-01-11", "2024-02-01", nil, nil, "Yes", 0.0, nil},
			{"A1", "Foundations", "U1", "2024-01-01", "2024-01-10", "2024-01-02", "2024-01-15", true, -5.0, "Weather"},
			{"A2", "Steel", "U1", "2024-01-11", "2024-02-01", "2024-01-16", "2024-02-03", "TRUE", -7.0, "Weather"},
			{"A2", "Steel", "U2", "2024-01-11", "2024-02-01", "2024-01-16", "2024-02-10", "No", -9.0, "Labor"},
			{"A1", "Foundations", "U3", nil, nil, nil, "2024-01-20", "yes", 0.0, "Design"},
			{"A1", "Foundations", "U3", nil, nil, nil, "2024-01-08", "Yes", 0.0, ""},
		},
	}

	res, err := AnalyzeTable(tbl, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "schedule.xlsx", res.Source)
	assert.True(t, res.HasDelayCause)
	assert.Equal(t, 7, res.Activities)
	require.Len(t, res.Updates, 3)

	u1 := res.Updates[0]
	assert.Equal(t, "U1", u1.UpdateID)
	require.Len(t, u1.Records, 2)
	assert.Equal(t, 5, u1.Records[0].DelayDays)
	assert.Equal(t, 2, u1.Records[1].DelayDays)

	u2 := res.Updates[1]
	assert.Equal(t, "U2", u2.UpdateID)
	assert.Empty(t, u2.Records)

	u3 := res.Updates[2]
	require.Len(t, u3.Records, 2)
	assert.Equal(t, 10, u3.Records[0].DelayDays)
	assert.Equal(t, -2, u3.Records[1].DelayDays)

	assert.Equal(t, []CauseSummary{
		{UpdateID: "U1", Cause: "Weather", DelayDays: 7, Activities: 2},
		{UpdateID: "U3", Cause: "Design", DelayDays: 10, Activities: 1},
	}, res.Summary)

	require.Len(t, res.Advisories, 1)
	assert.Equal(t, Advisory{UpdateID: "U2", Message: "no longest-path matches for update U2"}, res.Advisories[0])

	assert.Len(t, res.Timeline, 4)
	assert.Equal(t, 4, res.RecordCount())
	assert.Len(t, res.Records(), 4)
}

func TestAnalyzeTable_SchemaError(t *testing.T) {
	tbl := &fetcher.Table{
		Header: []string{
			"Activity_ID", "Activity_Name", "Update_ID", "Planned_Start", "Planned_Finish",
			"Actual_Start", "Actual_Finish", "Longest_Path",
		},
		Rows: [][]any{{"A1", "Foundations", "Baseline", nil, "2024-01-10", nil, nil, "Yes"}},
	}

	res, err := AnalyzeTable(tbl, DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, res)

	var se *schedule.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{"Total_Float"}, se.Missing)
}

func TestAnalyze_SummaryFeatureFlag(t *testing.T) {
	ds := datasetFromRows(t, [][]any{
		{"A1", "Foundations", "Baseline", nil, "2024-01-10", nil, nil, "Yes", 0.0, nil},
		{"A1", "Foundations", "U1", nil, nil, nil, "2024-01-15", "Yes", 0.0, "Weather"},
	})

	on := Analyze(ds, Options{SummarizeCauses: true})
	assert.Len(t, on.Summary, 1)

	off := Analyze(ds, Options{SummarizeCauses: false})
	assert.Nil(t, off.Summary)

	ds.HasDelayCause = false
	absent := Analyze(ds, Options{SummarizeCauses: true})
	assert.Nil(t, absent.Summary)
}

func TestAnalyze_NoDelaysAdvisory(t *testing.T) {
	ds := dataset(
		baselineRow("A1", "Foundations", "2024-01-10", 0),
		updateRow("U1", "A1", "Foundations", "2024-01-15", false, 0),
	)

	res := Analyze(ds, DefaultOptions())
	require.Len(t, res.Advisories, 2)
	assert.Equal(t, "U1", res.Advisories[0].UpdateID)
	assert.Equal(t, "", res.Advisories[1].UpdateID)
	assert.Equal(t, "no longest-path delays found in the provided data", res.Advisories[1].Message)
	assert.Equal(t, 0, res.RecordCount())
}

func TestAnalyze_NoUpdates(t *testing.T) {
	ds := dataset(baselineRow("A1", "Foundations", "2024-01-10", 0))

	res := Analyze(ds, DefaultOptions())
	assert.Empty(t, res.Updates)
	require.Len(t, res.Advisories, 1)
	assert.Equal(t, "no update snapshots found", res.Advisories[0].Message)
}

func TestAnalyze_Idempotent(t *testing.T) {
	ds := dataset(
		baselineRow("A1", "Foundations", "2024-01-10", 0),
		updateRow("U1", "A1", "Foundations", "2024-01-15", true, 0),
		updateRow("U2", "A1", "Foundations", "2024-01-19", true, 0),
	)

	assert.Equal(t, Analyze(ds, DefaultOptions()), Analyze(ds, DefaultOptions()))
}
