package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeByCause(t *testing.T) {
	updates := []UpdateDelays{
		{UpdateID: "U2", Records: []DelayRecord{
			{UpdateID: "U2", DelayDays: 4, DelayCause: "Weather"},
			{UpdateID: "U2", DelayDays: -1, DelayCause: "Design"},
			{UpdateID: "U2", DelayDays: 6, DelayCause: "Weather"},
			{UpdateID: "U2", DelayDays: 9, DelayCause: ""},
		}},
		{UpdateID: "U1", Records: []DelayRecord{
			{UpdateID: "U1", DelayDays: 3, DelayCause: "Labor"},
		}},
		{UpdateID: "U3", Records: []DelayRecord{}},
	}

	got := SummarizeByCause(updates)
	assert.Equal(t, []CauseSummary{
		{UpdateID: "U2", Cause: "Design", DelayDays: -1, Activities: 1},
		{UpdateID: "U2", Cause: "Weather", DelayDays: 10, Activities: 2},
		{UpdateID: "U1", Cause: "Labor", DelayDays: 3, Activities: 1},
	}, got)
}

func TestSummarizeByCause_Empty(t *testing.T) {
	assert.Empty(t, SummarizeByCause(nil))
}

func TestTimeline(t *testing.T) {
	updates := []UpdateDelays{
		{UpdateID: "U1", Records: []DelayRecord{{
			UpdateID:              "U1",
			ActivityID:            "A1",
			ActivityName:          "Foundations",
			DelayDays:             5,
			PlannedFinishBaseline: day("2024-01-10").Time,
			ActualFinishUpdate:    day("2024-01-15").Time,
		}}},
		{UpdateID: "U2", Records: []DelayRecord{}},
	}

	tl := Timeline(updates)
	require.Len(t, tl, 1)
	assert.Equal(t, TimelineEntry{
		UpdateID:       "U1",
		ActivityID:     "A1",
		ActivityName:   "Foundations",
		BaselineFinish: day("2024-01-10").Time,
		ActualFinish:   day("2024-01-15").Time,
		DelayDays:      5,
	}, tl[0])
}
