package analysis

import (
	"sort"
	"time"
)

// CauseSummary is the total delay attributed to one cause within one update.
type CauseSummary struct {
	UpdateID   string `json:"update_id" yaml:"update_id"`
	Cause      string `json:"cause" yaml:"cause"`
	DelayDays  int    `json:"delay_days" yaml:"delay_days"`
	Activities int    `json:"activities" yaml:"activities"`
}

// SummarizeByCause sums delay days per non-blank cause within each update.
// Causes are sorted within an update; updates keep their input order.
func SummarizeByCause(updates []UpdateDelays) []CauseSummary {
	var out []CauseSummary
	for _, u := range updates {
		byCause := make(map[string]*CauseSummary)
		var causes []string
		for _, r := range u.Records {
			if r.DelayCause == "" {
				continue
			}
			s, ok := byCause[r.DelayCause]
			if !ok {
				s = &CauseSummary{UpdateID: u.UpdateID, Cause: r.DelayCause}
				byCause[r.DelayCause] = s
				causes = append(causes, r.DelayCause)
			}
			s.DelayDays += r.DelayDays
			s.Activities++
		}
		sort.Strings(causes)
		for _, c := range causes {
			out = append(out, *byCause[c])
		}
	}
	return out
}

// TimelineEntry pairs an activity's baseline planned finish with its actual
// finish in one update.
type TimelineEntry struct {
	UpdateID       string    `json:"update_id" yaml:"update_id"`
	ActivityID     string    `json:"activity_id" yaml:"activity_id"`
	ActivityName   string    `json:"activity_name" yaml:"activity_name"`
	BaselineFinish time.Time `json:"baseline_finish" yaml:"baseline_finish"`
	ActualFinish   time.Time `json:"actual_finish" yaml:"actual_finish"`
	DelayDays      int       `json:"delay_days" yaml:"delay_days"`
}

// Timeline flattens delay records into baseline/actual finish pairs.
func Timeline(updates []UpdateDelays) []TimelineEntry {
	var out []TimelineEntry
	for _, u := range updates {
		for _, r := range u.Records {
			out = append(out, TimelineEntry{
				UpdateID:       r.UpdateID,
				ActivityID:     r.ActivityID,
				ActivityName:   r.ActivityName,
				BaselineFinish: r.PlannedFinishBaseline,
				ActualFinish:   r.ActualFinishUpdate,
				DelayDays:      r.DelayDays,
			})
		}
	}
	return out
}
