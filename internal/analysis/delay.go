// Package analysis computes longest-path finish delays of each schedule update
// against the baseline and derives the cause summary and timeline views.
package analysis

import (
	"fmt"
	"time"

	"github.com/sells-group/delay-cli/internal/schedule"
)

// DelayRecord is one longest-path activity of one update joined to its baseline row.
type DelayRecord struct {
	UpdateID              string    `json:"update_id" yaml:"update_id"`
	ActivityID            string    `json:"activity_id" yaml:"activity_id"`
	ActivityName          string    `json:"activity_name" yaml:"activity_name"`
	DelayDays             int       `json:"delay_days" yaml:"delay_days"`
	PlannedFinishBaseline time.Time `json:"planned_finish_baseline" yaml:"planned_finish_baseline"`
	ActualFinishUpdate    time.Time `json:"actual_finish_update" yaml:"actual_finish_update"`
	TotalFloatUpdate      *float64  `json:"total_float_update" yaml:"total_float_update"`
	TotalFloatBaseline    *float64  `json:"total_float_baseline" yaml:"total_float_baseline"`
	DelayCause            string    `json:"delay_cause,omitempty" yaml:"delay_cause,omitempty"`
}

// UpdateDelays holds the delay records of one update, possibly empty.
type UpdateDelays struct {
	UpdateID string        `json:"update_id" yaml:"update_id"`
	Records  []DelayRecord `json:"records" yaml:"records"`
}

// Advisory is a non-fatal notice about the analysis. UpdateID is empty for
// dataset-level notices.
type Advisory struct {
	UpdateID string `json:"update_id,omitempty" yaml:"update_id,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

// WholeDaysBetween returns the whole days in a - b, rounded toward negative
// infinity so a partial day earlier than b counts as -1. It works on Unix
// seconds and stays exact for dates more than 292 years apart.
func WholeDaysBetween(a, b time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	secs := a.Unix() - b.Unix()
	if a.Nanosecond() < b.Nanosecond() {
		secs--
	}
	days := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		days--
	}
	return int(days)
}

// ComputeDelays joins each update's longest-path activities to the baseline
// on activity id and computes the finish delay of every pair with both dates.
// Updates keep the order in which their ids first appear. An update with no
// surviving pair yields an empty group and one advisory.
func ComputeDelays(ds *schedule.Dataset) ([]UpdateDelays, []Advisory) {
	baseline := make(map[string][]schedule.Activity)
	for _, b := range ds.Baseline() {
		baseline[b.ActivityID] = append(baseline[b.ActivityID], b)
	}

	groups := ds.Updates()
	out := make([]UpdateDelays, 0, len(groups))
	var advisories []Advisory

	for _, g := range groups {
		ud := UpdateDelays{UpdateID: g.UpdateID, Records: []DelayRecord{}}

		for _, u := range g.Activities {
			if !u.LongestPath {
				continue
			}
			for _, b := range baseline[u.ActivityID] {
				if !u.ActualFinish.Valid || !b.PlannedFinish.Valid {
					continue
				}
				ud.Records = append(ud.Records, DelayRecord{
					UpdateID:              g.UpdateID,
					ActivityID:            u.ActivityID,
					ActivityName:          u.ActivityName,
					DelayDays:             WholeDaysBetween(u.ActualFinish.Time, b.PlannedFinish.Time),
					PlannedFinishBaseline: b.PlannedFinish.Time,
					ActualFinishUpdate:    u.ActualFinish.Time,
					TotalFloatUpdate:      u.TotalFloat,
					TotalFloatBaseline:    b.TotalFloat,
					DelayCause:            u.DelayCause,
				})
			}
		}

		if len(ud.Records) == 0 {
			advisories = append(advisories, Advisory{
				UpdateID: g.UpdateID,
				Message:  fmt.Sprintf("no longest-path matches for update %s", g.UpdateID),
			})
		}
		out = append(out, ud)
	}

	return out, advisories
}
