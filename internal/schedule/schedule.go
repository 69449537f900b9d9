// Package schedule holds the typed activity model built from an uploaded schedule
// table: header normalization, schema validation, and cell coercion.
package schedule

import "time"

// DefaultBaselineID marks the baseline snapshot in the Update_Id column.
const DefaultBaselineID = "Baseline"

// Date is a calendar date that may be missing.
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate returns a valid Date.
func NewDate(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

// String formats the date as YYYY-MM-DD, or "" when missing.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// Activity is one row of the schedule: one activity in one snapshot.
type Activity struct {
	Row           int
	UpdateID      string
	ActivityID    string
	ActivityName  string
	PlannedStart  Date
	PlannedFinish Date
	ActualStart   Date
	ActualFinish  Date
	LongestPath   bool
	TotalFloat    *float64
	DelayCause    string
}

// UpdateGroup is the set of activities sharing one non-baseline Update_Id.
type UpdateGroup struct {
	UpdateID   string
	Activities []Activity
}

// Dataset is the ordered list of activities from one input file.
type Dataset struct {
	Source        string
	BaselineID    string
	Activities    []Activity
	HasDelayCause bool
	// Skipped counts non-blank rows with no Update_Id.
	Skipped int
}

func (d *Dataset) baselineID() string {
	if d.BaselineID == "" {
		return DefaultBaselineID
	}
	return d.BaselineID
}

// IsBaseline reports whether the activity belongs to the baseline snapshot.
func (d *Dataset) IsBaseline(a Activity) bool {
	return a.UpdateID == d.baselineID()
}

// Baseline returns the baseline partition in input order.
func (d *Dataset) Baseline() []Activity {
	var out []Activity
	for _, a := range d.Activities {
		if d.IsBaseline(a) {
			out = append(out, a)
		}
	}
	return out
}

// Updates returns the non-baseline activities grouped by Update_Id, in the
// order each Update_Id first appears.
func (d *Dataset) Updates() []UpdateGroup {
	var groups []UpdateGroup
	index := make(map[string]int)
	for _, a := range d.Activities {
		if d.IsBaseline(a) {
			continue
		}
		i, ok := index[a.UpdateID]
		if !ok {
			i = len(groups)
			index[a.UpdateID] = i
			groups = append(groups, UpdateGroup{UpdateID: a.UpdateID})
		}
		groups[i].Activities = append(groups[i].Activities, a)
	}
	return groups
}
