package analysis

import (
	"time"

	"github.com/sells-group/delay-cli/internal/schedule"
)

func day(s string) schedule.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return schedule.NewDate(t)
}

func fl(f float64) *float64 { return &f }

func baselineRow(id, name, plannedFinish string, float float64) schedule.Activity {
	return schedule.Activity{
		UpdateID:      schedule.DefaultBaselineID,
		ActivityID:    id,
		ActivityName:  name,
		PlannedFinish: day(plannedFinish),
		LongestPath:   true,
		TotalFloat:    fl(float),
	}
}

func updateRow(update, id, name, actualFinish string, longest bool, float float64) schedule.Activity {
	a := schedule.Activity{
		UpdateID:     update,
		ActivityID:   id,
		ActivityName: name,
		LongestPath:  longest,
		TotalFloat:   fl(float),
	}
	if actualFinish != "" {
		a.ActualFinish = day(actualFinish)
	}
	return a
}

func dataset(rows ...schedule.Activity) *schedule.Dataset {
	return &schedule.Dataset{BaselineID: schedule.DefaultBaselineID, Activities: rows}
}
