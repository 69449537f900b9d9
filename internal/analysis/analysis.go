package analysis

import (
	"go.uber.org/zap"

	"github.com/sells-group/delay-cli/internal/fetcher"
	"github.com/sells-group/delay-cli/internal/schedule"
)

// Options configures Analyze.
type Options struct {
	BaselineID string
	// SummarizeCauses enables the cause summary when the input has a Delay_Cause column.
	SummarizeCauses bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{BaselineID: schedule.DefaultBaselineID, SummarizeCauses: true}
}

// Result is everything derived from one dataset.
type Result struct {
	Source        string          `json:"source" yaml:"source"`
	Updates       []UpdateDelays  `json:"updates" yaml:"updates"`
	Summary       []CauseSummary  `json:"summary,omitempty" yaml:"summary,omitempty"`
	Timeline      []TimelineEntry `json:"timeline" yaml:"timeline"`
	Advisories    []Advisory      `json:"advisories" yaml:"advisories"`
	HasDelayCause bool            `json:"has_delay_cause" yaml:"has_delay_cause"`
	Activities    int             `json:"activities" yaml:"activities"`
	SkippedRows   int             `json:"skipped_rows" yaml:"skipped_rows"`
}

// Records returns every delay record across updates, in update order.
func (r *Result) Records() []DelayRecord {
	var out []DelayRecord
	for _, u := range r.Updates {
		out = append(out, u.Records...)
	}
	return out
}

// RecordCount returns the number of delay records across updates.
func (r *Result) RecordCount() int {
	n := 0
	for _, u := range r.Updates {
		n += len(u.Records)
	}
	return n
}

// Analyze runs the delay computation and the derived views over ds.
// It has no side effects beyond logging advisories.
func Analyze(ds *schedule.Dataset, opts Options) *Result {
	updates, advisories := ComputeDelays(ds)

	res := &Result{
		Source:        ds.Source,
		Updates:       updates,
		Timeline:      Timeline(updates),
		Advisories:    advisories,
		HasDelayCause: ds.HasDelayCause,
		Activities:    len(ds.Activities),
		SkippedRows:   ds.Skipped,
	}
	if res.Advisories == nil {
		res.Advisories = []Advisory{}
	}
	if opts.SummarizeCauses && ds.HasDelayCause {
		res.Summary = SummarizeByCause(updates)
	}

	switch {
	case len(updates) == 0:
		res.Advisories = append(res.Advisories, Advisory{Message: "no update snapshots found"})
	case res.RecordCount() == 0:
		res.Advisories = append(res.Advisories, Advisory{Message: "no longest-path delays found in the provided data"})
	}

	for _, a := range res.Advisories {
		zap.L().Warn("analysis advisory",
			zap.String("source", res.Source),
			zap.String("update_id", a.UpdateID),
			zap.String("message", a.Message),
		)
	}

	return res
}

// AnalyzeTable builds a dataset from t and analyzes it. A *schedule.SchemaError
// is returned unwrapped when required columns are missing.
func AnalyzeTable(t *fetcher.Table, opts Options) (*Result, error) {
	ds, err := schedule.FromTable(t, schedule.Options{BaselineID: opts.BaselineID})
	if err != nil {
		return nil, err
	}
	return Analyze(ds, opts), nil
}
