package report

import (
	"sort"
	"time"

	"github.com/sells-group/delay-cli/internal/analysis"
)

// Chart geometry, in SVG user units.
const (
	chartWidth   = 720.0
	chartHeight  = 320.0
	chartPadding = 48.0
	barGap       = 0.3
	timelineRow  = 22.0
	totalLabel   = "Total delay"
)

var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Segment is one stacked block of a bar.
type Segment struct {
	Label  string
	Days   int
	X, Y   float64
	Width  float64
	Height float64
	Color  string
}

// Bar is the stacked delay of one update.
type Bar struct {
	UpdateID string
	Total    int
	LabelX   float64
	Segments []Segment
}

// LegendEntry maps a cause to its color.
type LegendEntry struct {
	Label string
	Color string
}

// BarChart is a stacked bar chart of delay days per update. Positive delays
// stack above the zero line and negative ones below it.
type BarChart struct {
	Width, Height float64
	ZeroY         float64
	Bars          []Bar
	Legend        []LegendEntry
}

// NewBarChart builds the chart from the cause summary, or from the total delay
// per update when the result has no summary.
func NewBarChart(res *analysis.Result) *BarChart {
	type part struct {
		label string
		days  int
	}
	var order []string
	parts := make(map[string][]part)

	if len(res.Summary) > 0 {
		for _, s := range res.Summary {
			if _, ok := parts[s.UpdateID]; !ok {
				order = append(order, s.UpdateID)
			}
			parts[s.UpdateID] = append(parts[s.UpdateID], part{s.Cause, s.DelayDays})
		}
	} else {
		for _, u := range res.Updates {
			if len(u.Records) == 0 {
				continue
			}
			total := 0
			for _, r := range u.Records {
				total += r.DelayDays
			}
			order = append(order, u.UpdateID)
			parts[u.UpdateID] = []part{{totalLabel, total}}
		}
	}
	if len(order) == 0 {
		return nil
	}

	colors := make(map[string]string)
	var labels []string
	maxPos, maxNeg := 0, 0
	for _, id := range order {
		pos, neg := 0, 0
		for _, p := range parts[id] {
			if _, ok := colors[p.label]; !ok {
				colors[p.label] = ""
				labels = append(labels, p.label)
			}
			if p.days > 0 {
				pos += p.days
			} else {
				neg -= p.days
			}
		}
		maxPos = max(maxPos, pos)
		maxNeg = max(maxNeg, neg)
	}
	sort.Strings(labels)
	c := &BarChart{Width: chartWidth, Height: chartHeight}
	for i, l := range labels {
		colors[l] = palette[i%len(palette)]
		c.Legend = append(c.Legend, LegendEntry{Label: l, Color: colors[l]})
	}

	plotH := chartHeight - 2*chartPadding
	span := float64(maxPos + maxNeg)
	if span == 0 {
		span = 1
	}
	scale := plotH / span
	c.ZeroY = chartPadding + float64(maxPos)*scale

	slot := (chartWidth - 2*chartPadding) / float64(len(order))
	barW := slot * (1 - barGap)

	for i, id := range order {
		x := chartPadding + float64(i)*slot + (slot-barW)/2
		bar := Bar{UpdateID: id, LabelX: x + barW/2}
		up, down := c.ZeroY, c.ZeroY
		for _, p := range parts[id] {
			bar.Total += p.days
			h := float64(abs(p.days)) * scale
			seg := Segment{Label: p.label, Days: p.days, X: x, Width: barW, Height: h, Color: colors[p.label]}
			if p.days >= 0 {
				up -= h
				seg.Y = up
			} else {
				seg.Y = down
				down += h
			}
			bar.Segments = append(bar.Segments, seg)
		}
		c.Bars = append(c.Bars, bar)
	}
	return c
}

// TimelineMark is one activity's baseline and actual finish on the timeline.
type TimelineMark struct {
	Label     string
	DelayDays int
	Y         float64
	BaselineX float64
	ActualX   float64
	Late      bool
}

// TimelineChart plots baseline planned finish against actual finish for every
// delay record.
type TimelineChart struct {
	Width, Height float64
	LabelWidth    float64
	Start, End    string
	Marks         []TimelineMark
}

// NewTimelineChart lays out res.Timeline on a shared date axis.
func NewTimelineChart(res *analysis.Result) *TimelineChart {
	if len(res.Timeline) == 0 {
		return nil
	}

	lo, hi := res.Timeline[0].BaselineFinish, res.Timeline[0].BaselineFinish
	for _, e := range res.Timeline {
		for _, t := range []time.Time{e.BaselineFinish, e.ActualFinish} {
			if t.Before(lo) {
				lo = t
			}
			if t.After(hi) {
				hi = t
			}
		}
	}

	const labelW = 200.0
	c := &TimelineChart{
		Width:      chartWidth,
		Height:     2*chartPadding + float64(len(res.Timeline))*timelineRow,
		LabelWidth: labelW,
		Start:      formatDate(lo),
		End:        formatDate(hi),
	}

	plotX := labelW
	plotW := chartWidth - labelW - chartPadding
	span := float64(hi.Unix() - lo.Unix())
	pos := func(t time.Time) float64 {
		if span == 0 {
			return plotX + plotW/2
		}
		return plotX + float64(t.Unix()-lo.Unix())/span*plotW
	}

	for i, e := range res.Timeline {
		c.Marks = append(c.Marks, TimelineMark{
			Label:     e.UpdateID + " / " + e.ActivityID,
			DelayDays: e.DelayDays,
			Y:         chartPadding + float64(i)*timelineRow + timelineRow/2,
			BaselineX: pos(e.BaselineFinish),
			ActualX:   pos(e.ActualFinish),
			Late:      e.DelayDays > 0,
		})
	}
	return c
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
