package report

import (
	"embed"
	"html/template"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/delay-cli/internal/analysis"
)

// IdlePrompt is shown before any file has been uploaded.
const IdlePrompt = "Please upload an Excel file to analyze."

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"date":  formatDate,
	"float": formatFloat,
}).ParseFS(templateFS, "templates/page.html"))

// Page is the data behind the upload page. With no Result, no Missing and no
// Error the page shows the idle prompt.
type Page struct {
	Title       string
	MaxUploadMB int
	Filename    string
	Result      *analysis.Result
	// Missing lists required columns absent from the upload.
	Missing []string
	Error   string
}

// Idle reports whether the page has nothing to show but the form.
func (p Page) Idle() bool {
	return p.Result == nil && len(p.Missing) == 0 && p.Error == ""
}

// IdlePrompt returns the idle message.
func (p Page) IdlePrompt() string { return IdlePrompt }

// BarChart returns the stacked bar chart, or nil when there is nothing to plot.
func (p Page) BarChart() *BarChart {
	if p.Result == nil {
		return nil
	}
	return NewBarChart(p.Result)
}

// TimelineChart returns the finish timeline, or nil when there is nothing to plot.
func (p Page) TimelineChart() *TimelineChart {
	if p.Result == nil {
		return nil
	}
	return NewTimelineChart(p.Result)
}

// RenderPage writes the HTML page.
func RenderPage(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Longest Path Delay Analysis"
	}
	return eris.Wrap(pageTemplate.Execute(w, p), "report: render page")
}
