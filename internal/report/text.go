package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/delay-cli/internal/analysis"
)

// WriteTable writes a human-readable report: one detail table per update,
// the cause summary when present, and any advisories.
func WriteTable(out io.Writer, res *analysis.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "Source:\t%s\n", res.Source)
	_, _ = fmt.Fprintf(w, "Activities:\t%d\n", res.Activities)
	_, _ = fmt.Fprintf(w, "Updates:\t%d\n", len(res.Updates))
	_, _ = fmt.Fprintf(w, "Delay records:\t%d\n", res.RecordCount())
	if res.SkippedRows > 0 {
		_, _ = fmt.Fprintf(w, "Skipped rows:\t%d\n", res.SkippedRows)
	}

	for _, u := range res.Updates {
		_, _ = fmt.Fprintf(w, "\n== Update %s ==\n", u.UpdateID)
		if len(u.Records) == 0 {
			_, _ = fmt.Fprintln(w, "(no longest-path matches)")
			continue
		}
		cols := detailHeader[1:]
		_, _ = fmt.Fprintln(w, strings.Join(cols, "\t"))
		_, _ = fmt.Fprintln(w, strings.Join(underline(cols), "\t"))
		for _, r := range u.Records {
			_, _ = fmt.Fprintln(w, strings.Join(detailFields(r)[1:], "\t"))
		}
	}

	if len(res.Summary) > 0 {
		_, _ = fmt.Fprintln(w, "\n== Delay by cause ==")
		_, _ = fmt.Fprintln(w, "UPDATE\tCAUSE\tDELAY_DAYS\tACTIVITIES")
		_, _ = fmt.Fprintln(w, "------\t-----\t----------\t----------")
		for _, s := range res.Summary {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", s.UpdateID, s.Cause, s.DelayDays, s.Activities)
		}
	}

	if len(res.Advisories) > 0 {
		_, _ = fmt.Fprintln(w, "\n== Advisories ==")
		for _, a := range res.Advisories {
			_, _ = fmt.Fprintf(w, "- %s\n", a.Message)
		}
	}

	return eris.Wrap(w.Flush(), "report: flush table")
}

func underline(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.Repeat("-", len(c))
	}
	return out
}

// WriteCSV writes every delay record as one flat table with a single header.
func WriteCSV(out io.Writer, res *analysis.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(detailHeader); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, r := range res.Records() {
		if err := w.Write(detailFields(r)); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "report: flush csv")
}
