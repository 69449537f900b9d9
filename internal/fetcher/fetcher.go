// Package fetcher downloads schedule files over HTTP or FTP and parses XLSX and CSV sources into tables.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// Table is a parsed sheet: a header row and data rows of typed cells.
// Cells hold string, float64, bool, time.Time, or nil.
type Table struct {
	Source string
	Header []string
	Rows   [][]any
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func newTable(source string, rows [][]any) *Table {
	t := &Table{Source: source}
	if len(rows) == 0 {
		return t
	}
	t.Header = make([]string, len(rows[0]))
	for i, v := range rows[0] {
		t.Header[i] = headerText(v)
	}
	t.Rows = rows[1:]
	return t
}

// headerText renders a header cell of any type as its column name.
func headerText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}
