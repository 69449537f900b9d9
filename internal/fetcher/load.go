package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Kind identifies a tabular file format.
type Kind string

const (
	KindXLSX Kind = "xlsx"
	KindCSV  Kind = "csv"
)

// KindFromName infers the file format from a file name or URL path extension.
func KindFromName(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return KindXLSX, nil
	case ".csv":
		return KindCSV, nil
	default:
		return "", eris.Errorf("unsupported file type %q (expected .xlsx or .csv)", filepath.Ext(name))
	}
}

// LoadOptions configures Load.
type LoadOptions struct {
	XLSX XLSXOptions
	CSV  CSVOptions

	// Fetchers maps a URL scheme (http, https, ftp) to its downloader.
	// Missing schemes fall back to DefaultFetchers.
	Fetchers map[string]Fetcher
}

// DefaultFetchers returns downloaders for http, https, and ftp.
func DefaultFetchers(httpOpts HTTPOptions, ftpOpts FTPOptions) map[string]Fetcher {
	h := NewHTTPFetcher(httpOpts)
	return map[string]Fetcher{
		"http":  h,
		"https": h,
		"ftp":   NewFTPFetcher(ftpOpts),
	}
}

// Load reads a schedule table from a local path or an http(s)/ftp URL.
// Remote files are downloaded to a temporary file that is removed afterwards.
func Load(ctx context.Context, source string, opts LoadOptions) (*Table, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 { // single letter: windows drive
		kind, err := KindFromName(source)
		if err != nil {
			return nil, err
		}
		return ReadFile(ctx, source, kind, opts)
	}

	kind, err := KindFromName(path.Base(u.Path))
	if err != nil {
		return nil, err
	}

	fetchers := opts.Fetchers
	if fetchers == nil {
		fetchers = DefaultFetchers(HTTPOptions{}, FTPOptions{})
	}
	f, ok := fetchers[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, eris.Errorf("unsupported source scheme %q", u.Scheme)
	}

	tmp, err := os.CreateTemp("", "delay-source-*."+string(kind))
	if err != nil {
		return nil, eris.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath) //nolint:errcheck

	n, err := f.DownloadToFile(ctx, source, tmpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch %s", source)
	}
	zap.L().Debug("downloaded schedule source", zap.String("source", source), zap.Int64("bytes", n))

	t, err := ReadFile(ctx, tmpPath, kind, opts)
	if err != nil {
		return nil, err
	}
	t.Source = source
	return t, nil
}

// ReadFile parses a local file of the given kind.
func ReadFile(ctx context.Context, filePath string, kind Kind, opts LoadOptions) (*Table, error) {
	switch kind {
	case KindXLSX:
		return ReadXLSX(filePath, opts.XLSX)
	case KindCSV:
		f, err := os.Open(filePath)
		if err != nil {
			return nil, eris.Wrap(err, "csv: open file")
		}
		defer f.Close() //nolint:errcheck

		t, err := ReadCSV(ctx, f, opts.CSV)
		if err != nil {
			return nil, err
		}
		t.Source = filePath
		return t, nil
	default:
		return nil, eris.Errorf("unsupported file kind %q", kind)
	}
}

// ReadUpload spools an uploaded file to a temporary file and parses it. The
// format is taken from name, which also becomes the table source.
func ReadUpload(ctx context.Context, name string, r io.Reader, opts LoadOptions) (*Table, error) {
	kind, err := KindFromName(name)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "delay-upload-*."+string(kind))
	if err != nil {
		return nil, eris.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return nil, eris.Wrap(err, "spool upload")
	}
	if err := tmp.Close(); err != nil {
		return nil, eris.Wrap(err, "close upload")
	}

	t, err := ReadFile(ctx, tmpPath, kind, opts)
	if err != nil {
		return nil, err
	}
	t.Source = name
	return t, nil
}
