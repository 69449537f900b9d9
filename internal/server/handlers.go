package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/delay-cli/internal/analysis"
	"github.com/sells-group/delay-cli/internal/fetcher"
	"github.com/sells-group/delay-cli/internal/report"
	"github.com/sells-group/delay-cli/internal/schedule"
	"github.com/sells-group/delay-cli/internal/store"
)

const maxListLimit = 1000

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, p report.Page) {
	p.MaxUploadMB = s.cfg.MaxUploadMB
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := report.RenderPage(w, p); err != nil {
		zap.L().Error("render page failed", zap.Error(err))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, report.Page{})
}

// upload is the outcome of one analysis request.
type upload struct {
	filename string
	runID    string
	result   *analysis.Result
	err      error
}

// status maps the upload error to an HTTP status.
func (u upload) status() int {
	var se *schedule.SchemaError
	switch {
	case u.err == nil:
		return http.StatusOK
	case errors.As(u.err, &se):
		return http.StatusUnprocessableEntity
	default:
		var mbe *http.MaxBytesError
		if errors.As(u.err, &mbe) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	}
}

func (u upload) missing() []string {
	var se *schedule.SchemaError
	if errors.As(u.err, &se) {
		return se.Missing
	}
	return nil
}

// analyze reads the multipart "file" field, runs the analysis and records
// the run. Run log failures are logged and otherwise ignored.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) upload {
	start := time.Now()
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var u upload
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		u.err = eris.Wrap(err, "server: parse upload")
		s.metrics.observe(outcomeBadInput, 0, 0, time.Since(start))
		return u
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		u.err = eris.Wrap(err, "server: missing file field")
		s.metrics.observe(outcomeBadInput, 0, 0, time.Since(start))
		return u
	}
	defer file.Close() //nolint:errcheck
	u.filename = header.Filename

	ctx := r.Context()
	u.runID = s.startRun(ctx, u.filename)

	opts := s.cfg.Load
	if sheet := strings.TrimSpace(r.FormValue("sheet")); sheet != "" {
		opts.XLSX.SheetName = sheet
	}
	aopts := s.cfg.Analysis
	if b := strings.TrimSpace(r.FormValue("baseline_id")); b != "" {
		aopts.BaselineID = b
	}

	tbl, err := fetcher.ReadUpload(ctx, u.filename, file, opts)
	if err == nil {
		u.result, err = analysis.AnalyzeTable(tbl, aopts)
	}
	if err != nil {
		u.err = err
		outcome := outcomeBadInput
		if u.status() == http.StatusUnprocessableEntity {
			outcome = outcomeSchemaError
		}
		s.metrics.observe(outcome, 0, 0, time.Since(start))
		s.failRun(ctx, u.runID, err)
		return u
	}

	s.metrics.observe(outcomeOK, u.result.RecordCount(), len(u.result.Advisories), time.Since(start))
	s.completeRun(ctx, u.runID, u.result)
	zap.L().Info("upload analyzed",
		zap.String("file", u.filename),
		zap.String("run_id", u.runID),
		zap.Int("updates", len(u.result.Updates)),
		zap.Int("records", u.result.RecordCount()),
	)
	return u
}

func (s *Server) startRun(ctx context.Context, source string) string {
	run, err := s.store.CreateRun(ctx, source)
	if err != nil {
		zap.L().Warn("run log: create failed", zap.String("source", source), zap.Error(err))
		return ""
	}
	return run.ID
}

func (s *Server) completeRun(ctx context.Context, runID string, res *analysis.Result) {
	if runID == "" {
		return
	}
	err := s.store.CompleteRun(ctx, runID, store.RunSummary{
		Updates:    len(res.Updates),
		Records:    res.RecordCount(),
		Advisories: len(res.Advisories),
	})
	if err != nil {
		zap.L().Warn("run log: complete failed", zap.String("run_id", runID), zap.Error(err))
	}
}

func (s *Server) failRun(ctx context.Context, runID string, cause error) {
	if runID == "" {
		return
	}
	if err := s.store.FailRun(ctx, runID, cause.Error()); err != nil {
		zap.L().Warn("run log: fail failed", zap.String("run_id", runID), zap.Error(err))
	}
}

func (s *Server) handleAnalyzePage(w http.ResponseWriter, r *http.Request) {
	u := s.analyze(w, r)
	page := report.Page{Filename: u.filename, Result: u.result}
	if u.err != nil {
		page.Missing = u.missing()
		if page.Missing == nil {
			page.Error = u.err.Error()
		}
	}
	s.renderPage(w, u.status(), page)
}

func (s *Server) handleAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	u := s.analyze(w, r)
	if u.runID != "" {
		w.Header().Set("X-Run-Id", u.runID)
	}
	if u.err != nil {
		body := map[string]any{"error": u.err.Error()}
		if m := u.missing(); m != nil {
			body["missing"] = m
		}
		writeJSON(w, u.status(), body)
		return
	}
	writeJSON(w, http.StatusOK, u.result)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		Status: store.RunStatus(r.URL.Query().Get("status")),
		Source: r.URL.Query().Get("source"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxListLimit {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be between 1 and 1000"})
			return
		}
		filter.Limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("list runs failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list runs failed"})
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if store.IsNotFound(err) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		zap.L().Error("get run failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get run failed"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}
