package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/delay-cli/internal/analysis"
	"github.com/sells-group/delay-cli/internal/config"
	"github.com/sells-group/delay-cli/internal/fetcher"
	"github.com/sells-group/delay-cli/internal/report"
	"github.com/sells-group/delay-cli/internal/schedule"
	"github.com/sells-group/delay-cli/internal/store"
)

// analyzeOptions are the per-invocation overrides of the analyze command.
type analyzeOptions struct {
	format     report.Format
	output     string
	sheet      string
	sheetIndex int // negative: use config
	baselineID string
	noCauses   bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <source>",
	Short: "Analyze a schedule file for longest-path delays",
	Long: "Reads an .xlsx or .csv schedule from a local path or an http(s)/ftp URL, " +
		"joins every update's longest-path activities to the baseline and reports the finish delays.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		o := analyzeOptions{format: format}
		o.output, _ = cmd.Flags().GetString("output")
		o.sheet, _ = cmd.Flags().GetString("sheet")
		o.sheetIndex, _ = cmd.Flags().GetInt("sheet-index")
		o.baselineID, _ = cmd.Flags().GetString("baseline-id")
		o.noCauses, _ = cmd.Flags().GetBool("no-causes")
		noRecord, _ := cmd.Flags().GetBool("no-record")

		var st store.Store = store.Nop{}
		if !noRecord {
			s, err := initStore(ctx, cfg)
			if err != nil {
				zap.L().Warn("run log unavailable, continuing without it", zap.Error(err))
			} else {
				st = s
			}
		}
		defer st.Close() //nolint:errcheck

		_, err = runAnalyze(ctx, cfg, st, args[0], o, cmd.OutOrStdout())
		var se *schedule.SchemaError
		if errors.As(err, &se) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Missing required columns: %s\n", strings.Join(se.Missing, ", "))
		}
		return err
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringP("format", "f", "table", "output format: table, csv, json, yaml, xlsx")
	f.StringP("output", "o", "", "write the report to this file instead of stdout (required for xlsx)")
	f.String("sheet", "", "worksheet name to read (default from config)")
	f.Int("sheet-index", -1, "worksheet index to read when no name is given (default from config)")
	f.String("baseline-id", "", "Update_Id value that marks the baseline (default from config)")
	f.Bool("no-causes", false, "skip the Delay_Cause summary")
	f.Bool("no-record", false, "do not record the run in the run log")
	rootCmd.AddCommand(analyzeCmd)
}

// loadOptions merges config with command overrides.
func loadOptions(c *config.Config, o analyzeOptions) fetcher.LoadOptions {
	xo := fetcher.XLSXOptions{SheetName: c.Input.SheetName, SheetIndex: c.Input.SheetIndex}
	if o.sheet != "" {
		xo.SheetName = o.sheet
	}
	if o.sheetIndex >= 0 {
		xo.SheetIndex = o.sheetIndex
		if o.sheet == "" {
			xo.SheetName = ""
		}
	}

	timeout := time.Duration(c.Input.HTTPTimeoutSecs) * time.Second
	return fetcher.LoadOptions{
		XLSX: xo,
		Fetchers: fetcher.DefaultFetchers(
			fetcher.HTTPOptions{UserAgent: c.Input.UserAgent, Timeout: timeout, MaxRetries: c.Input.HTTPRetries},
			fetcher.FTPOptions{Timeout: timeout},
		),
	}
}

// analysisOptions merges config with command overrides.
func analysisOptions(c *config.Config, o analyzeOptions) analysis.Options {
	opts := analysis.Options{BaselineID: c.Analysis.BaselineID, SummarizeCauses: c.Analysis.SummarizeCauses}
	if o.baselineID != "" {
		opts.BaselineID = o.baselineID
	}
	if o.noCauses {
		opts.SummarizeCauses = false
	}
	return opts
}

// runAnalyze loads source, analyzes it, records the run in st and writes the
// report to o.output or stdout.
func runAnalyze(ctx context.Context, c *config.Config, st store.Store, source string, o analyzeOptions, stdout io.Writer) (*analysis.Result, error) {
	if o.format == "" {
		o.format = report.FormatTable
	}
	if !o.format.Streams() && o.output == "" {
		return nil, eris.Errorf("analyze: --output is required for %s", o.format)
	}

	runID := ""
	if run, err := st.CreateRun(ctx, source); err != nil {
		zap.L().Warn("run log: create failed", zap.String("source", source), zap.Error(err))
	} else {
		runID = run.ID
	}
	fail := func(err error) {
		if runID == "" {
			return
		}
		if ferr := st.FailRun(ctx, runID, err.Error()); ferr != nil {
			zap.L().Warn("run log: fail failed", zap.String("run_id", runID), zap.Error(ferr))
		}
	}

	start := time.Now()
	tbl, err := fetcher.Load(ctx, source, loadOptions(c, o))
	if err != nil {
		fail(err)
		return nil, eris.Wrapf(err, "analyze: load %s", source)
	}

	res, err := analysis.AnalyzeTable(tbl, analysisOptions(c, o))
	if err != nil {
		fail(err)
		return nil, err
	}

	if runID != "" {
		summary := store.RunSummary{Updates: len(res.Updates), Records: res.RecordCount(), Advisories: len(res.Advisories)}
		if err := st.CompleteRun(ctx, runID, summary); err != nil {
			zap.L().Warn("run log: complete failed", zap.String("run_id", runID), zap.Error(err))
		}
	}

	zap.L().Info("analysis complete",
		zap.String("source", source),
		zap.String("run_id", runID),
		zap.Int("updates", len(res.Updates)),
		zap.Int("records", res.RecordCount()),
		zap.Int("advisories", len(res.Advisories)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := writeReport(stdout, o, res); err != nil {
		return res, err
	}
	return res, nil
}

func writeReport(stdout io.Writer, o analyzeOptions, res *analysis.Result) error {
	if o.format == report.FormatXLSX {
		return report.WriteXLSX(o.output, res)
	}
	if o.output == "" {
		return report.Write(stdout, o.format, res)
	}

	f, err := os.Create(o.output)
	if err != nil {
		return eris.Wrapf(err, "analyze: create %s", o.output)
	}
	if err := report.Write(f, o.format, res); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "analyze: close %s", o.output)
}
