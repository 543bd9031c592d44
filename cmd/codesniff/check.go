package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"codesniff/internal/diag"
	"codesniff/internal/diagfmt"
	"codesniff/internal/driver"
	"codesniff/internal/source"
	"codesniff/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file|directory]...",
	Short: "Report sniff violations",
	Long:  `Check tokenizes every target file, runs the configured sniffs and reports violations. Directories are walked for files with the configured extensions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSniffs(cmd, args, driver.ModeCheck)
	},
}

func init() {
	addRunFlags(checkCmd)
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the user cache directory")
	checkCmd.Flags().Bool("no-cache", false, "disable the result cache even if configured")
}

// addRunFlags registers the flags shared by check and fix.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json|checkstyle|sarif|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=config or auto)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
}

type reportOptions struct {
	format    string
	withNotes bool
	pathMode  diagfmt.PathMode
	color     bool
	quiet     bool
	args      []string
}

func readReportOptions(cmd *cobra.Command, args []string) (reportOptions, error) {
	var (
		ro  = reportOptions{args: args}
		err error
	)
	if ro.format, err = cmd.Flags().GetString("format"); err != nil {
		return ro, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch ro.format {
	case "pretty", "json", "checkstyle", "sarif", "short":
	default:
		return ro, fmt.Errorf("unknown format: %s", ro.format)
	}
	if ro.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return ro, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return ro, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	ro.pathMode = diagfmt.PathModeAuto
	if fullPath {
		ro.pathMode = diagfmt.PathModeAbsolute
	}
	if ro.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ro, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if ro.color, err = useColor(cmd, os.Stdout); err != nil {
		return ro, err
	}
	return ro, nil
}

// runSniffs is the body of check and fix.
func runSniffs(cmd *cobra.Command, args []string, mode driver.Mode) error {
	// Ensure trace is dumped on panic
	defer dumpTraceOnPanic(cmd)

	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}
	ro, err := readReportOptions(cmd, targets)
	if err != nil {
		return usageError(err)
	}
	cfg, err := loadConfig(cmd, targets)
	if err != nil {
		return usageError(err)
	}
	opts, err := driverOptions(cmd, cfg, mode)
	if err != nil {
		return usageError(err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return usageError(fmt.Errorf("failed to get ui flag: %w", err))
	}
	progress, err := wantProgress(uiFlag)
	if err != nil {
		return usageError(err)
	}

	files, err := driver.ListFiles(targets, cfg)
	if err != nil {
		return usageError(err)
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return usageError(err)
	}
	defer cleanup()

	results, err := runFiles(cmd.Context(), files, opts, mode, !ro.quiet && progress && len(files) > 1)
	if err != nil {
		return usageError(err)
	}

	out := cmd.OutOrStdout()
	if opts.DryRun {
		for i := range results {
			r := &results[i]
			if fixed := r.Fixed(); fixed != "" {
				diagfmt.Diff(out, r.Path, string(r.File.Content), fixed, ro.color)
			}
		}
	}
	if err := writeReports(out, reportsFrom(results), ro, cfg.Root); err != nil {
		return usageError(err)
	}
	if opts.Timings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	if mode == driver.ModeFix && !ro.quiet && ro.format == "pretty" {
		printFixSummary(out, results, opts.DryRun)
	}
	return silentExit(worstExit(results))
}

func runFiles(ctx context.Context, files []string, opts driver.Options, mode driver.Mode, withUI bool) ([]driver.FileResult, error) {
	if withUI {
		title := "checking"
		if mode == driver.ModeFix {
			title = "fixing"
		}
		return runWithUI(ctx, title, files, opts)
	}
	_, results, err := driver.RunFiles(ctx, files, opts)
	return results, err
}

// reportsFrom builds formatter input; findings of a fix run point into the
// final text.
func reportsFrom(results []driver.FileResult) []diagfmt.FileReport {
	reports := make([]diagfmt.FileReport, 0, len(results))
	for i := range results {
		r := &results[i]
		var file *source.File
		switch {
		case r.Final != nil:
			file = r.Final.File
		case r.File != nil:
			file = r.File
		}
		var items []diag.Diagnostic
		if r.Bag != nil {
			items = r.Bag.Items()
		}
		reports = append(reports, diagfmt.FileReport{Path: r.Path, File: file, Items: items})
	}
	return reports
}

func writeReports(w io.Writer, reports []diagfmt.FileReport, ro reportOptions, baseDir string) error {
	switch ro.format {
	case "pretty":
		withItems := make([]diagfmt.FileReport, 0, len(reports))
		for _, r := range reports {
			if len(r.Items) > 0 {
				withItems = append(withItems, r)
			}
		}
		diagfmt.Pretty(w, withItems, diagfmt.PrettyOpts{
			Color:     ro.color,
			Context:   1,
			PathMode:  ro.pathMode,
			ShowNotes: ro.withNotes,
		})
		if !ro.quiet {
			diagfmt.PrettySummary(w, reports, ro.color)
		}
		return nil
	case "short":
		return diagfmt.Short(w, reports, baseDir, ro.withNotes)
	case "json":
		return diagfmt.JSON(w, reports, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         ro.pathMode,
			IncludeNotes:     ro.withNotes,
		})
	case "checkstyle":
		return diagfmt.Checkstyle(w, reports, version.Current(), ro.pathMode, baseDir)
	case "sarif":
		return diagfmt.Sarif(w, reports, baseDir, diagfmt.SarifRunMeta{
			ToolName:       "codesniff",
			ToolVersion:    version.Current(),
			InvocationArgs: ro.args,
		})
	}
	return fmt.Errorf("unknown format: %s", ro.format)
}

// worstExit: ввод-вывод > нестабильные исправления > находки.
func worstExit(results []driver.FileResult) int {
	code := exitClean
	for i := range results {
		r := &results[i]
		switch {
		case r.Err != nil:
			return exitUsage
		case r.Unstable():
			code = exitUnstable
		case code == exitClean && (r.Findings() > 0 || (r.Bag != nil && r.Bag.HasErrors())):
			code = exitFindings
		}
	}
	return code
}
