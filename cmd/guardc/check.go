package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"guardc/internal/diag"
	"guardc/internal/diagfmt"
	"guardc/internal/driver"
	"guardc/internal/observ"
	"guardc/internal/project"
	"guardc/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.gd|directory>",
	Short: "Check guarded overloads in a file or directory",
	Long: `Check collects overload groups in a .gd file (or every *.gd file in a directory)
and reports unreachable, incomplete and ambiguous overloads.
Defaults come from the nearest guard.toml; flags override them.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("disk-cache", false, "reuse diagnostics of unchanged files across runs")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().StringSlice("exclude", nil, "skip paths matching pattern (repeatable, adds to guard.toml)")
}

// checkSettings is the merged view of guard.toml and CLI flags.
type checkSettings struct {
	format           diagfmt.Format
	maxDiagnostics   int
	noWarnings       bool
	warningsAsErrors bool
	jobs             int
	exclude          project.CheckConfig
	withNotes        bool
	diskCache        bool
	ui               uiMode
	fullPath         bool
	quiet            bool
	timings          bool
}

// runCheck executes the "check" command: it merges manifest defaults with
// flags, checks the file or directory and renders the diagnostics. It returns
// errDiagnostics when any error diagnostic remains after the warning filters.
func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	target := args[0]
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	manifestDir := target
	if !st.IsDir() {
		manifestDir = filepath.Dir(target)
	}
	var cfg project.CheckConfig
	manifest, err := project.LoadManifest(manifestDir)
	switch {
	case err == nil:
		cfg = manifest.Config.Check
	case errors.Is(err, project.ErrNoManifest):
		// без манифеста работаем на значениях флагов
	default:
		return err
	}

	settings, err := readCheckSettings(cmd, cfg)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	var timer *observ.Timer
	if settings.timings {
		timer = observ.NewTimer()
	}
	opts := driver.DiagnoseOptions{
		MaxDiagnostics:   settings.maxDiagnostics,
		IgnoreWarnings:   settings.noWarnings,
		WarningsAsErrors: settings.warningsAsErrors,
		Jobs:             settings.jobs,
		Exclude:          settings.exclude.Excluded,
		Timer:            timer,
	}
	if settings.diskCache {
		cache, cacheErr := driver.OpenDiskCache("guardc")
		if cacheErr != nil {
			return fmt.Errorf("failed to open disk cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	var (
		fs  *source.FileSet
		bag *diag.Bag
	)
	if st.IsDir() {
		var results []driver.FileResult
		if settings.ui.wantsTUI() {
			fs, results, err = runCheckWithUI(cmd, target, opts)
		} else {
			fs, results, err = driver.DiagnoseDir(cmd.Context(), target, opts)
		}
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		bag = driver.MergeBags(results)
	} else {
		res, diagErr := driver.DiagnoseFile(cmd.Context(), target, opts)
		if diagErr != nil {
			return fmt.Errorf("check failed: %w", diagErr)
		}
		fs, bag = res.FileSet, res.Bag
	}
	bag.Sort()

	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := renderDiagnostics(out, bag, fs, settings, colored); err != nil {
		return err
	}
	if settings.format == diagfmt.FormatPretty && !settings.quiet {
		printSummary(cmd.ErrOrStderr(), bag)
	}
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func readCheckSettings(cmd *cobra.Command, cfg project.CheckConfig) (checkSettings, error) {
	flags := cmd.Flags()
	var s checkSettings

	formatStr, err := flags.GetString("format")
	if err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !flags.Changed("format") && cfg.Format != "" {
		formatStr = cfg.Format
	}
	if s.format, err = diagfmt.ParseFormat(formatStr); err != nil {
		return s, err
	}

	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && cfg.MaxDiagnostics > 0 {
		s.maxDiagnostics = cfg.MaxDiagnostics
	}
	if s.maxDiagnostics < 0 {
		return s, fmt.Errorf("--max-diagnostics must be >= 0, got %d", s.maxDiagnostics)
	}

	if s.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return s, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if !flags.Changed("no-warnings") {
		s.noWarnings = cfg.NoWarnings
	}
	if s.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return s, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if !flags.Changed("warnings-as-errors") {
		s.warningsAsErrors = cfg.WarningsAsErrors
	}
	if s.noWarnings && s.warningsAsErrors {
		return s, fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}

	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && cfg.Jobs > 0 {
		s.jobs = cfg.Jobs
	}
	if s.jobs < 0 {
		return s, fmt.Errorf("--jobs must be >= 0, got %d", s.jobs)
	}

	extra, err := flags.GetStringSlice("exclude")
	if err != nil {
		return s, fmt.Errorf("failed to get exclude flag: %w", err)
	}
	for _, pattern := range extra {
		if _, matchErr := path.Match(pattern, ""); matchErr != nil {
			return s, fmt.Errorf("invalid --exclude pattern %q: %w", pattern, matchErr)
		}
	}
	s.exclude.Exclude = append(append([]string(nil), cfg.Exclude...), extra...)

	if s.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return s, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if s.diskCache, err = flags.GetBool("disk-cache"); err != nil {
		return s, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiStr); err != nil {
		return s, err
	}
	if s.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return s, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

func renderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s checkSettings, colored bool) error {
	pathMode := diagfmt.PathModeAuto
	if s.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch s.format {
	case diagfmt.FormatShort:
		diagfmt.Short(w, bag, fs, pathMode, s.withNotes)
	case diagfmt.FormatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     s.withNotes,
		})
	case diagfmt.FormatSarif:
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "guardc",
			ToolVersion:    versionString(),
			InvocationArgs: os.Args[1:],
		})
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     colored,
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: s.withNotes,
		})
	}
	return nil
}

// printSummary печатает итоговую строку вида "2 errors, 1 warning".
func printSummary(w io.Writer, bag *diag.Bag) {
	var errs, warns int
	for _, d := range bag.Items() {
		switch {
		case d.IsNote():
		case d.Severity == diag.SevError:
			errs++
		case d.Severity == diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		return
	}
	fmt.Fprintf(w, "%s, %s\n", plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
