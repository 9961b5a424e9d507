package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fmtguard/internal/config"
	"fmtguard/internal/diag"
	"fmtguard/internal/diagfmt"
	"fmtguard/internal/driver"
	"fmtguard/internal/ui"
	"fmtguard/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.c|directory>...",
	Short: "Check format strings of printf-family calls",
	Long: `Check reports format strings that do not match their arguments: missing or
extra arguments, invalid specifiers, non-literal formats, %n, and casts whose
type does not fit the specifier. Directories are searched for *.c and *.h.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("no-warnings", false, "drop warnings from the output")
	checkCmd.Flags().Int("context", 2, "lines of context around code frames")
	checkCmd.Flags().Bool("cache", true, "reuse results of unchanged files")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
}

type checkOptions struct {
	format           string
	jobs             int
	warningsAsErrors bool
	noWarnings       bool
	context          int
	cache            bool
	ui               uiMode
	suggest          bool
	timings          bool
	maxDiagnostics   int
	pathMode         diagfmt.PathMode
}

// readCheckOptions merges flags over the configuration file: a flag given on
// the command line wins.
func readCheckOptions(cmd *cobra.Command, cfg config.Config) (checkOptions, error) {
	flags := cmd.Flags()
	var opts checkOptions
	var err error

	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch opts.format {
	case "pretty", "json", "sarif", "short":
	default:
		return opts, fmt.Errorf("unknown format %q (expected pretty|json|sarif|short)", opts.format)
	}

	opts.jobs = cfg.Check.Jobs
	if flags.Changed("jobs") {
		if opts.jobs, err = flags.GetInt("jobs"); err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	opts.warningsAsErrors = cfg.Check.WarningsAsErrors
	if flags.Changed("warnings-as-errors") {
		if opts.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
			return opts, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	opts.noWarnings = cfg.Check.NoWarnings
	if flags.Changed("no-warnings") {
		if opts.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
			return opts, fmt.Errorf("failed to get no-warnings flag: %w", err)
		}
	}
	if opts.noWarnings && opts.warningsAsErrors {
		return opts, fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}
	opts.context = cfg.Check.Context
	if flags.Changed("context") {
		if opts.context, err = flags.GetInt("context"); err != nil {
			return opts, fmt.Errorf("failed to get context flag: %w", err)
		}
		if opts.context < 0 {
			return opts, fmt.Errorf("--context must not be negative")
		}
	}
	opts.cache = cfg.Cache.Enabled
	if flags.Changed("cache") {
		if opts.cache, err = flags.GetBool("cache"); err != nil {
			return opts, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}

	uiStr, err := flags.GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiStr); err != nil {
		return opts, err
	}
	if opts.suggest, err = flags.GetBool("suggest"); err != nil {
		return opts, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = maxDiagnostics(cmd, cfg); err != nil {
		return opts, err
	}
	if opts.pathMode, err = pathMode(cmd); err != nil {
		return opts, err
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	opts, err := readCheckOptions(cmd, cfg)
	if err != nil {
		return err
	}
	files, err := driver.ListSources(args)
	if err != nil {
		return err
	}

	analysis, err := cfg.AnalysisOptions()
	if err != nil {
		return err
	}
	fingerprint, err := cfg.Fingerprint()
	if err != nil {
		return err
	}
	dopts := driver.Options{
		Analysis:   analysis,
		Jobs:       opts.jobs,
		ConfigHash: fingerprint,
		Timings:    opts.timings,
	}
	if opts.cache {
		if dopts.Cache, err = driver.OpenDiskCache("fmtguard", cfg.Cache.Dir); err != nil {
			return err
		}
	}

	res, err := runChecks(cmd.Context(), files, dopts, opts.format == "pretty" && !quiet(cmd) && shouldUseTUI(opts.ui, len(files)))
	if err != nil {
		return err
	}

	bag := res.Bag()
	applyWarningPolicy(bag, opts)
	if err := renderCheck(cmd, bag, res, opts); err != nil {
		return err
	}
	if opts.timings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timings.Report().Summary())
	}
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

// runChecks runs the driver, with the progress view on stderr when withUI.
func runChecks(ctx context.Context, files []string, dopts driver.Options, withUI bool) (*driver.Result, error) {
	if !withUI {
		return driver.CheckFiles(ctx, files, dopts)
	}
	// буфер на все файлы: воркеры никогда не блокируются на UI
	events := make(chan ui.Event, len(files))
	dopts.Progress = func(fr driver.FileResult) {
		events <- progressEvent(fr)
	}

	var (
		res    *driver.Result
		runErr error
	)
	go func() {
		defer close(events)
		res, runErr = driver.CheckFiles(ctx, files, dopts)
	}()
	uiErr := ui.Run("checking", files, events, os.Stderr)
	// UI мог выйти раньше (Ctrl-C): дожидаемся закрытия канала
	for range events {
	}
	if runErr == nil && uiErr != nil {
		fmt.Fprintf(os.Stderr, "progress view failed: %v\n", uiErr)
	}
	return res, runErr
}

func progressEvent(fr driver.FileResult) ui.Event {
	ev := ui.Event{File: fr.Path, Cached: fr.Cached, Status: ui.StatusClean}
	if fr.Bag != nil {
		ev.Errors = fr.Bag.Count(diag.SevError)
		ev.Warnings = fr.Bag.Count(diag.SevWarning)
	}
	switch {
	case fr.Fatal:
		ev.Status = ui.StatusFatal
	case ev.Errors > 0:
		ev.Status = ui.StatusErrors
	case ev.Warnings > 0:
		ev.Status = ui.StatusWarnings
	}
	return ev
}

func applyWarningPolicy(bag *diag.Bag, opts checkOptions) {
	switch {
	case opts.noWarnings:
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	case opts.warningsAsErrors:
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
}

func renderCheck(cmd *cobra.Command, bag *diag.Bag, res *driver.Result, opts checkOptions) error {
	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		return diagfmt.JSON(out, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			Max:              opts.maxDiagnostics,
			IncludeLabels:    true,
			IncludeFixes:     opts.suggest,
			IncludePreviews:  opts.suggest,
		})
	case "sarif":
		return diagfmt.Sarif(out, bag, res.FileSet, diagfmt.SarifRunMeta{
			ToolName:       version.Tool,
			ToolVersion:    version.Collect().Version,
			InvocationArgs: os.Args[1:],
		})
	case "short":
		return diagfmt.Short(out, bag, res.FileSet, opts.maxDiagnostics, false)
	}

	color, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	if err := diagfmt.Pretty(out, bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     color,
		Context:   opts.context,
		PathMode:  opts.pathMode,
		ShowFixes: opts.suggest,
		Max:       opts.maxDiagnostics,
	}); err != nil {
		return err
	}
	if !quiet(cmd) {
		printSummary(cmd.ErrOrStderr(), bag, res)
	}
	return nil
}

func printSummary(w io.Writer, bag *diag.Bag, res *driver.Result) {
	calls, cached := 0, 0
	for _, f := range res.Files {
		calls += f.Calls
		if f.Cached {
			cached++
		}
	}
	fmt.Fprintf(w, "checked %d files, %d calls: %d errors, %d warnings",
		len(res.Files), calls, bag.Count(diag.SevError), bag.Count(diag.SevWarning))
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	fmt.Fprintln(w)
}
