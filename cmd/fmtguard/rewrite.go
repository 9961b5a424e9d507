package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fmtguard/internal/check"
	"fmtguard/internal/diagfmt"
	"fmtguard/internal/driver"
	"fmtguard/internal/rewrite"
	"fmtguard/internal/source"
	"fmtguard/internal/trace"
)

var typecastCmd = &cobra.Command{
	Use:   "typecast [flags] <file.c>",
	Short: "Wrap format arguments in explicit casts",
	Long: `Typecast wraps every argument of a formatting call in the cast its specifier
expects, e.g. printf("%d", n) becomes printf("%d", (int) (n)). Arguments that
already carry a known cast are left alone. The result goes to stdout unless
--out or --in-place is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runTypecast,
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [flags] <file.c>",
	Short: "Rewrite formatting calls into safe_* calls",
	Long: `Optimize replaces each call with a safe_<name> call taking the argument count
and a list of literal pieces and tagged arguments. Calls it cannot express
(%n, flags or width, comments inside the call, nested calls) are listed on
stderr and left unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	for _, c := range []*cobra.Command{typecastCmd, optimizeCmd} {
		c.Flags().StringP("out", "o", "", "write the result to this path (must not exist)")
		c.Flags().Bool("in-place", false, "overwrite the input file")
		c.Flags().Bool("force", false, "rewrite even when the file has error diagnostics; allow --out to overwrite")
	}
	optimizeCmd.Flags().String("prefix", rewrite.DefaultContract.Prefix, "prefix of the safe call functions")
}

type rewriteOptions struct {
	out     string
	inPlace bool
	force   bool
}

func readRewriteOptions(cmd *cobra.Command) (rewriteOptions, error) {
	var opts rewriteOptions
	var err error
	if opts.out, err = cmd.Flags().GetString("out"); err != nil {
		return opts, fmt.Errorf("failed to get out flag: %w", err)
	}
	if opts.inPlace, err = cmd.Flags().GetBool("in-place"); err != nil {
		return opts, fmt.Errorf("failed to get in-place flag: %w", err)
	}
	if opts.force, err = cmd.Flags().GetBool("force"); err != nil {
		return opts, fmt.Errorf("failed to get force flag: %w", err)
	}
	if opts.out != "" && opts.inPlace {
		return opts, fmt.Errorf("--out and --in-place cannot be used together")
	}
	return opts, nil
}

// loadForRewrite analyses path and prints its diagnostics to stderr. Files
// with errors are refused unless --force.
func loadForRewrite(cmd *cobra.Command, path string, opts rewriteOptions) (*source.FileSet, *check.Analysis, error) {
	cfg, err := loadConfig(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	analysis, err := cfg.AnalysisOptions()
	if err != nil {
		return nil, nil, err
	}
	fs, a, err := driver.Load(cmd.Context(), path, analysis)
	if err != nil {
		return nil, nil, err
	}

	if a.Bag.Len() > 0 && (!quiet(cmd) || a.HasErrors()) {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return nil, nil, err
		}
		mode, err := pathMode(cmd)
		if err != nil {
			return nil, nil, err
		}
		maxItems, err := maxDiagnostics(cmd, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), a.Bag, fs, diagfmt.PrettyOpts{
			Color:    color,
			Context:  cfg.Check.Context,
			PathMode: mode,
			Max:      maxItems,
		}); err != nil {
			return nil, nil, err
		}
	}
	if a.Fatal || (a.HasErrors() && !opts.force) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: not rewritten because of errors (use --force to rewrite anyway)\n", path)
		return nil, nil, errDiagnostics
	}
	return fs, a, nil
}

// writeResult sends data to stdout, --out or the input file.
func writeResult(out io.Writer, input string, data []byte, opts rewriteOptions) error {
	switch {
	case opts.inPlace:
		return driver.WriteOutput(input, data, true)
	case opts.out != "":
		return driver.WriteOutput(opts.out, data, opts.force)
	}
	_, err := out.Write(data)
	return err
}

func runTypecast(cmd *cobra.Command, args []string) error {
	opts, err := readRewriteOptions(cmd)
	if err != nil {
		return err
	}
	_, a, err := loadForRewrite(cmd, args[0], opts)
	if err != nil {
		return err
	}

	_, span := trace.Start(cmd.Context(), trace.ScopePass, "typecast")
	data, err := rewrite.TypecastSource(a)
	span.End("")
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), args[0], data, opts)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	opts, err := readRewriteOptions(cmd)
	if err != nil {
		return err
	}
	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return fmt.Errorf("failed to get prefix flag: %w", err)
	}
	contract := rewrite.DefaultContract
	contract.Prefix = prefix

	_, a, err := loadForRewrite(cmd, args[0], opts)
	if err != nil {
		return err
	}

	_, span := trace.Start(cmd.Context(), trace.ScopePass, "optimize")
	data, res, err := rewrite.OptimizeSource(a, contract)
	span.End(fmt.Sprintf("%d rewritten, %d skipped", res.Rewritten, len(res.Skipped)))
	if err != nil {
		return err
	}

	if !quiet(cmd) {
		stderr := cmd.ErrOrStderr()
		for _, s := range res.Skipped {
			pos := a.File.Position(s.Call.Span.Start)
			fmt.Fprintf(stderr, "%s:%d:%d: skipped `%s`: %s\n", a.File.Path, pos.Line, pos.Col, s.Call.Name(), s.Reason)
		}
		fmt.Fprintf(stderr, "optimized %d calls, skipped %d\n", res.Rewritten, len(res.Skipped))
	}
	return writeResult(cmd.OutOrStdout(), args[0], data, opts)
}
