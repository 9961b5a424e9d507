package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fmtguard/internal/driver"
	"fmtguard/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.c>",
	Short: "Apply the suggested fixes of check",
	Long: `Fix applies the edits check suggests (specifier changes, "%s" for non-literal
formats). By default every non-conflicting fix is applied; --once takes the
first one and --id a single fix by the ID printed with --list.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringP("out", "o", "", "write the result to this path (must not exist)")
	fixCmd.Flags().Bool("in-place", false, "overwrite the input file")
	fixCmd.Flags().Bool("force", false, "allow --out to overwrite an existing file")
	fixCmd.Flags().Bool("once", false, "apply only the first fix")
	fixCmd.Flags().String("id", "", "apply only the fix with this ID")
	fixCmd.Flags().Bool("list", false, "list available fixes instead of applying them")
}

func runFix(cmd *cobra.Command, args []string) error {
	opts, err := readRewriteOptions(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	once, _ := flags.GetBool("once")
	id, _ := flags.GetString("id")
	list, _ := flags.GetBool("list")

	mode := fix.ApplyOptions{Mode: fix.ApplyModeAll}
	switch {
	case once && id != "":
		return fmt.Errorf("--once and --id cannot be used together")
	case once:
		mode.Mode = fix.ApplyModeOnce
	case id != "":
		mode = fix.ApplyOptions{Mode: fix.ApplyModeID, TargetID: id}
	}

	path := args[0]
	cfg, err := loadConfig(cmd, path)
	if err != nil {
		return err
	}
	analysis, err := cfg.AnalysisOptions()
	if err != nil {
		return err
	}
	_, a, err := driver.Load(cmd.Context(), path, analysis)
	if err != nil {
		return err
	}
	if a.Fatal {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: cannot be fixed, lexing failed (run check for details)\n", path)
		return errDiagnostics
	}

	out := cmd.OutOrStdout()
	if list {
		for _, d := range a.Bag.Items() {
			pos := a.File.Position(d.Primary.Start)
			for i, f := range d.Fixes {
				fmt.Fprintf(out, "%s:%d:%d: %s: %s\n", a.File.Path, pos.Line, pos.Col, fix.ID(d, i), f.Title)
			}
		}
		return nil
	}

	res, err := fix.Apply(a.File, a.Bag.Items(), mode)
	stderr := cmd.ErrOrStderr()
	if res != nil && !quiet(cmd) {
		for _, s := range res.Skipped {
			fmt.Fprintf(stderr, "skipped %s: %s\n", s.ID, s.Reason)
		}
	}
	if errors.Is(err, fix.ErrNoFixes) {
		if !quiet(cmd) {
			fmt.Fprintf(stderr, "%s: no applicable fixes\n", path)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !quiet(cmd) {
		for _, f := range res.Applied {
			pos := a.File.Position(f.Primary.Start)
			fmt.Fprintf(stderr, "%s:%d:%d: applied %s: %s\n", a.File.Path, pos.Line, pos.Col, f.ID, f.Title)
		}
	}
	return writeResult(out, path, res.Content, opts)
}
