package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fmtguard/internal/trace"
	"fmtguard/internal/version"
)

// errDiagnostics is returned when the run finished but reported errors;
// it maps to exit code 1 and prints nothing extra.
var errDiagnostics = errors.New("error diagnostics reported")

var rootCmd = &cobra.Command{
	Use:   "fmtguard",
	Short: "Check and rewrite printf-family calls in C sources",
	Long: `fmtguard finds printf, fprintf, dprintf, sprintf and snprintf calls in C source,
checks their format strings against the arguments, and can rewrite calls with
explicit casts (typecast) or into safe_* calls (optimize).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

// main registers subcommands and persistent flags, runs the root command and
// maps the outcome to an exit code: 0 clean, 1 error diagnostics, 2 internal failure.
func main() {
	rootCmd.Version = version.Collect().Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(typecastCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show (0 = all)")
	flags.String("config", "", "path to fmtguard.toml (default: search upwards from the first input)")
	flags.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|driver|file|pass|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "ring buffer size in events")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	err := rootCmd.ExecuteContext(context.Background())
	os.Exit(finish(err, os.Stderr))
}

// finish flushes tracing and converts err into an exit code.
func finish(err error, stderr io.Writer) int {
	defer closeTracing(stderr)
	defer stopProfiling(stderr)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDiagnostics):
		return 1
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	dumpTraceRing(stderr)
	return 2
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output going to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// activeTracer is set by setupTracing; finish flushes it.
var (
	activeTracer trace.Tracer = trace.Nop
	stopTracing  func()
)
