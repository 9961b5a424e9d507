package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fmtguard/internal/prof"
)

var activeProfile *prof.Session

// setupProfiling starts the profilers requested by persistent flags.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	var cfg prof.Config
	var err error
	if cfg.CPUProfile, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemProfile, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.RuntimeTrace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	activeProfile, err = prof.Start(cfg)
	return err
}

func stopProfiling(stderr io.Writer) {
	if err := activeProfile.Stop(); err != nil {
		fmt.Fprintf(stderr, "profile: %v\n", err)
	}
	activeProfile = nil
}

// setupRun is the root PersistentPreRunE.
func setupRun(cmd *cobra.Command, args []string) error {
	if err := setupTracing(cmd, args); err != nil {
		return err
	}
	return setupProfiling(cmd)
}
