package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fmtguard/internal/config"
	"fmtguard/internal/diagfmt"
)

// loadConfig reads --config or the nearest fmtguard.toml above start.
func loadConfig(cmd *cobra.Command, start string) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(start)
}

func pathMode(cmd *cobra.Command) (diagfmt.PathMode, error) {
	s, err := cmd.Root().PersistentFlags().GetString("path-mode")
	if err != nil {
		return 0, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(s)
	if !ok {
		return 0, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", s)
	}
	return mode, nil
}

// maxDiagnostics is the root flag when given, else the config value.
func maxDiagnostics(cmd *cobra.Command, cfg config.Config) (int, error) {
	flags := cmd.Root().PersistentFlags()
	n, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && cfg.Check.MaxDiagnostics > 0 {
		n = cfg.Check.MaxDiagnostics
	}
	if n < 0 {
		return 0, fmt.Errorf("--max-diagnostics must not be negative")
	}
	return n, nil
}
