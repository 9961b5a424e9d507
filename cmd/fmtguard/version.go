package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fmtguard/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fmtguard build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	format, _ := flags.GetString("format")
	full, _ := flags.GetBool("full")
	hash, _ := flags.GetBool("hash")
	message, _ := flags.GetBool("message")
	date, _ := flags.GetBool("date")
	opts := version.Options{
		ShowHash:    hash || full,
		ShowMessage: message || full,
		ShowDate:    date || full,
	}

	info := version.Collect()
	switch strings.ToLower(format) {
	case "json":
		return version.RenderJSON(cmd.OutOrStdout(), info, opts)
	case "pretty":
		on, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		color.NoColor = !on
		version.RenderPretty(cmd.OutOrStdout(), info, opts)
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}
