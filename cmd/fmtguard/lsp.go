package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"fmtguard/internal/lsp"
	"fmtguard/internal/version"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the fmtguard language server over stdio",
	Args:  cobra.NoArgs,
	RunE:  runLSP,
}

func init() {
	lspCmd.Flags().Int("log-verbosity", 0, "server log verbosity (0 = quiet, 1 = info, 2 = debug)")
	lspCmd.Flags().String("log-file", "", "write server logs to this file instead of stderr")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	verbosity, err := cmd.Flags().GetInt("log-verbosity")
	if err != nil {
		return fmt.Errorf("failed to get log-verbosity flag: %w", err)
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}
	var logPath *string
	if logFile != "" {
		logPath = &logFile
	}
	// stdout занят протоколом, логи только в stderr или файл
	commonlog.Configure(verbosity, logPath)

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, wd)
	if err != nil {
		return err
	}
	analysis, err := cfg.AnalysisOptions()
	if err != nil {
		return err
	}
	maxItems, err := maxDiagnostics(cmd, cfg)
	if err != nil {
		return err
	}

	server := lsp.NewServer(lsp.Options{
		Analysis:       analysis,
		Version:        version.Collect().Version,
		MaxDiagnostics: maxItems,
	})
	return server.Run()
}
