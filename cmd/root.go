package cmd

import (
	"fmt"
	"os"

	"id-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// envDir is the directory holding the optional .env file.
var envDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "id-reconciler",
	Short: "Reconcile cluster datasets and classify their protein identifiers",
	Long: `id-reconciler compares a predicted cluster dataset against a curated reference,
isolates the predicted-only entries and classifies their protein identifiers by
issuing namespace (RefSeq, UniProt, GenBank, EMBL), querying NCBI E-utilities or
UniProt when the identifier alone is not conclusive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps, like the rest of the CLI output
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory containing the optional .env file")
}
