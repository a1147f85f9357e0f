package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"id-reconciler/feature/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileFlags pipelineFlags

// reconcileCmd reconciles the datasets without classifying anything.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the predicted dataset against the reference",
	Long: `Compares the predicted and reference tables after normalizing accessions and
identifiers, then writes reconciliation.tsv and unmatched_accessions.tsv.
No external service is queried.

Examples:
  id-reconciler reconcile --predicted deepbgc.tsv --reference mibig.tsv
  id-reconciler reconcile --predicted deepbgc.tsv --reference mibig.tsv --granularity accession`,
	RunE: runReconcile,
}

func init() {
	bindPipelineFlags(reconcileCmd, &reconcileFlags)
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	reconcileFlags.apply(cmd, &cfg.Pipeline)
	if err := cfg.Pipeline.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := newSink(ctx, cfg)
	if err != nil {
		return err
	}

	svc := pipeline.NewService(cfg.Pipeline, sink, nil, l)
	result, err := svc.Reconcile(ctx)
	if err != nil {
		return err
	}
	if err := svc.WriteReconciliation(ctx, result); err != nil {
		return err
	}

	s := result.Summary
	l.Info("Reconciliation report",
		zap.Int("predicted_accessions", s.PredictedAccessions),
		zap.Int("reference_accessions", s.ReferenceAccessions),
		zap.Int("unmatched_accessions", s.UnmatchedAccessions),
		zap.Int("unmatched_pairs", s.UnmatchedPairs),
		zap.Int("matched_pairs", s.MatchedPairs),
		zap.Int("excluded_empty", s.ExcludedEmpty),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%d unmatched accessions, %d unmatched pairs\n", s.UnmatchedAccessions, s.UnmatchedPairs)
	return nil
}
