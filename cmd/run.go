package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"id-reconciler/core/metrics"
	"id-reconciler/core/report"
	"id-reconciler/core/table"
	"id-reconciler/feature/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pipelineFlags are shared by run and reconcile; set flags override the configuration.
type pipelineFlags struct {
	predicted   string
	reference   string
	output      string
	sink        string
	workers     int
	granularity string
	scope       string
	prefix      string
	seedFrom    string
	resume      bool
	backend     string
	crossRef    string
}

var runFlags pipelineFlags

// runCmd runs the whole pipeline.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile, classify unmatched identifiers and write every table",
	Long: `Reconciles the predicted dataset against the reference, classifies the
identifiers of the predicted-only pairs and writes the reconciliation,
classification, annotated and summary tables.

Interrupting a run (Ctrl-C) stops scheduling new identifiers and still writes
classification.tsv for the identifiers already done. Use --resume to continue.

Examples:
  id-reconciler run --predicted deepbgc.tsv --reference mibig.tsv
  id-reconciler run --predicted deepbgc.tsv --reference mibig.tsv --workers 4 --resume
  id-reconciler run --predicted p.tsv --reference r.tsv --backend uniprot --cross-ref EMBL`,
	RunE: runPipeline,
}

func init() {
	bindPipelineFlags(runCmd, &runFlags)
	runCmd.Flags().IntVar(&runFlags.workers, "workers", 1, "Concurrent resolutions")
	runCmd.Flags().StringVar(&runFlags.seedFrom, "seed-from", "", "Classification table of an earlier run")
	runCmd.Flags().BoolVar(&runFlags.resume, "resume", false, "Seed from the classification table already in the output")
	runCmd.Flags().StringVar(&runFlags.backend, "backend", "", "Lookup backend: entrez or uniprot")
	runCmd.Flags().StringVar(&runFlags.crossRef, "cross-ref", "", "Extract cross references of this namespace (e.g. EMBL)")
	RootCmd.AddCommand(runCmd)
}

func bindPipelineFlags(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().StringVar(&f.predicted, "predicted", "", "Predicted dataset table (TSV)")
	cmd.Flags().StringVar(&f.reference, "reference", "", "Reference dataset table (TSV)")
	cmd.Flags().StringVar(&f.output, "output", "", "Output directory")
	cmd.Flags().StringVar(&f.sink, "sink", "", "Snapshot sink: local or s3")
	cmd.Flags().StringVar(&f.granularity, "granularity", "", "Matching granularity: accession or accession+identifier")
	cmd.Flags().StringVar(&f.scope, "identifier-scope", "", "Identifier matching scope: global or accession")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Accession prefix used for ordering")
}

// apply copies the flags the user set onto the configuration.
func (f *pipelineFlags) apply(cmd *cobra.Command, cfg *pipeline.Config) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("predicted", &cfg.Predicted, f.predicted)
	set("reference", &cfg.Reference, f.reference)
	set("output", &cfg.OutputDir, f.output)
	set("sink", &cfg.Sink, f.sink)
	set("granularity", &cfg.Granularity, f.granularity)
	set("identifier-scope", &cfg.IdentifierScope, f.scope)
	set("prefix", &cfg.AccessionPrefix, f.prefix)
	set("seed-from", &cfg.SeedFrom, f.seedFrom)
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = f.resume
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	runFlags.apply(cmd, &cfg.Pipeline)
	if cmd.Flags().Changed("backend") {
		cfg.Lookup.Backend = runFlags.backend
	}
	if cmd.Flags().Changed("cross-ref") {
		cfg.Lookup.CrossRefNamespace = runFlags.crossRef
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolver, err := newResolver(cfg.Lookup, l, metrics.New())
	if err != nil {
		return err
	}
	sink, err := newSink(ctx, cfg)
	if err != nil {
		return err
	}

	l.Info("Starting pipeline",
		zap.String("predicted", cfg.Pipeline.Predicted),
		zap.String("reference", cfg.Pipeline.Reference),
		zap.String("granularity", cfg.Pipeline.Granularity),
		zap.String("sink", cfg.Pipeline.Sink),
	)

	out, err := pipeline.NewService(cfg.Pipeline, sink, resolver, l).Run(ctx)
	if err != nil {
		if out != nil && out.Cancelled && errors.Is(err, context.Canceled) {
			l.Warn("Run interrupted, partial classification table written",
				zap.String("location", sink.Location(table.NameClassification)),
				zap.Int("completed", len(out.Classifications)),
			)
		}
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Render(out.Report, prettyOutput()))
	if prettyOutput() {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
