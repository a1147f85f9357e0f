package pipeline

import (
	"fmt"

	"id-reconciler/core/reconcile"
)

// Sink kinds.
const (
	SinkLocal = "local"
	SinkS3    = "s3"
)

// Config holds configuration for a pipeline run.
type Config struct {
	// Predicted is the predicted-dataset table (e.g. DeepBGC output).
	Predicted string `mapstructure:"predicted" default:""`
	// Reference is the reference-dataset table (e.g. MIBiG).
	Reference string `mapstructure:"reference" default:""`
	// OutputDir receives the snapshot tables and the run lock.
	OutputDir string `mapstructure:"output_dir" default:"output"`
	// Sink selects where snapshots go: local or s3.
	Sink string `mapstructure:"sink" default:"local"`
	// Workers bounds concurrent resolutions. 1 processes identifiers sequentially.
	Workers int `mapstructure:"workers" default:"1"`
	// Granularity is accession or accession+identifier.
	Granularity string `mapstructure:"granularity" default:"accession+identifier"`
	// IdentifierScope is global or accession (identifier must sit under the same accession).
	IdentifierScope string `mapstructure:"identifier_scope" default:"global"`
	// AccessionPrefix precedes the numeric part of accessions used for ordering.
	AccessionPrefix string `mapstructure:"accession_prefix" default:"BGC"`
	// SeedFrom is a classification table from an earlier run.
	SeedFrom string `mapstructure:"seed_from" default:""`
	// Resume seeds from the classification table already present in the sink.
	Resume bool `mapstructure:"resume" default:"false"`
}

// Validate checks the configuration before a run.
func (c Config) Validate() error {
	if c.Predicted == "" {
		return fmt.Errorf("predicted table is required")
	}
	if c.Reference == "" {
		return fmt.Errorf("reference table is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, ok := reconcile.ParseGranularity(c.Granularity); !ok {
		return fmt.Errorf("unknown granularity %q", c.Granularity)
	}
	if _, ok := reconcile.ParseIdentifierScope(c.IdentifierScope); !ok {
		return fmt.Errorf("unknown identifier scope %q", c.IdentifierScope)
	}
	switch c.Sink {
	case SinkLocal, SinkS3:
	default:
		return fmt.Errorf("unknown sink %q", c.Sink)
	}
	return nil
}

// Options returns the reconciliation options of the configuration.
func (c Config) Options() reconcile.Options {
	g, _ := reconcile.ParseGranularity(c.Granularity)
	scope, _ := reconcile.ParseIdentifierScope(c.IdentifierScope)
	return reconcile.Options{Granularity: g, IdentifierScope: scope, AccessionPrefix: c.AccessionPrefix}
}
