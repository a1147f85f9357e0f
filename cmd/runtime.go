package cmd

import (
	"context"
	"fmt"
	"os"

	"id-reconciler/core/config"
	"id-reconciler/core/logger"
	"id-reconciler/core/metrics"
	"id-reconciler/core/resolve"
	"id-reconciler/core/storage"
	"id-reconciler/core/table"
	"id-reconciler/feature/entrez"
	"id-reconciler/feature/pipeline"
	"id-reconciler/feature/uniprot"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// loadRuntime loads the configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)
	return cfg, l, nil
}

// newLookup builds the lookup backend selected by cfg.Backend.
func newLookup(cfg resolve.Config) (resolve.Lookup, error) {
	switch cfg.Backend {
	case resolve.BackendEntrez:
		c, err := entrez.New(cfg.BaseURL,
			entrez.WithTimeout(cfg.Timeout),
			entrez.WithAPIKey(cfg.APIKey),
			entrez.WithContact(cfg.Tool, cfg.Email),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	case resolve.BackendUniProt:
		c, err := uniprot.New(cfg.BaseURL, uniprot.WithTimeout(cfg.Timeout))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown lookup backend %q", cfg.Backend)
	}
}

// newResolver builds a resolver with a fresh run context.
func newResolver(cfg resolve.Config, l *zap.Logger, m *metrics.Metrics) (*resolve.Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lookup, err := newLookup(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup client: %w", err)
	}

	run := resolve.NewRunContext(lookup, resolve.NewGate(cfg.MinInterval), cfg.Policy(), cfg.Options())
	l.Info("Lookup backend ready",
		zap.String("backend", cfg.Backend),
		zap.String("database", cfg.Database),
		zap.Duration("min_interval", cfg.MinInterval),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.String("run_id", run.ID.String()),
	)
	return resolve.NewResolver(run, l, m), nil
}

// newSink builds the snapshot sink selected by the pipeline configuration.
func newSink(ctx context.Context, cfg *config.Config) (table.Sink, error) {
	switch cfg.Pipeline.Sink {
	case pipeline.SinkS3:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		return &table.ObjectSink{Client: client, Bucket: cfg.Storage.Bucket, Prefix: cfg.Storage.Prefix}, nil
	default:
		return table.NewLocalSink(cfg.Pipeline.OutputDir)
	}
}

// prettyOutput reports whether stdout is a terminal.
func prettyOutput() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
