package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"id-reconciler/core/reconcile"
	"id-reconciler/core/report"
	"id-reconciler/core/resolve"
	"id-reconciler/core/table"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LockFile is the name of the run lock inside the output directory.
const LockFile = ".id-reconciler.lock"

// ErrLocked is returned when another run holds the output directory.
var ErrLocked = errors.New("output directory is locked by another run")

// Outcome describes a finished (or cancelled) run.
type Outcome struct {
	RunID  string
	Result *reconcile.Result
	// Classifications holds one entry per completed identifier, in reconciliation order.
	Classifications []resolve.Classification
	// Report is nil for a cancelled run.
	Report    *report.Report
	Seeded    int
	Cancelled bool
	Elapsed   time.Duration
}

// Service runs the pipeline.
type Service struct {
	cfg      Config
	sink     table.Sink
	resolver *resolve.Resolver
	logger   *zap.Logger
}

// NewService creates a pipeline service.
func NewService(cfg Config, sink table.Sink, resolver *resolve.Resolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, sink: sink, resolver: resolver, logger: logger}
}

// Run executes every stage. A cancelled run returns the partial Outcome
// together with the context error.
func (s *Service) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()
	runID := s.resolver.Run().ID.String()
	l := s.logger.With(zap.String("run_id", runID))

	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	result, err := s.Reconcile(ctx)
	if err != nil {
		return nil, err
	}
	l.Info("Reconciliation finished",
		zap.Int("unmatched_accessions", result.Summary.UnmatchedAccessions),
		zap.Int("unmatched_pairs", result.Summary.UnmatchedPairs),
		zap.Int("matched_pairs", result.Summary.MatchedPairs),
		zap.Int("excluded_empty", result.Summary.ExcludedEmpty),
	)

	seeded, err := s.seed(ctx)
	if err != nil {
		return nil, err
	}

	ids := result.UnmatchedIdentifiers()
	l.Info("Classifying unmatched identifiers",
		zap.Int("identifiers", len(ids)),
		zap.Int("seeded", seeded),
		zap.Int("workers", s.cfg.Workers),
	)

	classifications, classifyErr := s.ClassifyAll(ctx, ids)
	out := &Outcome{
		RunID:           runID,
		Result:          result,
		Classifications: classifications,
		Seeded:          seeded,
	}

	if classifyErr != nil {
		out.Cancelled = true
		// Persist what completed so the next run can seed from it.
		settled := s.settled(classifications)
		if err := table.Save(context.WithoutCancel(ctx), s.sink, table.NameClassification, func(w io.Writer) error {
			return table.WriteClassifications(w, settled)
		}); err != nil {
			l.Error("Failed to write partial classification table", zap.Error(err))
		}
		out.Elapsed = time.Since(start)
		l.Warn("Run cancelled",
			zap.Int("completed", len(classifications)),
			zap.Int("remaining", len(ids)-len(classifications)),
		)
		return out, classifyErr
	}

	byID := make(map[string]resolve.Classification, len(classifications))
	for _, c := range classifications {
		byID[c.Identifier] = c
	}
	out.Report = report.Aggregate(result, byID)

	// Every identifier is classified; a late signal must not lose the outputs.
	if err := s.writeSnapshots(context.WithoutCancel(ctx), out); err != nil {
		return nil, err
	}

	out.Elapsed = time.Since(start)
	l.Info("Run finished",
		zap.Int("classified", out.Report.Total.Count),
		zap.Duration("elapsed", out.Elapsed),
	)
	return out, nil
}

// Reconcile checks both inputs and reconciles them.
func (s *Service) Reconcile(ctx context.Context) (*reconcile.Result, error) {
	for _, path := range []string{s.cfg.Predicted, s.cfg.Reference} {
		if err := table.CheckColumns(path); err != nil {
			return nil, err
		}
	}

	predicted := table.FileSource{Path: s.cfg.Predicted, Dataset: reconcile.Predicted}
	reference := table.FileSource{Path: s.cfg.Reference, Dataset: reconcile.Reference}
	return reconcile.ReconcileSources(ctx, predicted, reference, s.cfg.Options())
}

// WriteReconciliation writes the reconciliation and unmatched accession tables.
func (s *Service) WriteReconciliation(ctx context.Context, result *reconcile.Result) error {
	if err := table.Save(ctx, s.sink, table.NameReconciliation, func(w io.Writer) error {
		return table.WriteReconciliation(w, result)
	}); err != nil {
		return err
	}
	return table.Save(ctx, s.sink, table.NameUnmatchedAccessions, func(w io.Writer) error {
		return table.WriteUnmatchedAccessions(w, result.UnmatchedAccessions)
	})
}

// ClassifyAll classifies ids with at most Config.Workers concurrent workers.
// Scheduling stops when ctx is cancelled; the classifications completed so far
// are returned in input order together with the context error. A cancellation
// that arrives after every id completed is not an error.
//
// ids are normalized keys, so the versioned GenBank_or_EMBL shape guess never
// applies here; those identifiers always go to the lookup service.
func (s *Service) ClassifyAll(ctx context.Context, ids []string) ([]resolve.Classification, error) {
	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]resolve.Classification, len(ids))
	done := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cls, err := s.resolver.Classify(gctx, id)
			if err != nil {
				return err
			}
			results[i] = cls
			done[i] = true
			s.logger.Debug("Identifier classified",
				zap.String("identifier", id),
				zap.String("namespace", string(cls.Namespace)),
				zap.String("source", string(cls.Source)),
			)
			return nil
		})
	}
	err := g.Wait()

	completed := make([]resolve.Classification, 0, len(ids))
	for i := range ids {
		if done[i] {
			completed = append(completed, results[i])
		}
	}
	if len(completed) == len(ids) {
		return completed, nil
	}
	if err == nil {
		err = ctx.Err()
	}
	return completed, err
}

// settled returns completed followed by every other committed cache entry,
// sorted by identifier, so seeded rows the run never reached are kept.
// Failed entries are left out and retried next time.
func (s *Service) settled(completed []resolve.Classification) []resolve.Classification {
	out := slices.Clone(completed)
	seen := make(map[string]struct{}, len(completed))
	for _, c := range completed {
		seen[c.Identifier] = struct{}{}
	}

	snapshot := s.resolver.Run().Cache.Snapshot()
	rest := make([]string, 0, len(snapshot))
	for id, c := range snapshot {
		if _, ok := seen[id]; ok || c.Outcome == resolve.Failed {
			continue
		}
		rest = append(rest, id)
	}
	slices.Sort(rest)
	for _, id := range rest {
		out = append(out, snapshot[id])
	}
	return out
}

func (s *Service) writeSnapshots(ctx context.Context, out *Outcome) error {
	if err := s.WriteReconciliation(ctx, out.Result); err != nil {
		return err
	}

	writers := []struct {
		name   string
		render func(io.Writer) error
	}{
		{table.NameClassification, func(w io.Writer) error { return table.WriteClassifications(w, out.Classifications) }},
		{table.NameAnnotated, func(w io.Writer) error { return table.WriteAnnotated(w, out.Report.Rows) }},
		{table.NameSummary, func(w io.Writer) error { return table.WriteSummary(w, out.Report) }},
	}
	for _, wr := range writers {
		if err := table.Save(ctx, s.sink, wr.name, wr.render); err != nil {
			return err
		}
		s.logger.Debug("Snapshot written", zap.String("location", s.sink.Location(wr.name)))
	}
	return nil
}

// seed loads prior classifications into the resolver cache.
func (s *Service) seed(ctx context.Context) (int, error) {
	var entries []resolve.Classification

	if s.cfg.SeedFrom != "" {
		f, err := os.Open(s.cfg.SeedFrom)
		if err != nil {
			return 0, &table.InputError{Path: s.cfg.SeedFrom, Err: err}
		}
		defer f.Close()
		seeded, err := table.ReadClassifications(f, s.cfg.SeedFrom)
		if err != nil {
			return 0, err
		}
		entries = append(entries, seeded...)
	}

	if s.cfg.Resume {
		prior, err := s.readPrior(ctx)
		if err != nil {
			s.logger.Warn("No usable prior classification table, starting fresh",
				zap.String("location", s.sink.Location(table.NameClassification)),
				zap.Error(err),
			)
		}
		entries = append(entries, prior...)
	}

	if len(entries) == 0 {
		return 0, nil
	}
	return s.resolver.Run().Cache.Seed(entries), nil
}

func (s *Service) readPrior(ctx context.Context) ([]resolve.Classification, error) {
	rc, err := s.sink.Open(ctx, table.NameClassification)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return table.ReadClassifications(rc, s.sink.Location(table.NameClassification))
}

// lock acquires the output directory lock.
func (s *Service) lock() (func(), error) {
	dir := s.cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	lk := flock.New(filepath.Join(dir, LockFile))
	ok, err := lk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
	}
	return func() {
		if err := lk.Unlock(); err != nil {
			s.logger.Warn("Failed to release lock", zap.Error(err))
		}
	}, nil
}
