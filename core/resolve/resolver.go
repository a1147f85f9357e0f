package resolve

import (
	"context"
	"fmt"

	"id-reconciler/core/classify"
	"id-reconciler/core/metrics"
	"id-reconciler/core/normalize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options selects what a resolution extracts from the summary.
type Options struct {
	// Database is the backend database searched (e.g. "protein").
	Database string
	// CrossRefNamespace, when set, makes the canonical id the first cross
	// reference into this namespace instead of the record's own accession.
	CrossRefNamespace string
}

// RunContext owns the state shared by every resolution of one run.
type RunContext struct {
	ID      uuid.UUID
	Cache   *Cache
	Gate    *Gate
	Lookup  Lookup
	Policy  Policy
	Options Options
}

// NewRunContext creates a run with a fresh ID and an empty cache.
func NewRunContext(lookup Lookup, gate *Gate, policy Policy, opts Options) *RunContext {
	if gate == nil {
		gate = NewGate(DefaultMinInterval)
	}
	return &RunContext{
		ID:      uuid.New(),
		Cache:   NewCache(),
		Gate:    gate,
		Lookup:  lookup,
		Policy:  policy,
		Options: opts,
	}
}

// Resolver classifies identifiers within one RunContext.
type Resolver struct {
	run     *RunContext
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewResolver creates a resolver. m may be nil.
func NewResolver(run *RunContext, logger *zap.Logger, m *metrics.Metrics) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		run:     run,
		logger:  logger.With(zap.String("run_id", run.ID.String())),
		metrics: m,
	}
}

// Run returns the run context of the resolver.
func (r *Resolver) Run() *RunContext {
	return r.run
}

// Classify returns the final classification of an identifier. Cached and
// seeded entries win; otherwise a high-confidence pattern guess is final and
// anything else is resolved through the lookup service.
func (r *Resolver) Classify(ctx context.Context, identifier string) (Classification, error) {
	key := normalize.Identifier(identifier)
	if key == "" {
		return Classification{Namespace: classify.Unknown, Outcome: NotFound, Source: SourcePattern}, nil
	}

	if cls, ok := r.run.Cache.Get(key); ok {
		r.metrics.IncCacheHit()
		return cls, nil
	}

	ns, confidence := classify.ClassifyByPattern(identifier)
	if classify.IsConfident(confidence) {
		cls := r.run.Cache.commit(key, Classification{
			Identifier: key,
			Namespace:  ns,
			Outcome:    Found,
			Source:     SourcePattern,
		})
		r.metrics.IncClassification(string(cls.Namespace), string(cls.Source))
		return cls, nil
	}

	return r.Resolve(ctx, identifier)
}

// Resolve classifies an identifier through the lookup service. The returned
// error is non-nil only when ctx is cancelled; lookup failures are reported as
// a Failed classification.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (Classification, error) {
	key := normalize.Identifier(identifier)
	if key == "" {
		return notFound(""), nil
	}

	cls, hit, err := r.run.Cache.GetOrResolve(ctx, key, func() (Classification, error) {
		cls, err := r.lookup(ctx, key)
		if err == nil {
			r.metrics.IncClassification(string(cls.Namespace), string(cls.Source))
		}
		return cls, err
	})
	if err != nil {
		return Classification{}, err
	}
	if hit {
		r.metrics.IncCacheHit()
	}
	return cls, nil
}

func (r *Resolver) lookup(ctx context.Context, id string) (Classification, error) {
	l := r.logger.With(zap.String("identifier", id))

	handle, err := r.search(ctx, id)
	if err != nil {
		return r.failure(ctx, l, id, err)
	}
	if handle == "" {
		l.Debug("Identifier unknown to lookup service")
		return notFound(id), nil
	}

	var summary Summary
	err = r.call(ctx, "summary", id, func(ctx context.Context) error {
		s, err := r.run.Lookup.Summary(ctx, SummaryRequest{Database: r.run.Options.Database, Handle: handle})
		if err != nil {
			return err
		}
		summary = s
		return nil
	})
	if err != nil {
		return r.failure(ctx, l, id, err)
	}

	return r.fromSummary(l, id, summary), nil
}

// search tries an exact accession query, then an all-fields query, and returns
// the first handle found or "".
func (r *Resolver) search(ctx context.Context, id string) (string, error) {
	for _, field := range []string{FieldAccession, FieldAll} {
		var handles []string
		err := r.call(ctx, "search", id, func(ctx context.Context) error {
			h, err := r.run.Lookup.Search(ctx, SearchRequest{Database: r.run.Options.Database, Term: id, Field: field})
			if err != nil {
				return err
			}
			handles = h
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to search %s[%s]: %w", id, field, err)
		}
		for _, h := range handles {
			if h != "" {
				return h, nil
			}
		}
	}
	return "", nil
}

func (r *Resolver) fromSummary(l *zap.Logger, id string, summary Summary) Classification {
	if ns := r.run.Options.CrossRefNamespace; ns != "" {
		ids := crossRefIDs(summary, ns)
		if len(ids) == 0 {
			l.Debug("No cross reference found", zap.String("namespace", ns))
			return notFound(id)
		}
		if len(ids) > 1 {
			l.Warn("Ambiguous cross references, using the first",
				zap.String("namespace", ns),
				zap.Strings("candidates", ids),
			)
		}
		return Classification{
			Identifier:  id,
			Namespace:   classify.NamespaceOfAccession(ids[0], ns),
			CanonicalID: ids[0],
			Outcome:     Found,
			Source:      SourceLookup,
		}
	}

	if summary.AccessionVersion == "" {
		l.Debug("Summary carries no accession")
		return notFound(id)
	}
	return Classification{
		Identifier:  id,
		Namespace:   classify.NamespaceOfAccession(summary.AccessionVersion, summary.SourceNamespace),
		CanonicalID: summary.AccessionVersion,
		Outcome:     Found,
		Source:      SourceLookup,
	}
}

func (r *Resolver) failure(ctx context.Context, l *zap.Logger, id string, err error) (Classification, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Classification{}, ctxErr
	}
	l.Warn("Lookup failed", zap.Bool("transient", IsTransient(err)), zap.Error(err))
	return failed(id, err), nil
}
