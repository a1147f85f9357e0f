package reconcile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Reconcile compares the predicted records against the reference records and
// returns the matched and unmatched accessions and pairs.
func Reconcile(predicted, reference []Record, opts Options) *Result {
	predictedIdx, referenceIdx := buildIndices(predicted, reference)
	return ReconcileIndices(predictedIdx, referenceIdx, opts)
}

// ReconcileIndices reconciles two pre-built indices.
func ReconcileIndices(predicted, reference *Index, opts Options) *Result {
	prefix := opts.AccessionPrefix
	if prefix == "" {
		prefix = DefaultAccessionPrefix
	}

	result := &Result{
		UnmatchedAccessions: []string{},
		MatchedAccessions:   []string{},
		UnmatchedPairs:      []Key{},
		MatchedPairs:        []Key{},
		Granularity:         opts.Granularity,
	}

	// Accession level
	predictedOrder := SortAccessions(predicted.AccessionOrder, prefix)
	for _, acc := range predictedOrder {
		if reference.HasAccession(acc) {
			result.MatchedAccessions = append(result.MatchedAccessions, acc)
		} else {
			result.UnmatchedAccessions = append(result.UnmatchedAccessions, acc)
		}
	}

	// Pair level
	for _, pair := range sortPairs(predicted.Pairs, predictedOrder) {
		if pairMatched(pair, reference, opts) {
			result.MatchedPairs = append(result.MatchedPairs, pair)
		} else {
			result.UnmatchedPairs = append(result.UnmatchedPairs, pair)
		}
	}

	referenceOrder := SortAccessions(reference.AccessionOrder, prefix)
	result.ReferencePairs = sortPairs(reference.Pairs, referenceOrder)

	result.Summary = Summary{
		PredictedAccessions: len(predicted.Accessions),
		ReferenceAccessions: len(reference.Accessions),
		PredictedPairs:      len(predicted.Pairs),
		ReferencePairs:      len(reference.Pairs),
		UnmatchedAccessions: len(result.UnmatchedAccessions),
		UnmatchedPairs:      len(result.UnmatchedPairs),
		MatchedPairs:        len(result.MatchedPairs),
		ExcludedEmpty:       predicted.Excluded + reference.Excluded,
	}

	return result
}

// pairMatched applies the pair policy: the accession must be shared, and at
// AccessionAndIdentifier granularity the identifier must be known to the
// reference too, anywhere or under the same accession depending on the scope.
// Empty identifiers never match.
func pairMatched(pair Key, reference *Index, opts Options) bool {
	if !reference.HasAccession(pair.Accession) {
		return false
	}
	if opts.Granularity == AccessionOnly {
		return true
	}
	if opts.IdentifierScope == ScopeAccession {
		return reference.HasIdentifier(pair.Accession, pair.Identifier)
	}
	return reference.HasAnyIdentifier(pair.Identifier)
}

// ReconcileSources loads both datasets concurrently and reconciles them.
// A load failure on either side aborts before any result is produced.
func ReconcileSources(ctx context.Context, predicted, reference Source, opts Options) (*Result, error) {
	var predictedRecords, referenceRecords []Record

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := predicted.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load %s dataset %s: %w", Predicted, predicted.Name(), err)
		}
		predictedRecords = records
		return nil
	})

	g.Go(func() error {
		records, err := reference.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load %s dataset %s: %w", Reference, reference.Name(), err)
		}
		referenceRecords = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Reconcile(predictedRecords, referenceRecords, opts), nil
}
