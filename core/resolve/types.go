package resolve

import (
	"id-reconciler/core/classify"
)

// Outcome is the terminal state of one resolution.
type Outcome string

const (
	// Found means the identifier was classified and, for lookups, a canonical id was recovered.
	Found Outcome = "found"
	// NotFound means the external namespace does not know the identifier. It is not an error.
	NotFound Outcome = "not_found"
	// Failed means the lookup failed permanently or exhausted its retries.
	Failed Outcome = "failed"
)

// Source records where a Classification came from.
type Source string

const (
	SourcePattern Source = "pattern"
	SourceLookup  Source = "lookup"
	SourceSeed    Source = "seed"
)

// Classification is the final answer for one distinct identifier.
type Classification struct {
	// Identifier is the normalized identifier the classification belongs to.
	Identifier string
	Namespace  classify.Namespace
	// CanonicalID is the version-qualified id returned by the lookup service.
	// Empty means none.
	CanonicalID string
	Outcome     Outcome
	Source      Source
	// Err holds the failure behind a Failed outcome.
	Err error
}

// HasCanonicalID reports whether a canonical id was recovered.
func (c Classification) HasCanonicalID() bool {
	return c.CanonicalID != ""
}

func notFound(id string) Classification {
	return Classification{Identifier: id, Namespace: classify.Unknown, Outcome: NotFound, Source: SourceLookup}
}

func failed(id string, err error) Classification {
	return Classification{Identifier: id, Namespace: classify.Error, Outcome: Failed, Source: SourceLookup, Err: err}
}
