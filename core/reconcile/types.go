package reconcile

import "id-reconciler/core/normalize"

// Dataset identifies which side of the reconciliation a record was read from.
type Dataset string

const (
	// Predicted is the predicted-cluster dataset (e.g. DeepBGC output).
	Predicted Dataset = "predicted"
	// Reference is the curated reference dataset (e.g. MIBiG).
	Reference Dataset = "reference"
)

// Granularity selects what must be equal for two records to be the same entity.
type Granularity int

const (
	// AccessionOnly compares accession keys only.
	AccessionOnly Granularity = iota
	// AccessionAndIdentifier additionally requires the identifier key to be present
	// in the reference; IdentifierScope decides whether anywhere or under the same
	// accession.
	AccessionAndIdentifier
)

// String returns the configuration spelling of the granularity.
func (g Granularity) String() string {
	switch g {
	case AccessionOnly:
		return "accession"
	case AccessionAndIdentifier:
		return "accession+identifier"
	default:
		return "unknown"
	}
}

// ParseGranularity maps a configuration value onto a Granularity.
// Unrecognised values return ok=false.
func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "accession", "accession_only", "accession-only":
		return AccessionOnly, true
	case "accession+identifier", "accession_and_identifier", "pair", "":
		return AccessionAndIdentifier, true
	default:
		return AccessionAndIdentifier, false
	}
}

// IdentifierScope selects where an identifier key is looked up at
// AccessionAndIdentifier granularity.
type IdentifierScope int

const (
	// ScopeGlobal matches an identifier present anywhere in the reference.
	ScopeGlobal IdentifierScope = iota
	// ScopeAccession matches only an identifier recorded under the same accession.
	ScopeAccession
)

// String returns the configuration spelling of the scope.
func (s IdentifierScope) String() string {
	if s == ScopeAccession {
		return "accession"
	}
	return "global"
}

// ParseIdentifierScope maps a configuration value onto an IdentifierScope.
// The empty string selects ScopeGlobal.
func ParseIdentifierScope(s string) (IdentifierScope, bool) {
	switch s {
	case "global", "":
		return ScopeGlobal, true
	case "accession", "per-accession", "per_accession":
		return ScopeAccession, true
	default:
		return ScopeGlobal, false
	}
}

// Record is a single (accession, identifier) row read from one of the datasets.
// Records are never mutated after they are read.
type Record struct {
	// Accession is the raw cluster accession, possibly versioned or embedded in a header.
	Accession string `json:"accession"`

	// Identifier is the raw protein or locus identifier.
	Identifier string `json:"protein_id"`

	// Dataset is the side the record came from.
	Dataset Dataset `json:"source_dataset"`
}

// Key is the normalized form of a Record.
type Key struct {
	Accession  string `json:"accession"`
	Identifier string `json:"protein_id"`
}

// KeyOf normalizes a record into its comparable key.
func KeyOf(r Record) Key {
	return Key{
		Accession:  normalize.Accession(r.Accession),
		Identifier: normalize.Identifier(r.Identifier),
	}
}

// Options controls a reconciliation run.
type Options struct {
	// Granularity selects accession-only or accession+identifier matching.
	Granularity Granularity

	// IdentifierScope applies at AccessionAndIdentifier granularity.
	IdentifierScope IdentifierScope

	// AccessionPrefix is the literal prefix preceding the numeric part of an accession,
	// used for ordering. Defaults to DefaultAccessionPrefix when empty.
	AccessionPrefix string
}

// DefaultAccessionPrefix is the MIBiG cluster accession prefix.
const DefaultAccessionPrefix = "BGC"

// Result is the output of a reconciliation. All slices are deterministically ordered.
type Result struct {
	// UnmatchedAccessions are predicted accession keys absent from the reference.
	UnmatchedAccessions []string `json:"unmatched_accessions"`

	// MatchedAccessions are predicted accession keys also present in the reference.
	MatchedAccessions []string `json:"matched_accessions"`

	// UnmatchedPairs are predicted pairs with no counterpart under the selected granularity.
	UnmatchedPairs []Key `json:"unmatched_pairs"`

	// MatchedPairs are predicted pairs that do have a counterpart.
	MatchedPairs []Key `json:"matched_pairs"`

	// ReferencePairs are the distinct reference pairs, used for the combined table.
	ReferencePairs []Key `json:"reference_pairs"`

	// Granularity is the granularity the result was computed with.
	Granularity Granularity `json:"-"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate counts for a reconciliation.
type Summary struct {
	// PredictedAccessions is the number of distinct non-empty predicted accessions.
	PredictedAccessions int `json:"predicted_accessions"`

	// ReferenceAccessions is the number of distinct non-empty reference accessions.
	ReferenceAccessions int `json:"reference_accessions"`

	// PredictedPairs is the number of distinct predicted pairs.
	PredictedPairs int `json:"predicted_pairs"`

	// ReferencePairs is the number of distinct reference pairs.
	ReferencePairs int `json:"reference_pairs"`

	// UnmatchedAccessions counts predicted accessions missing from the reference.
	UnmatchedAccessions int `json:"unmatched_accessions"`

	// UnmatchedPairs counts predicted pairs without a counterpart.
	UnmatchedPairs int `json:"unmatched_pairs"`

	// MatchedPairs counts predicted pairs with a counterpart.
	MatchedPairs int `json:"matched_pairs"`

	// ExcludedEmpty counts records dropped because their accession normalized to "".
	ExcludedEmpty int `json:"excluded_empty"`
}

// UnmatchedIdentifiers returns the distinct identifier keys of the unmatched pairs
// in pair order, skipping empty identifiers.
func (r *Result) UnmatchedIdentifiers() []string {
	seen := make(map[string]struct{}, len(r.UnmatchedPairs))
	ids := make([]string, 0, len(r.UnmatchedPairs))
	for _, p := range r.UnmatchedPairs {
		if p.Identifier == "" {
			continue
		}
		if _, ok := seen[p.Identifier]; ok {
			continue
		}
		seen[p.Identifier] = struct{}{}
		ids = append(ids, p.Identifier)
	}
	return ids
}
