// Package reconcile computes which predicted-dataset identifiers have no counterpart
// in the reference dataset.
//
// The predicted dataset (cluster predictions such as DeepBGC output) and the reference
// dataset (curated clusters such as MIBiG) are both reduced to sets of normalized
// (accession, identifier) keys. Reconciliation is a single batch computation over
// those sets: no network, no shared state, safe to call from any goroutine.
//
// # Architecture
//
// 1. Index: both datasets are indexed concurrently. An index holds the accession set,
//    the distinct pair list in first-seen order, and the identifiers seen per accession.
//    Records whose accession normalizes to "" are counted and dropped here, so an empty
//    accession can never match another empty accession.
//
// 2. Engine: set differences between the two indices, evaluated at the granularity
//    selected in Options:
//      - AccessionOnly: a pair is unmatched iff its accession is unmatched.
//      - AccessionAndIdentifier: a pair is also unmatched when its accession is shared
//        with the reference but its identifier is not. With ScopeGlobal (the default)
//        the identifier may appear under any reference accession; with ScopeAccession
//        it must be recorded under the same accession.
//
// 3. Ordering: accessions are sorted by the number following a literal prefix
//    ("BGC0000123" ranks as 123). Accessions without the pattern go last in the order
//    they were first seen. Pairs follow their accession's rank.
//
// # Usage Example
//
//	result := reconcile.Reconcile(predicted, reference, reconcile.Options{
//	    Granularity:     reconcile.AccessionAndIdentifier,
//	    AccessionPrefix: "BGC",
//	})
//	for _, acc := range result.UnmatchedAccessions {
//	    fmt.Println(acc)
//	}
//
// # Sources
//
// ReconcileSources loads both datasets through the Source interface (typically TSV
// readers from core/table) before reconciling. Loading happens concurrently and the
// first load error aborts the run before any output is produced.
package reconcile
