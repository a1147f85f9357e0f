// Package resolve turns an ambiguous identifier into an authoritative
// (namespace, canonical id) pair by querying an external lookup service.
//
// # Architecture
//
//   - Lookup: the two capabilities a backend must provide, search-by-term and
//     summary-by-handle (see feature/entrez and feature/uniprot).
//   - RunContext: everything one pipeline run shares, the Cache, the rate Gate,
//     the Lookup and the retry Policy. There is no package-level state.
//   - Cache: write-once map keyed by normalized identifier. Concurrent callers
//     for the same key are collapsed with singleflight so a key is resolved at
//     most once per run.
//   - Gate: a token bucket every external call passes through, retries included.
//   - Resolver: the algorithm itself.
//
// # Algorithm
//
//  1. Cache hit: return the stored Classification unchanged.
//  2. Search the Accession field; on zero results search All Fields.
//  3. Fetch the summary of the first handle. The namespace comes from the shape
//     of the resolved accession and the canonical id is its accession-version.
//     With Options.CrossRefNamespace set, the cross references and the free-text
//     annotation are scanned instead and the first matching id wins.
//  4. No handle after both searches: Unknown with no canonical id (NotFound).
//  5. Transient failures are retried with exponential backoff and jitter up to
//     Policy.MaxRetries attempts, then recorded as Error. Non-transient failures
//     are recorded as Error immediately.
//  6. The result is committed to the cache before it is returned.
//
// Resolve only returns an error when the context is cancelled. Cancelled
// resolutions are never cached.
package resolve
