// Package pipeline runs one complete reconciliation: read both datasets,
// reconcile them, classify the orphan identifiers and write every snapshot.
//
// # Stages
//
//  1. Lock the output directory (gofrs/flock) so two runs never interleave writes.
//  2. Check both input tables. A missing file or column aborts the run before
//     anything is written.
//  3. Reconcile the datasets (core/reconcile).
//  4. Seed the resolver cache from a prior classification table, if configured.
//  5. Classify every distinct unmatched identifier with a bounded worker pool.
//     Workers share the resolver cache and its rate gate.
//  6. Aggregate (core/report) and write the snapshot tables (core/table).
//
// # Cancellation
//
// Cancelling the context stops scheduling new identifiers. The classification
// table of the identifiers completed so far is still written, so the next run
// can seed from it; no other table is written for a cancelled run.
package pipeline
