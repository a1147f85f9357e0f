// Package table reads the tab-separated input tables and writes every snapshot
// table a run produces.
//
// # Inputs
//
// Both datasets are TSV files with a header row and at least the accession and
// protein_id columns; other columns are ignored. A missing file or column is
// reported as an *InputError before anything is written.
//
// # Outputs
//
//   - reconciliation.tsv: accession, protein_id, source (Reference or Predicted-unique)
//   - unmatched_accessions.tsv: accession
//   - classification.tsv: protein_id, namespace, canonical_id
//   - annotated.tsv: accession, protein_id, namespace, canonical_id, source
//   - summary.tsv: namespace, count, percentage, then TOTAL
//
// A classification.tsv from an earlier run can be read back with
// ReadClassifications to seed the resolver cache.
//
// # Sinks
//
// Tables are rendered in memory and handed to a Sink as a whole, so a reader
// never sees a partial table. LocalSink writes to a temporary file and renames
// it into place; ObjectSink uploads to S3 or MinIO through core/storage.
package table
