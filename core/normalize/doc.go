// Package normalize turns raw accession and identifier strings into comparable keys.
//
// Records coming out of the predicted-cluster dataset (DeepBGC) and the curated
// reference dataset (MIBiG) spell the same entity differently: version suffixes
// drift between releases ("BGC0000001.1" vs "BGC0000001.3") and FASTA-derived
// tables embed the accession inside a pipe-delimited header
// ("BGC0000001.1|1|1-1083|..."). Both helpers reduce those spellings to one key.
//
// # Rules
//
//   - Accession: surrounding whitespace trimmed, first "|" segment kept, version
//     suffix (everything from the first ".") dropped.
//   - Identifier: surrounding whitespace trimmed, version suffix dropped. The rule
//     is the same for both datasets so their identifiers stay comparable.
//   - Empty or blank input normalizes to "". Callers must never treat "" as a match.
//
// Both functions are pure and idempotent: Accession(Accession(x)) == Accession(x).
//
// # Usage
//
//	normalize.Accession("BGC0000001.2|1|1-100") // "BGC0000001"
//	normalize.Identifier("WP_123456.1")         // "WP_123456"
package normalize
