// Package classify guesses the issuing namespace of an identifier from its shape alone.
//
// The classifier is deterministic, local and cheap. It runs before any network lookup
// so that identifiers whose namespace is obvious never cost an external call:
//
//   - RefSeq protein prefixes (AP_, NP_, WP_, XP_, YP_, ZP_) → RefSeq, high confidence.
//   - UniProtKB accession shape (P12345, A0A023GPI8, ...) → UniProt, high confidence.
//   - three letters, digits, a single dot and a version (AAB12345.1) → GenBank_or_EMBL,
//     low confidence: the INSDC partners share the format, only a lookup can tell them apart.
//   - anything else → Unknown, low confidence.
//
// High-confidence guesses are final. Low-confidence guesses are forwarded to the
// resolver, whose answer is authoritative.
//
// NamespaceOfAccession applies the same rules to an accession returned by a lookup
// service and uses the service's source field to split GenBank from EMBL.
package classify
