package resolve

import "context"

// Search fields understood by every backend.
const (
	FieldAccession = "Accession"
	FieldAll       = "All Fields"
)

// SearchRequest asks a backend for record handles matching a term.
type SearchRequest struct {
	Database string
	Term     string
	Field    string
}

// SummaryRequest asks a backend for the structured summary of one handle.
type SummaryRequest struct {
	Database string
	Handle   string
}

// CrossRef is a reference from a record into another namespace.
type CrossRef struct {
	Namespace string
	ID        string
}

// Summary is the structured record behind a handle.
type Summary struct {
	// AccessionVersion is the canonical, version-qualified accession.
	AccessionVersion string
	// SourceNamespace is the backend's own source label (e.g. "refseq", "insd").
	SourceNamespace string
	// Annotation is a free-text field that may embed cross references
	// ("UniProtKB:P12345", "db|id|db|id", ";"-separated lists).
	Annotation string
	CrossRefs  []CrossRef
}

// Lookup is an external namespace-authoritative service.
type Lookup interface {
	// Search returns the handles matching the request, best first. An empty
	// slice with a nil error means no match.
	Search(ctx context.Context, req SearchRequest) ([]string, error)

	// Summary fetches the structured record behind a handle.
	Summary(ctx context.Context, req SummaryRequest) (Summary, error)
}
