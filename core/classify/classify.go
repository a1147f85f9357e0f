package classify

import (
	"regexp"
	"strings"

	"id-reconciler/core/normalize"
)

// Namespace is the authority that issued an identifier.
type Namespace string

const (
	RefSeq        Namespace = "RefSeq"
	UniProt       Namespace = "UniProt"
	GenBank       Namespace = "GenBank"
	EMBL          Namespace = "EMBL"
	GenBankOrEMBL Namespace = "GenBank_or_EMBL"
	Unknown       Namespace = "Unknown"
	Error         Namespace = "Error"
)

// ParseNamespace maps a stored namespace value back onto a Namespace.
// Matching is case-insensitive; unrecognised values return ok=false.
func ParseNamespace(s string) (Namespace, bool) {
	for _, ns := range []Namespace{RefSeq, UniProt, GenBank, EMBL, GenBankOrEMBL, Unknown, Error} {
		if strings.EqualFold(strings.TrimSpace(s), string(ns)) {
			return ns, true
		}
	}
	return Unknown, false
}

// Confidence qualifies a pattern guess.
type Confidence int

const (
	Low Confidence = iota
	High
)

// String returns "high" or "low".
func (c Confidence) String() string {
	if c == High {
		return "high"
	}
	return "low"
}

// refSeqPrefixes are the RefSeq protein accession prefixes.
var refSeqPrefixes = []string{"AP_", "NP_", "WP_", "XP_", "YP_", "ZP_"}

var (
	// uniProtPattern is the UniProtKB accession format.
	uniProtPattern = regexp.MustCompile(`^(?:[OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9](?:[A-Z][A-Z0-9]{2}[0-9]){1,2})$`)

	// insdcPattern is three letters, digits and a single version suffix.
	insdcPattern = regexp.MustCompile(`^[A-Za-z]{3}[0-9]+\.[0-9]+$`)

	// insdcAccessionPattern is the unversioned INSDC protein accession.
	insdcAccessionPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{5,7}$`)
)

// ClassifyByPattern returns a namespace guess for the identifier and how much to trust it.
func ClassifyByPattern(identifier string) (Namespace, Confidence) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return Unknown, Low
	}

	if hasRefSeqPrefix(id) {
		return RefSeq, High
	}

	if uniProtPattern.MatchString(normalize.Identifier(id)) {
		return UniProt, High
	}

	if insdcPattern.MatchString(id) {
		return GenBankOrEMBL, Low
	}

	return Unknown, Low
}

// IsConfident reports whether the guess is final without a lookup.
func IsConfident(c Confidence) bool {
	return c == High
}

// NamespaceOfAccession classifies an accession returned by a lookup service.
// sourceHint is the service's own source label (e.g. "refseq", "insd", "embl",
// "UniProtKB reviewed (Swiss-Prot)") and may be empty.
func NamespaceOfAccession(accession, sourceHint string) Namespace {
	acc := strings.TrimSpace(accession)
	hint := strings.ToLower(strings.TrimSpace(sourceHint))
	if acc == "" {
		return Unknown
	}

	if hasRefSeqPrefix(acc) || strings.Contains(hint, "refseq") {
		return RefSeq
	}

	if strings.Contains(hint, "uniprot") || strings.Contains(hint, "swiss-prot") || strings.Contains(hint, "trembl") {
		return UniProt
	}

	switch {
	case strings.Contains(hint, "embl"):
		return EMBL
	case strings.Contains(hint, "genbank"), strings.Contains(hint, "insd"), strings.Contains(hint, "ddbj"):
		return GenBank
	}

	bare := normalize.Identifier(acc)
	if uniProtPattern.MatchString(bare) {
		return UniProt
	}
	if insdcAccessionPattern.MatchString(bare) {
		return GenBank
	}
	return Unknown
}

func hasRefSeqPrefix(id string) bool {
	upper := strings.ToUpper(id)
	for _, prefix := range refSeqPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}
