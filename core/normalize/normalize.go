package normalize

import "strings"

const (
	versionSeparator = "."
	headerSeparator  = "|"
)

// Accession returns the comparable key for an accession string.
func Accession(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.Index(s, headerSeparator); i >= 0 {
		s = s[:i]
	}
	return stripVersion(s)
}

// Identifier returns the comparable key for a protein or locus identifier.
func Identifier(s string) string {
	return stripVersion(strings.TrimSpace(s))
}

func stripVersion(s string) string {
	if i := strings.Index(s, versionSeparator); i >= 0 {
		s = s[:i]
	}
	// A blank segment before the separator (" .1") must still collapse to "".
	return strings.TrimSpace(s)
}
