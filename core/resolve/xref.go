package resolve

import (
	"strings"
)

// dbAliases maps the short database tags used in pipe-delimited FASTA-style
// annotations onto the names used in structured cross references.
var dbAliases = map[string]string{
	"gb":        "genbank",
	"emb":       "embl",
	"dbj":       "ddbj",
	"ref":       "refseq",
	"sp":        "uniprotkb",
	"tr":        "uniprotkb",
	"uniprot":   "uniprotkb",
	"swissprot": "uniprotkb",
	"trembl":    "uniprotkb",
}

func canonicalDB(db string) string {
	db = strings.ToLower(strings.TrimSpace(db))
	if alias, ok := dbAliases[db]; ok {
		return alias
	}
	return db
}

// crossRefIDs collects the distinct ids referenced in namespace, structured
// cross references first, then the free-text annotation, in order of appearance.
func crossRefIDs(summary Summary, namespace string) []string {
	want := canonicalDB(namespace)
	if want == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var ids []string
	add := func(db, id string) {
		id = strings.TrimSpace(id)
		if id == "" || canonicalDB(db) != want {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, ref := range summary.CrossRefs {
		add(ref.Namespace, ref.ID)
	}
	for _, ref := range parseAnnotation(summary.Annotation) {
		add(ref.Namespace, ref.ID)
	}
	return ids
}

// parseAnnotation extracts cross references from a free-text annotation.
// Recognised tokens are "DB:id" and pipe-delimited "db|id|db|id" runs,
// separated by semicolons, commas or whitespace. Anything else is skipped.
func parseAnnotation(annotation string) []CrossRef {
	tokens := strings.FieldsFunc(annotation, func(r rune) bool {
		switch r {
		case ';', ',', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})

	var refs []CrossRef
	for _, token := range tokens {
		switch {
		case strings.Contains(token, "|"):
			parts := strings.Split(token, "|")
			for i := 0; i+1 < len(parts); i += 2 {
				if parts[i] != "" && parts[i+1] != "" {
					refs = append(refs, CrossRef{Namespace: parts[i], ID: parts[i+1]})
				}
			}
		case strings.Contains(token, ":"):
			db, id, _ := strings.Cut(token, ":")
			if db != "" && id != "" {
				refs = append(refs, CrossRef{Namespace: db, ID: id})
			}
		}
	}
	return refs
}
