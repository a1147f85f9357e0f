package reconcile

import (
	"regexp"
	"sort"
	"strings"
)

// accessionRank is the sort key of an accession: the digits after the prefix with
// leading zeros removed, compared by length then lexically so that runs longer than
// int64 still order numerically.
type accessionRank struct {
	digits string
	ok     bool
}

// rankPattern matches the prefix followed by its digit run.
func rankPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(prefix) + `([0-9]+)`)
}

// rankOf extracts the first run of digits directly following an occurrence of the
// prefix.
func rankOf(acc string, pattern *regexp.Regexp) accessionRank {
	m := pattern.FindStringSubmatch(acc)
	if m == nil {
		return accessionRank{}
	}
	return accessionRank{digits: strings.TrimLeft(m[1], "0"), ok: true}
}

func (a accessionRank) less(b accessionRank) bool {
	switch {
	case !a.ok:
		return false
	case !b.ok:
		return true
	case len(a.digits) != len(b.digits):
		return len(a.digits) < len(b.digits)
	default:
		return a.digits < b.digits
	}
}

// SortAccessions returns the accessions ordered by their numeric suffix after prefix.
// Ties and accessions without the pattern keep their input order, which makes the
// ordering total once the input order is fixed.
func SortAccessions(accessions []string, prefix string) []string {
	if prefix == "" {
		prefix = DefaultAccessionPrefix
	}
	pattern := rankPattern(prefix)
	ranks := make(map[string]accessionRank, len(accessions))
	for _, acc := range accessions {
		ranks[acc] = rankOf(acc, pattern)
	}

	sorted := make([]string, len(accessions))
	copy(sorted, accessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ranks[sorted[i]].less(ranks[sorted[j]])
	})
	return sorted
}

// sortPairs orders pairs by the position of their accession in accessionOrder,
// keeping first-seen order within an accession.
func sortPairs(pairs []Key, accessionOrder []string) []Key {
	position := make(map[string]int, len(accessionOrder))
	for i, acc := range accessionOrder {
		position[acc] = i
	}

	sorted := make([]Key, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return position[sorted[i].Accession] < position[sorted[j].Accession]
	})
	return sorted
}
