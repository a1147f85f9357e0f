package report

import (
	"math"
	"sort"

	"id-reconciler/core/classify"
	"id-reconciler/core/reconcile"
	"id-reconciler/core/resolve"
)

// SourcePredictedUnique labels rows that only exist in the predicted dataset.
const SourcePredictedUnique = "Predicted-unique"

// TotalLabel names the summary's total entry.
const TotalLabel = "TOTAL"

// Row is one unmatched pair annotated with its classification.
type Row struct {
	Accession   string
	Identifier  string
	Namespace   classify.Namespace
	CanonicalID string
	Source      string
	// Classified is false when no classification exists for the identifier
	// (empty identifier, or a run stopped before reaching it).
	Classified bool
}

// Count is one line of the frequency table.
type Count struct {
	Namespace  string
	Count      int
	Percentage float64
}

// Report is the aggregated output of a run.
type Report struct {
	Rows   []Row
	Counts []Count
	Total  Count
}

// Aggregate joins classifications onto the unmatched pairs of result by
// normalized identifier and computes per-namespace counts.
func Aggregate(result *reconcile.Result, classifications map[string]resolve.Classification) *Report {
	rep := &Report{
		Rows:   make([]Row, 0),
		Counts: make([]Count, 0),
		Total:  Count{Namespace: TotalLabel, Percentage: 100},
	}
	if result == nil {
		return rep
	}

	counts := make(map[string]int)
	for _, pair := range result.UnmatchedPairs {
		row := Row{
			Accession:  pair.Accession,
			Identifier: pair.Identifier,
			Source:     SourcePredictedUnique,
		}
		if cls, ok := classifications[pair.Identifier]; ok && pair.Identifier != "" {
			row.Namespace = cls.Namespace
			row.CanonicalID = cls.CanonicalID
			row.Classified = true
			counts[string(cls.Namespace)]++
			rep.Total.Count++
		}
		rep.Rows = append(rep.Rows, row)
	}

	rep.Counts = Frequencies(counts)
	return rep
}

// Summarize builds a report without rows from raw namespace counts.
// Blank namespaces are counted as Unknown.
func Summarize(counts map[string]int) *Report {
	merged := make(map[string]int, len(counts))
	total := 0
	for ns, n := range counts {
		if n <= 0 {
			continue
		}
		if ns == "" {
			ns = string(classify.Unknown)
		}
		merged[ns] += n
		total += n
	}
	return &Report{
		Rows:   make([]Row, 0),
		Counts: Frequencies(merged),
		Total:  Count{Namespace: TotalLabel, Count: total, Percentage: 100},
	}
}

// Frequencies turns raw counts into a frequency table ordered by count
// descending, then by namespace.
func Frequencies(counts map[string]int) []Count {
	total := 0
	for _, n := range counts {
		total += n
	}

	out := make([]Count, 0, len(counts))
	for ns, n := range counts {
		out = append(out, Count{Namespace: ns, Count: n, Percentage: percentage(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Namespace < out[j].Namespace
	})
	return out
}

func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}
