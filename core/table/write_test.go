package table

import (
	"bytes"
	"strings"
	"testing"

	"id-reconciler/core/classify"
	"id-reconciler/core/reconcile"
	"id-reconciler/core/report"
	"id-reconciler/core/resolve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReconciliation(t *testing.T) {
	result := &reconcile.Result{
		ReferencePairs: []reconcile.Key{{Accession: "BGC1", Identifier: "A"}},
		UnmatchedPairs: []reconcile.Key{{Accession: "BGC2", Identifier: "B"}, {Accession: "BGC2", Identifier: ""}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReconciliation(&buf, result))
	assert.Equal(t, "accession\tprotein_id\tsource\n"+
		"BGC1\tA\tReference\n"+
		"BGC2\tB\tPredicted-unique\n"+
		"BGC2\t\tPredicted-unique\n", buf.String())
}

func TestWriteUnmatchedAccessions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUnmatchedAccessions(&buf, []string{"BGC2", "BGC10"}))
	assert.Equal(t, "accession\nBGC2\nBGC10\n", buf.String())
}

func TestWriteClassifications_RoundTrip(t *testing.T) {
	in := []resolve.Classification{
		{Identifier: "AAB1", Namespace: classify.GenBank, CanonicalID: "AAB1.2", Outcome: resolve.Found},
		{Identifier: "foo", Namespace: classify.Unknown, Outcome: resolve.NotFound},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteClassifications(&buf, in))
	assert.True(t, strings.HasPrefix(buf.String(), "protein_id\tnamespace\tcanonical_id\n"))

	out, err := ReadClassifications(&buf, "classification.tsv")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteAnnotated(t *testing.T) {
	rows := []report.Row{
		{Accession: "BGC2", Identifier: "B", Namespace: classify.EMBL, CanonicalID: "CAA1.1", Source: report.SourcePredictedUnique, Classified: true},
		{Accession: "BGC2", Source: report.SourcePredictedUnique},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAnnotated(&buf, rows))
	assert.Equal(t, "accession\tprotein_id\tnamespace\tcanonical_id\tsource\n"+
		"BGC2\tB\tEMBL\tCAA1.1\tPredicted-unique\n"+
		"BGC2\t\t\t\tPredicted-unique\n", buf.String())
}

func TestWriteSummary(t *testing.T) {
	rep := &report.Report{
		Counts: []report.Count{{Namespace: "RefSeq", Count: 1, Percentage: 33.33}, {Namespace: "Unknown", Count: 2, Percentage: 66.67}},
		Total:  report.Count{Namespace: report.TotalLabel, Count: 3, Percentage: 100},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, rep))
	assert.Equal(t, "namespace\tcount\tpercentage\n"+
		"RefSeq\t1\t33.33\n"+
		"Unknown\t2\t66.67\n"+
		"TOTAL\t3\t100.00\n", buf.String())
	assert.Len(t, rep.Counts, 2)
}
