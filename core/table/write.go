package table

import (
	"encoding/csv"
	"io"
	"strconv"

	"id-reconciler/core/reconcile"
	"id-reconciler/core/report"
	"id-reconciler/core/resolve"
)

// Snapshot table names.
const (
	NameReconciliation      = "reconciliation.tsv"
	NameUnmatchedAccessions = "unmatched_accessions.tsv"
	NameClassification      = "classification.tsv"
	NameAnnotated           = "annotated.tsv"
	NameSummary             = "summary.tsv"
)

// SourceReference labels reference rows of the reconciliation table.
const SourceReference = "Reference"

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

func flush(cw *csv.Writer) error {
	cw.Flush()
	return cw.Error()
}

// WriteReconciliation writes the reference pairs followed by the
// predicted-only pairs.
func WriteReconciliation(w io.Writer, result *reconcile.Result) error {
	cw := newWriter(w)
	if err := cw.Write([]string{ColumnAccession, ColumnIdentifier, ColumnSource}); err != nil {
		return err
	}
	for _, p := range result.ReferencePairs {
		if err := cw.Write([]string{p.Accession, p.Identifier, SourceReference}); err != nil {
			return err
		}
	}
	for _, p := range result.UnmatchedPairs {
		if err := cw.Write([]string{p.Accession, p.Identifier, report.SourcePredictedUnique}); err != nil {
			return err
		}
	}
	return flush(cw)
}

// WriteUnmatchedAccessions writes one unmatched accession per row.
func WriteUnmatchedAccessions(w io.Writer, accessions []string) error {
	cw := newWriter(w)
	if err := cw.Write([]string{ColumnAccession}); err != nil {
		return err
	}
	for _, acc := range accessions {
		if err := cw.Write([]string{acc}); err != nil {
			return err
		}
	}
	return flush(cw)
}

// WriteClassifications writes one row per classification, in the given order.
func WriteClassifications(w io.Writer, classifications []resolve.Classification) error {
	cw := newWriter(w)
	if err := cw.Write([]string{ColumnIdentifier, ColumnNamespace, ColumnCanonicalID}); err != nil {
		return err
	}
	for _, c := range classifications {
		if err := cw.Write([]string{c.Identifier, string(c.Namespace), c.CanonicalID}); err != nil {
			return err
		}
	}
	return flush(cw)
}

// WriteAnnotated writes the unmatched pairs joined with their classification.
func WriteAnnotated(w io.Writer, rows []report.Row) error {
	cw := newWriter(w)
	if err := cw.Write([]string{ColumnAccession, ColumnIdentifier, ColumnNamespace, ColumnCanonicalID, ColumnSource}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Accession, r.Identifier, string(r.Namespace), r.CanonicalID, r.Source}); err != nil {
			return err
		}
	}
	return flush(cw)
}

// WriteSummary writes the frequency table followed by the TOTAL row.
func WriteSummary(w io.Writer, rep *report.Report) error {
	cw := newWriter(w)
	if err := cw.Write([]string{"namespace", "count", "percentage"}); err != nil {
		return err
	}
	for _, c := range append(append([]report.Count{}, rep.Counts...), rep.Total) {
		if err := cw.Write([]string{c.Namespace, strconv.Itoa(c.Count), report.FormatPercentage(c.Percentage)}); err != nil {
			return err
		}
	}
	return flush(cw)
}
