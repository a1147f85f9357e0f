package table

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"id-reconciler/core/classify"
	"id-reconciler/core/reconcile"
	"id-reconciler/core/resolve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	in := "\ufeffgc_length\taccession\tprotein_id\tgc_content\n" +
		"100\tBGC0000001.1\tAAB00001.1\t0.71\n" +
		"200\tBGC0000002.1|1|1-200\tWP_1.2\n" +
		"300\n"

	records, err := ReadRecords(strings.NewReader(in), "predicted.tsv", reconcile.Predicted)
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Record{
		{Accession: "BGC0000001.1", Identifier: "AAB00001.1", Dataset: reconcile.Predicted},
		{Accession: "BGC0000002.1|1|1-200", Identifier: "WP_1.2", Dataset: reconcile.Predicted},
		{Accession: "", Identifier: "", Dataset: reconcile.Predicted},
	}, records)
}

func TestReadRecords_MissingColumn(t *testing.T) {
	_, err := ReadRecords(strings.NewReader("accession\tlocus\nBGC1\tx\n"), "reference.tsv", reconcile.Reference)
	require.Error(t, err)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "reference.tsv", inputErr.Path)
	assert.Equal(t, ColumnIdentifier, inputErr.Column)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Equal(t, `input reference.tsv: missing required column "protein_id"`, err.Error())
}

func TestReadRecords_Empty(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(""), "empty.tsv", reconcile.Predicted)
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Empty(t, inputErr.Column)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mibig.tsv")
	require.NoError(t, os.WriteFile(path, []byte("accession\tprotein_id\nBGC01.3\tA\n"), 0o644))

	src := FileSource{Path: path, Dataset: reconcile.Reference}
	assert.Equal(t, path, src.Name())

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, reconcile.Reference, records[0].Dataset)

	missing := FileSource{Path: filepath.Join(dir, "nope.tsv")}
	_, err = missing.Load(context.Background())
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCheckColumns(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.tsv")
	bad := filepath.Join(dir, "bad.tsv")
	require.NoError(t, os.WriteFile(good, []byte("accession\tprotein_id\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("protein_id\n"), 0o644))

	assert.NoError(t, CheckColumns(good))

	var inputErr *InputError
	require.ErrorAs(t, CheckColumns(bad), &inputErr)
	assert.Equal(t, ColumnAccession, inputErr.Column)

	require.ErrorAs(t, CheckColumns(filepath.Join(dir, "missing.tsv")), &inputErr)
}

func TestReadClassifications(t *testing.T) {
	in := "protein_id\tnamespace\tcanonical_id\n" +
		"AAB1\tGenBank\tAAB1.2\n" +
		"foo\tUnknown\t\n" +
		"BAD\tError\t\n" +
		"\tRefSeq\t\n" +
		"odd\tSomething\t\n" +
		"WP_1\tRefSeq\t\n"

	got, err := ReadClassifications(strings.NewReader(in), "classification.tsv")
	require.NoError(t, err)
	assert.Equal(t, []resolve.Classification{
		{Identifier: "AAB1", Namespace: classify.GenBank, CanonicalID: "AAB1.2", Outcome: resolve.Found},
		{Identifier: "foo", Namespace: classify.Unknown, Outcome: resolve.NotFound},
		{Identifier: "WP_1", Namespace: classify.RefSeq, Outcome: resolve.Found},
	}, got)
}

func TestReadClassifications_NormalizesIdentifiers(t *testing.T) {
	in := "protein_id\tnamespace\tcanonical_id\n" +
		"WP_1.1\tRefSeq\t\n" +
		" AAB12345.2 \tGenBank\tAAB12345.2\n"

	got, err := ReadClassifications(strings.NewReader(in), "classification.tsv")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "WP_1", got[0].Identifier)
	assert.Equal(t, "AAB12345", got[1].Identifier)
	assert.Equal(t, "AAB12345.2", got[1].CanonicalID)
}

func TestReadClassifications_MissingColumn(t *testing.T) {
	_, err := ReadClassifications(strings.NewReader("protein_id\tcanonical_id\n"), "c.tsv")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, ColumnNamespace, inputErr.Column)
}

func TestCountColumn(t *testing.T) {
	in := "accession\tprotein_id\tnamespace\n" +
		"BGC1\tWP_1\tRefSeq\n" +
		"BGC1\tWP_2\t RefSeq \n" +
		"BGC2\t\t\n" +
		"BGC3\tfoo\t\n"

	counts, err := CountColumn(strings.NewReader(in), "annotated.tsv", ColumnNamespace)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"RefSeq": 2, "": 1}, counts)

	_, err = CountColumn(strings.NewReader(in), "annotated.tsv", "kind")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "kind", inputErr.Column)
}
