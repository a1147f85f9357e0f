package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"id-reconciler/core/classify"
	"id-reconciler/core/normalize"
	"id-reconciler/core/reconcile"
	"id-reconciler/core/resolve"
)

// Default column names of the input tables.
const (
	ColumnAccession   = "accession"
	ColumnIdentifier  = "protein_id"
	ColumnNamespace   = "namespace"
	ColumnCanonicalID = "canonical_id"
	ColumnSource      = "source"
)

// ErrMissingColumn is wrapped by InputError when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// header reads the header row and returns the index of every required column.
func header(cr *csv.Reader, path string, required ...string) (map[string]int, error) {
	row, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &InputError{Path: path, Err: errors.New("empty table, header row required")}
		}
		return nil, &InputError{Path: path, Err: fmt.Errorf("failed to read header: %w", err)}
	}

	index := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, &InputError{Path: path, Column: col, Err: ErrMissingColumn}
		}
	}
	return index, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// ReadRecords reads the accession and protein_id columns of a dataset table.
// path only labels errors.
func ReadRecords(r io.Reader, path string, dataset reconcile.Dataset) ([]reconcile.Record, error) {
	cr := newReader(r)
	index, err := header(cr, path, ColumnAccession, ColumnIdentifier)
	if err != nil {
		return nil, err
	}
	accCol, idCol := index[ColumnAccession], index[ColumnIdentifier]

	var records []reconcile.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InputError{Path: path, Err: fmt.Errorf("failed to read row: %w", err)}
		}
		records = append(records, reconcile.Record{
			Accession:  field(row, accCol),
			Identifier: field(row, idCol),
			Dataset:    dataset,
		})
	}
	return records, nil
}

// FileSource loads a dataset from a TSV file.
type FileSource struct {
	Path    string
	Dataset reconcile.Dataset
}

var _ reconcile.Source = FileSource{}

// Name returns the file path.
func (s FileSource) Name() string {
	return s.Path
}

// Load reads the file.
func (s FileSource) Load(ctx context.Context) ([]reconcile.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &InputError{Path: s.Path, Err: err}
	}
	defer f.Close()
	return ReadRecords(f, s.Path, s.Dataset)
}

// CheckColumns verifies that a TSV file exists and carries the dataset columns,
// without reading its rows.
func CheckColumns(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &InputError{Path: path, Err: err}
	}
	defer f.Close()
	_, err = header(newReader(f), path, ColumnAccession, ColumnIdentifier)
	return err
}

// ReadClassifications reads a classification table written by an earlier run.
// Rows classified as Error are skipped so that failed identifiers are retried.
// Identifiers are normalized to the keys the resolver caches under.
func ReadClassifications(r io.Reader, path string) ([]resolve.Classification, error) {
	cr := newReader(r)
	index, err := header(cr, path, ColumnIdentifier, ColumnNamespace)
	if err != nil {
		return nil, err
	}
	idCol, nsCol := index[ColumnIdentifier], index[ColumnNamespace]
	canonCol, hasCanon := index[ColumnCanonicalID]

	var out []resolve.Classification
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InputError{Path: path, Err: fmt.Errorf("failed to read row: %w", err)}
		}

		id := normalize.Identifier(field(row, idCol))
		if id == "" {
			continue
		}
		ns, ok := classify.ParseNamespace(field(row, nsCol))
		if !ok || ns == classify.Error {
			continue
		}

		cls := resolve.Classification{Identifier: id, Namespace: ns, Outcome: resolve.Found}
		if hasCanon {
			cls.CanonicalID = strings.TrimSpace(field(row, canonCol))
		}
		if ns == classify.Unknown && cls.CanonicalID == "" {
			cls.Outcome = resolve.NotFound
		}
		out = append(out, cls)
	}
	return out, nil
}

// CountColumn counts the values of column, trimmed. Rows whose identifier
// column is present but blank are skipped.
func CountColumn(r io.Reader, path, column string) (map[string]int, error) {
	cr := newReader(r)
	index, err := header(cr, path, column)
	if err != nil {
		return nil, err
	}
	col := index[column]
	idCol, hasID := index[ColumnIdentifier]

	counts := make(map[string]int)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InputError{Path: path, Err: fmt.Errorf("failed to read row: %w", err)}
		}
		if hasID && col != idCol && strings.TrimSpace(field(row, idCol)) == "" {
			continue
		}
		counts[strings.TrimSpace(field(row, col))]++
	}
	return counts, nil
}
