package reconcile

import "context"

// Source loads the records of one dataset.
// Implementations live next to the input format they read (see core/table).
type Source interface {
	// Name returns a human-readable label for logs and errors (usually the file path).
	Name() string

	// Load reads every record of the dataset. A missing input or a missing required
	// column must be reported as an error before any record is returned.
	Load(ctx context.Context) ([]Record, error)
}

// StaticSource serves records that are already in memory.
type StaticSource struct {
	Label   string
	Records []Record
}

// Name returns the label of the source.
func (s StaticSource) Name() string {
	return s.Label
}

// Load returns the in-memory records.
func (s StaticSource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Records, nil
}
