package table

import "fmt"

// InputError reports an unusable input table. It is fatal for a run.
type InputError struct {
	Path string
	// Column is set when a required column is missing.
	Column string
	Err    error
}

func (e *InputError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("input %s: missing required column %q", e.Path, e.Column)
	}
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
