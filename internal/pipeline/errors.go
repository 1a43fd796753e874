package pipeline

import "fmt"

// PersistenceError reports a failure to persist an already-computed result.
// The extraction itself succeeded; callers receive both the result and this
// error and decide whether persistence failure is fatal for them.
type PersistenceError struct {
	Filename string
	Cause    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist result for %s: %v", e.Filename, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// DocumentError tags a per-item batch failure with the document it came
// from, so a batch report can name the offending file.
type DocumentError struct {
	Filename string
	Err      error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
