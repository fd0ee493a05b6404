package schedule

import "fmt"

// ExtractionError signals that an invariant the extractor expected (e.g.
// exactly one vehicle assigned per route) was violated -- this is a bug
// in the model, not a recoverable solve outcome, and is fatal to the
// request.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("schedule extraction: %s", e.Reason)
}

func extractionErrorf(format string, args ...any) error {
	return &ExtractionError{Reason: fmt.Sprintf(format, args...)}
}
