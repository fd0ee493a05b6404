package dataset

import "fmt"

// ValidationError is returned by Validate when the dataset fails one of
// its structural invariants. It is always fatal to the request that
// produced it, never to the host process.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset validation: %s", e.Reason)
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
