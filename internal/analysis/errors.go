package analysis

import "fmt"

// ValidationError reports malformed or degenerate input: fewer than two
// points for the correlation, a constant series, or duplicate dates in the
// price sequence.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// ComputationError reports a numeric failure during correlation that was
// not already caught by input validation.
type ComputationError struct {
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed: %s", e.Reason)
}

// UpstreamError reports a failure in an external collaborator (price or
// name source). The pipeline does not retry or interpret partial data.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s source failed: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
