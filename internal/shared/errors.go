// Package shared holds the error taxonomy common to all client modules.
package shared

import "fmt"

// Validation reasons reported by the form controller.
const (
	ReasonEmpty       = "empty"
	ReasonMissingName = "missing_name"
)

// FetchError indicates a catalog or list load failed. The operation that
// depends on the data must be aborted; no partial state is shown.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError indicates a client-detected problem that blocks submission
// before any backend call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "at least one complete item is required"
	case ReasonMissingName:
		return "counterparty name is required"
	default:
		return "validation failed: " + e.Reason
	}
}

// SubmissionError indicates the backend rejected a create call or the network
// failed mid-flight. The form stays open so the user can retry.
type SubmissionError struct {
	Detail string
	Err    error
}

func (e *SubmissionError) Error() string { return e.Detail }

func (e *SubmissionError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
