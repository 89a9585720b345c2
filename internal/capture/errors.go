package capture

import "fmt"

// FailureKind classifies a per-candidate capture failure. Every kind is soft:
// the pipeline logs it and moves to the next candidate.
type FailureKind string

// Capture failure kinds.
const (
	FailureNavigationTimeout FailureKind = "navigation_timeout"
	FailureRegionNotFound    FailureKind = "region_not_found"
	FailureInvalidImage      FailureKind = "invalid_image"
	FailureComposition       FailureKind = "composition_error"
	// FailureCapture covers browser faults and save failures that do not fit
	// a narrower kind.
	FailureCapture FailureKind = "capture_error"
)

// Error is the tagged failure value returned by Engine.Capture. Callers
// branch on Kind instead of intercepting panics or sentinel chains.
type Error struct {
	Kind FailureKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("capture %s: %s", e.URL, e.Kind)
	}
	return fmt.Sprintf("capture %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}
