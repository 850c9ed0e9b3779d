package filter

import (
	"fmt"
	"time"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Position   int // -1 if position is unknown
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated against a bar
	EvaluationError struct {
		Expression string
		Datetime   string
		Time       time.Time // zero when Datetime does not parse
		Reason     string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("compilation error at position %d in '%s': %s", e.Position, e.Expression, e.Reason)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	bar := e.Datetime
	if !e.Time.IsZero() {
		bar = e.Time.Format(time.DateTime)
	}
	if e.Err != nil {
		return fmt.Sprintf("evaluation error for filter '%s' on bar '%s': %s: %v", e.Expression, bar, e.Reason, e.Err)
	}
	return fmt.Sprintf("evaluation error for filter '%s' on bar '%s': %s", e.Expression, bar, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
