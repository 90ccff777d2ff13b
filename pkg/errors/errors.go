package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents an external command that ran but exited non-zero.
// Output carries the command's captured error stream.
type ExecutionError struct {
	Stage  string
	Output string
	Err    error
}

// NewExecutionError constructs an ExecutionError for the given stage.
func NewExecutionError(stage, output string, err error) error {
	return &ExecutionError{Stage: stage, Output: output, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Output != "" {
		return fmt.Sprintf("stage %s failed: %v: %s", e.Stage, e.Err, e.Output)
	}
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LaunchError indicates a tool could not be started at all, or an in-process
// call failed before producing an exit status.
type LaunchError struct {
	Stage string
	Err   error
}

// NewLaunchError constructs a LaunchError for the given stage.
func NewLaunchError(stage string, err error) error {
	return &LaunchError{Stage: stage, Err: err}
}

func (e *LaunchError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("stage %s could not run: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying error.
func (e *LaunchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CapabilityError records a single failed capability probe. It is always
// collected, never propagated as a pipeline halt.
type CapabilityError struct {
	Capability string
	Err        error
}

// NewCapabilityError constructs a CapabilityError for the named capability.
func NewCapabilityError(capability string, err error) error {
	return &CapabilityError{Capability: capability, Err: err}
}

func (e *CapabilityError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("capability %s unavailable: %v", e.Capability, e.Err)
}

// Unwrap exposes the underlying error.
func (e *CapabilityError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
