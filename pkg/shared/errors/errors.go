package errors

import (
	"fmt"
)

// NotFoundError indicates the scan target path is missing or not a directory.
// It is the only fatal per-target condition.
type NotFoundError struct {
	Path   string
	Reason string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("target path %q: %s", e.Path, e.Reason)
}

// NewNotFoundError creates a NotFoundError for the given path.
func NewNotFoundError(path, reason string) error {
	return &NotFoundError{Path: path, Reason: reason}
}

// PatternError indicates a malformed rule in a rule table. It surfaces at
// compile time, before any file is read, because it is a defect in the tool
// rather than in the target repository.
type PatternError struct {
	RuleID  string
	Pattern string
	Err     error
}

// Error implements the error interface for PatternError.
func (e *PatternError) Error() string {
	return fmt.Sprintf("rule %q: invalid pattern %q: %v", e.RuleID, e.Pattern, e.Err)
}

// Unwrap returns the underlying compile error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// NewPatternError creates a PatternError for the given rule and pattern.
func NewPatternError(ruleID, pattern string, err error) error {
	return &PatternError{RuleID: ruleID, Pattern: pattern, Err: err}
}

// CommandError represents a command failure carrying the process exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
}

// Error implements the error interface, returning the wrapped message.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError creates a new CommandError encapsulating the error message and exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
	}
}
