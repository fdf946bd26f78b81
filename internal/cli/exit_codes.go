package cli

import "fmt"

// Exit codes for the relnote CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitFailure indicates generation, extraction, or retrieval failed.
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3

	// ExitConfigError indicates the configuration failed to load or
	// validate (e.g. a rule references an undeclared category).
	ExitConfigError = 4
)

// ExitError carries an explicit exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the wrapped error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
