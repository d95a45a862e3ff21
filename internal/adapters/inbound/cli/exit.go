package cli

import (
	"errors"
	"fmt"
)

// Process exit statuses.
const (
	ExitIdentical = 0
	ExitChanged   = 1
	ExitFailure   = 2
)

// ExitError carries an exit status out of a command. Err is nil when the
// status itself is the result, as with ExitChanged.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by Execute to a process exit status.
// Errors without an explicit status, such as bad flags, are failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitIdentical
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

func failure(err error) error {
	return &ExitError{Code: ExitFailure, Err: err}
}
