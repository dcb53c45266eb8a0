package cli

import (
	"errors"

	"github.com/simp-lee/hrdesk/internal/domain"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func (e *cliError) Unwrap() error { return e.err }

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitUsage      = 3
	exitNotFound   = 4
	exitConfig     = 5
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// classify picks an exit code for an error coming back from a resource.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsNotFound(err):
		return withCode(exitNotFound, err)
	case domain.IsValidation(err):
		return withCode(exitValidation, err)
	default:
		return withCode(exitFailure, err)
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitFailure
}
