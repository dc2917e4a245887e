package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vertti/bananacheck/pkg/suite"
)

// Process exit codes.
const (
	// ExitSuccess indicates every check passed.
	ExitSuccess = 0

	// ExitFailure indicates one or more checks failed.
	ExitFailure = 1

	// ExitConfigError indicates invalid flags, config file or settings.
	ExitConfigError = 2

	// ExitEnvError indicates the report could not be saved or read, or
	// another fault outside the checks.
	ExitEnvError = 3
)

// configError marks errors that should exit with ExitConfigError.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, suite.ErrChecksFailed) {
		return ExitFailure
	}
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	return ExitEnvError
}

// usageArgs wraps a positional argument validator so its errors exit with
// ExitConfigError.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &configError{err: err}
		}
		return nil
	}
}
