package cli

import (
	"errors"

	"github.com/yaklabco/mdlinker/pkg/lint"
	"github.com/yaklabco/mdlinker/pkg/runner"
)

// Exit codes for mdlinker.
const (
	// ExitSuccess indicates the vault is clean.
	ExitSuccess = 0

	// ExitFindings indicates the run completed and reported findings.
	ExitFindings = 1

	// ExitError indicates a configuration error, an I/O error, or pages
	// that could not be checked.
	ExitError = 2
)

// ErrFindingsReported is returned when a run reports unsuppressed findings.
// It only selects the exit code and is not logged.
var ErrFindingsReported = errors.New("findings reported")

// ErrPagesFailed is returned when some files could not be read, parsed or checked.
var ErrPagesFailed = errors.New("some pages could not be checked")

// ExitCodeFromResult determines the exit status of a completed run.
// Failures take precedence over findings.
func ExitCodeFromResult(files *runner.Result, report *lint.Report) int {
	if files.HasErrors() || report.HasFailures() {
		return ExitError
	}
	if report.HasErrors() {
		return ExitFindings
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFindingsReported):
		return ExitFindings
	default:
		return ExitError
	}
}
