package cmd

import (
	stderrors "errors"

	"github.com/kubeforge/cli/internal/errors"
)

// Exit codes for the kforge CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitParseError indicates a resource fragment could not be parsed.
	ExitParseError = 2

	// ExitConfigurationError indicates invalid project configuration.
	ExitConfigurationError = 3

	// ExitEnrichmentError indicates an enricher stage failed.
	ExitEnrichmentError = 4

	// ExitIOError indicates a filesystem read or write failure.
	ExitIOError = 5
)

// ExitCodeName returns the name of an exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitParseError:
		return "Parse Error"
	case ExitConfigurationError:
		return "Configuration Error"
	case ExitEnrichmentError:
		return "Enrichment Error"
	case ExitIOError:
		return "IO Error"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the exit code for an error. An explicit
// ExitError wins; otherwise the failure category decides.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *errors.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case stderrors.Is(err, errors.ErrParse):
		return ExitParseError
	case stderrors.Is(err, errors.ErrConfiguration):
		return ExitConfigurationError
	case stderrors.Is(err, errors.ErrEnrichment):
		return ExitEnrichmentError
	case stderrors.Is(err, errors.ErrIO):
		return ExitIOError
	default:
		return ExitGeneralError
	}
}
