package clifdict

import (
	"errors"
	"io/fs"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	cl, err := differ.Diff(oldDict, newDict)
//	if errors.Is(err, clifdict.ErrInvalidDictionary) {
//	    // Precondition violation: the input document breaks an invariant
//	}
var (
	// ErrInvalidDictionary indicates an input document that does not satisfy
	// the Dictionary invariants (wrong shape, duplicate variable names within
	// a table). This is fatal: no output is written.
	ErrInvalidDictionary = errors.New("invalid dictionary")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates an input path is missing or unreadable.
	ErrInputNotFound = errors.New("input not found")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidDictionary):
		return ExitConfigError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputNotFound):
		return ExitInputError
	case errors.Is(err, fs.ErrNotExist):
		return ExitInputError
	case errors.Is(err, fs.ErrPermission):
		return ExitInputError
	}

	// Cobra reports argument and flag misuse as plain errors
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown command") ||
		(strings.Contains(errStr, "accepts") && strings.Contains(errStr, "arg")) {
		return ExitUsageError
	}

	return ExitGeneralError
}
