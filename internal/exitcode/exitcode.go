package exitcode

import (
	"os"
	"strings"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates a client-side validation failure
	ValidationError = 3

	// AuthError indicates an authentication or authorization failure
	AuthError = 4

	// NetworkError indicates a network connectivity issue
	NetworkError = 5

	// StorageError indicates a secure token store failure
	StorageError = 6

	// Interrupted indicates the operation was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to the appropriate exit code using the
// error code carried in its chain.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	code := string(errors.CodeOf(err))
	switch {
	case strings.HasPrefix(code, "VALIDATE-"):
		return ValidationError
	case strings.HasPrefix(code, "AUTH-"):
		return AuthError
	case strings.HasPrefix(code, "NET-"):
		return NetworkError
	case strings.HasPrefix(code, "STORE-"):
		return StorageError
	default:
		return GeneralError
	}
}
