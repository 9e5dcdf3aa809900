package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrMissingName indicates a required name field is missing.
	ErrMissingName = crdb.New("name is required")

	// ErrNotFound indicates a source path or snapshot does not exist.
	ErrNotFound = crdb.New("not found")

	// ErrIOFailure indicates the storage layer failed a copy, remove or mkdir.
	ErrIOFailure = crdb.New("i/o failure")

	// ErrInvalidSelection indicates a name or index does not resolve to an
	// existing item, group or snapshot.
	ErrInvalidSelection = crdb.New("invalid selection")

	// ErrUnconfirmed indicates a destructive bulk operation was attempted
	// without the confirmation token.
	ErrUnconfirmed = crdb.New("operation not confirmed")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// Re-exported helpers from github.com/cockroachdb/errors.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Errorf = crdb.Errorf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Mark   = crdb.Mark
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Join   = crdb.Join
)

// IOError describes a failed storage operation together with the paths it
// touched. It matches [ErrIOFailure] under [Is].
type IOError struct {
	// Op names the failed operation ("copy", "remove", "mkdir", "read").
	Op string

	// Src is the path being read, if any.
	Src string

	// Dst is the path being written or removed, if any.
	Dst string

	// Err is the underlying error.
	Err error
}

// NewIOError wraps err as an IOError. It returns nil when err is nil.
func NewIOError(op, src, dst string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Src: src, Dst: dst, Err: err}
}

func (e *IOError) Error() string {
	switch {
	case e.Src != "" && e.Dst != "":
		return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Src, e.Dst, e.Err)
	case e.Dst != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Dst, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Src, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIOFailure.
func (e *IOError) Is(target error) bool {
	return target == ErrIOFailure
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: snapkeep config list",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor returns the process exit code for err.
// An *ExitError anywhere in the chain decides; otherwise selection and
// confirmation failures are user errors and everything else is a system error.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	if crdb.IsAny(err, ErrInvalidSelection, ErrUnconfirmed, ErrInvalidConfig, ErrMissingName) {
		return ExitUser
	}
	return ExitSystem
}
