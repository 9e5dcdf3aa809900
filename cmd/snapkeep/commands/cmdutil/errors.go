package cmdutil

import (
	"github.com/thoreinstein/snapkeep/internal/errors"
)

// RegistryError attaches exit codes and suggestions to errors from
// registry edits.
func RegistryError(err error) error {
	var exitErr *errors.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, errors.ErrInvalidConfig):
		return errors.NewConfigError(err)
	case errors.IsAny(err, errors.ErrNotFound, errors.ErrInvalidSelection, errors.ErrMissingName):
		return errors.NewUserError(err, "Run 'snapkeep item list' or 'snapkeep group list'")
	case errors.Is(err, errors.ErrIOFailure):
		return errors.NewSystemError(err, "Check permissions on the registry file")
	default:
		return err
	}
}
