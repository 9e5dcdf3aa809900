package commands

import (
	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
)

// scopeError attaches a suggestion to errors raised while selecting items.
func scopeError(err error) error {
	switch {
	case errors.Is(err, engine.ErrGroupDisabled):
		return errors.NewUserError(err, "Pass --force to operate on a disabled group")
	case errors.Is(err, errors.ErrInvalidSelection):
		return errors.NewUserError(err, "Run 'snapkeep group list' to see the defined groups")
	default:
		return err
	}
}

// itemError attaches a suggestion to errors about a single named item.
func itemError(err error) error {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "Run 'snapkeep item list' to see the registered items")
	case errors.Is(err, errors.ErrInvalidSelection):
		return errors.NewUserError(err, "Run 'snapkeep snapshots <item>' to see valid snapshot ids")
	default:
		return err
	}
}
