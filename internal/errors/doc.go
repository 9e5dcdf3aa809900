// Package errors provides the error taxonomy and CLI exit conventions for snapkeep.
//
// The package re-exports the helpers of github.com/cockroachdb/errors so that
// callers import a single errors package, and it defines the sentinels every
// engine operation classifies its failures with:
//
//   - [ErrNotFound]: a source path or snapshot does not exist
//   - [ErrIOFailure]: a copy, remove or mkdir failed; always carried by [*IOError]
//   - [ErrInvalidSelection]: an item, group or snapshot name does not resolve
//   - [ErrUnconfirmed]: a destructive bulk operation ran without confirmation
//
// Sentinels are matched with [Is]:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // skip this item
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid selection, missing confirmation, config)
//   - ExitSystem (2): System-related error (I/O, permissions, missing data)
//
// [ExitCodeFor] maps any error to one of these codes.
package errors
