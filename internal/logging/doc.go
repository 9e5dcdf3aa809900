// Package logging provides structured logging for snapkeep using slog.
//
// The package supports both text and JSON output formats, verbosity-driven
// levels (including [LevelTrace] for per-file copy events), and helpers for
// testing. The logger chosen by the CLI travels on the command context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Info("backup complete", "item", name)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely.
package logging
