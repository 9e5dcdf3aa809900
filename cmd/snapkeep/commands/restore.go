package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/cli/prompt"
	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

var (
	restoreScope       cmdutil.ScopeFlags
	restoreSnapshot    string
	restoreInteractive bool
	restoreYes         bool
)

func init() {
	restoreScope.Register(restoreCmd, "restore")
	restoreCmd.Flags().StringVarP(&restoreSnapshot, "snapshot", "s", "",
		"snapshot id to restore (default: latest)")
	restoreCmd.Flags().BoolVarP(&restoreInteractive, "interactive", "i", false,
		"choose the snapshot to restore from a list")
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false,
		"skip the confirmation prompt")
	restoreCmd.MarkFlagsMutuallyExclusive("snapshot", "interactive")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [item]",
	Short: "Restore an item, a group, or every enabled item from a snapshot",
	Long: `Replace the live source of one or more items with the contents of a
snapshot. Whatever is at the source path is removed first.

A single item restores its latest snapshot unless --snapshot or
--interactive picks another one. Bulk restores always use each item's
latest snapshot. Every restore asks for confirmation unless --yes is
given. Items without snapshots are reported as skipped.

The source is cleared before the snapshot is copied in. If copying fails
midway the source is left absent or partially written; the snapshot itself
is never modified, so the restore can simply be repeated.`,
	Example: `  # Restore the latest snapshot of an item
  snapkeep restore game-cfg

  # Restore a specific snapshot
  snapkeep restore game-cfg --snapshot game-cfg_1700000000

  # Pick a snapshot interactively
  snapkeep restore game-cfg -i

  # Restore every enabled item without prompting
  snapkeep restore --all --yes

  See Also: snapkeep snapshots, snapkeep backup`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := restoreScope.Resolve(args)
		if err != nil {
			return err
		}
		if !target.Single() && (restoreSnapshot != "" || restoreInteractive) {
			return errors.NewUserError(
				errors.Wrap(errors.ErrInvalidSelection, "--snapshot and --interactive need a single item"),
				"Name the item to restore",
			)
		}
		return runRestoreWithWriter(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), target)
	},
}

func runRestoreWithWriter(ctx context.Context, in io.Reader, w io.Writer, target cmdutil.Target) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}

	if target.Single() {
		id := restoreSnapshot
		if restoreInteractive {
			id, err = pickSnapshot(s.Engine, in, w, target.Item)
			if err != nil {
				return err
			}
		}
		what := "the latest snapshot"
		if id != "" {
			what = id
		}
		if _, err := cmdutil.Confirm(in, w, restoreYes,
			fmt.Sprintf("Replace %s with %s?", target.Item, what)); err != nil {
			return err
		}

		res, err := s.Engine.Restore(ctx, target.Item, id)
		if err != nil {
			return restoreError(err)
		}
		fmt.Fprintf(w, "%s %s <- %s (%s)\n", cmdutil.Green("✓"), res.To, res.SnapshotID, res.Shape)
		return nil
	}

	confirm, err := cmdutil.Confirm(in, w, restoreYes,
		fmt.Sprintf("Restore %s? Live data at each source will be replaced.", target.Scope))
	if err != nil {
		return err
	}

	var report *engine.Report
	if target.Scope.IsGroup() {
		report, err = s.Engine.RestoreGroup(ctx, target.Scope.Group, confirm, restoreScope.Options())
	} else {
		report, err = s.Engine.RestoreAll(ctx, confirm)
	}
	if err != nil {
		return scopeError(err)
	}
	return cmdutil.PrintReport(w, report)
}

// pickSnapshot lets the user choose one of the item's snapshots.
func pickSnapshot(eng *engine.Engine, in io.Reader, w io.Writer, item string) (string, error) {
	snaps, err := eng.Snapshots(item)
	if err != nil {
		return "", itemError(err)
	}
	choice, err := prompt.PickSnapshot(in, w, item, snaps)
	if err != nil {
		switch {
		case errors.Is(err, prompt.ErrSelectionCancelled):
			return "", errors.NewUserError(err, "")
		case errors.Is(err, prompt.ErrNoSnapshots):
			return "", errors.NewUserError(err, fmt.Sprintf("Run: snapkeep backup %s", item))
		default:
			return "", errors.NewUserError(err, "Enter the number shown next to a snapshot")
		}
	}
	return choice.ID, nil
}

func restoreError(err error) error {
	switch {
	case errors.Is(err, snapshot.ErrNestedRoot):
		return errors.NewUserError(err, "Register the item again with a --root outside its source")
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrInvalidSelection):
		return itemError(err)
	case errors.Is(err, errors.ErrIOFailure):
		return errors.NewSystemError(err, "Check permissions on the source path and the snapshot")
	default:
		return err
	}
}
