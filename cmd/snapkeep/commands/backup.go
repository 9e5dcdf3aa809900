package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

var backupScope cmdutil.ScopeFlags

func init() {
	backupScope.Register(backupCmd, "back up")
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup [item]",
	Short: "Take a snapshot of an item, a group, or every enabled item",
	Long: `Copy the source of one or more registered items into a new
timestamped snapshot under the item's backup root.

A named item is backed up even when it is disabled. With --all or --group
only enabled items are selected, and a source that does not exist is
reported as skipped rather than failed.`,
	Example: `  # Back up a single item
  snapkeep backup game-cfg

  # Back up every enabled item
  snapkeep backup --all

  # Back up the enabled members of a group
  snapkeep backup --group games

  See Also: snapkeep restore, snapkeep snapshots, snapkeep prune`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := backupScope.Resolve(args)
		if err != nil {
			return err
		}
		return runBackupWithWriter(cmd.Context(), cmd.OutOrStdout(), target, backupScope.Options())
	},
}

func runBackupWithWriter(ctx context.Context, w io.Writer, target cmdutil.Target, opts engine.GroupOptions) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}

	if target.Single() {
		snap, err := s.Engine.Backup(ctx, target.Item)
		if err != nil {
			return backupError(err, target.Item)
		}
		fmt.Fprintf(w, "%s %s -> %s\n", cmdutil.Green("✓"), target.Item, snap.Path)
		return nil
	}

	var report *engine.Report
	if target.Scope.IsGroup() {
		report, err = s.Engine.BackupGroup(ctx, target.Scope.Group, opts)
	} else {
		report, err = s.Engine.BackupAll(ctx)
	}
	if err != nil {
		return scopeError(err)
	}
	return cmdutil.PrintReport(w, report)
}

func backupError(err error, item string) error {
	switch {
	case errors.Is(err, snapshot.ErrNestedRoot):
		return errors.NewUserError(err, "Register the item again with a --root outside its source")
	case errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, fmt.Sprintf("Check the source path of %q with 'snapkeep item list'", item))
	case errors.Is(err, errors.ErrIOFailure):
		return errors.NewSystemError(err, "Check permissions and free space on the backup root")
	default:
		return err
	}
}
