package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
)

var (
	pruneScope cmdutil.ScopeFlags
	pruneKeep  int
)

func init() {
	pruneScope.Register(pruneCmd, "prune")
	pruneCmd.Flags().IntVarP(&pruneKeep, "keep", "k", 0, "number of newest snapshots to keep")
	_ = pruneCmd.MarkFlagRequired("keep")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune [item]",
	Short: "Delete old snapshots, keeping the newest N",
	Long: `Delete all but the newest --keep snapshots of one or more items.
With --keep 0 every snapshot is removed.

Set the retention config key to prune automatically after each backup.`,
	Example: `  # Keep the five newest snapshots of an item
  snapkeep prune game-cfg --keep 5

  # Prune every enabled item
  snapkeep prune --all --keep 10

  See Also: snapkeep snapshots, snapkeep config`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := pruneScope.Resolve(args)
		if err != nil {
			return err
		}
		if pruneKeep < 0 {
			return errors.NewUserError(
				errors.Wrapf(errors.ErrInvalidSelection, "--keep must not be negative, got %d", pruneKeep),
				"Pass --keep 0 or more",
			)
		}
		return runPruneWithWriter(cmd.Context(), cmd.OutOrStdout(), target)
	},
}

func runPruneWithWriter(ctx context.Context, w io.Writer, target cmdutil.Target) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}

	if target.Single() {
		removed, err := s.Engine.PruneItem(ctx, target.Item, pruneKeep)
		if err != nil {
			return itemError(err)
		}
		if len(removed) == 0 {
			fmt.Fprintf(w, "Nothing to prune for %s.\n", target.Item)
			return nil
		}
		for _, snap := range removed {
			fmt.Fprintf(w, "%s %s\n", cmdutil.Gray("removed"), snap.ID)
		}
		return nil
	}

	var report *engine.Report
	report, err = s.Engine.Prune(ctx, target.Scope, pruneKeep, pruneScope.Options())
	if err != nil {
		return scopeError(err)
	}
	return cmdutil.PrintReport(w, report)
}
