package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
)

var snapshotsJSON bool

func init() {
	snapshotsCmd.Flags().BoolVar(&snapshotsJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(snapshotsCmd)
}

var snapshotsCmd = &cobra.Command{
	Use:     "snapshots <item>",
	Aliases: []string{"ls"},
	Short:   "List the snapshots of an item",
	Long: `List the snapshots of an item, newest first. The first entry is the one
restored when no snapshot is named.`,
	Example: `  # List snapshots
  snapkeep snapshots game-cfg

  # Output as JSON
  snapkeep snapshots game-cfg --json

  See Also: snapkeep restore, snapkeep prune`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSnapshotsWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runSnapshotsWithWriter(ctx context.Context, w io.Writer, item string) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}
	snaps, err := s.Engine.Snapshots(item)
	if err != nil {
		return itemError(err)
	}

	if snapshotsJSON {
		return cmdutil.WriteJSON(w, snaps)
	}

	if len(snaps) == 0 {
		fmt.Fprintf(w, "No snapshots found for %s.\n", item)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTAKEN\tMODIFIED")
	for i, snap := range snaps {
		id := snap.ID
		if i == 0 {
			id = cmdutil.Bold(id)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", id, cmdutil.FormatTime(snap.Timestamp), cmdutil.FormatTime(snap.ModTime))
	}
	return tw.Flush()
}
