package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/engine"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status [item]",
	Short: "Compare live sources with their latest snapshots",
	Long: `Show whether each item's source exists, how many snapshots it has, and
whether the latest snapshot still matches the live data.

Contents are compared by xxh3 fingerprints of every file.`,
	Example: `  # Status of every item
  snapkeep status

  # Details for one item
  snapkeep status game-cfg

  See Also: snapkeep backup, snapkeep snapshots`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatusWithWriter(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

func runStatusWithWriter(ctx context.Context, w io.Writer, args []string) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}

	var statuses []engine.ItemStatus
	if len(args) == 1 {
		st, err := s.Engine.Status(args[0])
		if err != nil {
			return itemError(err)
		}
		statuses = []engine.ItemStatus{*st}
	} else {
		statuses, err = s.Engine.StatusAll()
		if err != nil {
			return err
		}
	}

	if statusJSON {
		return cmdutil.WriteJSON(w, statuses)
	}

	if len(statuses) == 0 {
		fmt.Fprintln(w, "No items registered.")
		fmt.Fprintln(w, "Run: snapkeep item add <name> <path>")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tSTATE\tSNAPSHOTS\tLATEST")
	for _, st := range statuses {
		latest := "-"
		if st.Latest != nil {
			latest = cmdutil.FormatTime(st.Latest.Timestamp)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", st.Item.Name, state(st), st.SnapshotCount, latest)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(args) == 1 {
		printDiff(w, statuses[0])
	}
	return nil
}

func state(st engine.ItemStatus) string {
	switch {
	case !st.SourceExists:
		return cmdutil.Red("missing")
	case st.SnapshotCount == 0:
		return cmdutil.Yellow("never backed up")
	case st.UpToDate():
		return cmdutil.Green("up to date")
	case st.Compared:
		return cmdutil.Yellow("changed")
	default:
		return cmdutil.Gray("unknown")
	}
}

func printDiff(w io.Writer, st engine.ItemStatus) {
	if !st.Compared || st.Diff.Equal() {
		return
	}
	section := func(label string, names []string) {
		if len(names) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s:\n  %s\n", label, strings.Join(names, "\n  "))
	}
	section("Added", st.Diff.Added)
	section("Removed", st.Diff.Removed)
	section("Changed", st.Diff.Changed)
}
