package item

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered items",
	Long:    `List every registered item in registry order.`,
	Example: `  # List items
  snapkeep item list

  # Output as JSON
  snapkeep item list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}
	items := s.Engine.Items()

	if listJSON {
		return cmdutil.WriteJSON(w, items)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No items registered.")
		fmt.Fprintln(w, "Run: snapkeep item add <name> <path>")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tENABLED\tGROUP\tSOURCE\tBACKUP ROOT")
	for _, it := range items {
		enabled := cmdutil.Green("yes")
		if !it.Enabled {
			enabled = cmdutil.Gray("no")
		}
		group := it.Group
		if group == "" {
			group = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.Name, enabled, group, it.SourcePath, it.BackupRoot)
	}
	return tw.Flush()
}
