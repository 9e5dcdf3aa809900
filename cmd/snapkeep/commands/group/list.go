package group

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
	Short:   "List groups and their member counts",
	Example: `  snapkeep group list
  snapkeep group list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

// groupOutput is the JSON form of one group.
type groupOutput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Enabled     bool     `json:"enabled"`
	Members     []string `json:"members"`
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}

	members := make(map[string][]string)
	for _, it := range s.Engine.Items() {
		if it.Group != "" {
			members[it.Group] = append(members[it.Group], it.Name)
		}
	}

	groups := s.Engine.Groups()
	out := make([]groupOutput, 0, len(groups))
	for _, g := range groups {
		m := members[g.Name]
		if m == nil {
			m = []string{}
		}
		out = append(out, groupOutput{Name: g.Name, Description: g.Description, Enabled: g.Enabled, Members: m})
	}

	if listJSON {
		return cmdutil.WriteJSON(w, out)
	}

	if len(out) == 0 {
		fmt.Fprintln(w, "No groups defined.")
		fmt.Fprintln(w, "Run: snapkeep group add <name>")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tENABLED\tITEMS\tDESCRIPTION")
	for _, g := range out {
		enabled := cmdutil.Green("yes")
		if !g.Enabled {
			enabled = cmdutil.Gray("no")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", g.Name, enabled, len(g.Members), g.Description)
	}
	return tw.Flush()
}
