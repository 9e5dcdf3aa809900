package group

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

var (
	addDescription string
	addDisabled    bool
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "free-form description")
	addCmd.Flags().BoolVar(&addDisabled, "disabled", false, "create the group disabled")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a group",
	Example: `  snapkeep group add games --description "game configs"

  See Also:
    snapkeep item assign - Move an item into a group`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runAddWithWriter(ctx context.Context, w io.Writer, name string) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}
	g := registry.SyncGroup{
		Name:        name,
		Description: addDescription,
		Enabled:     !addDisabled,
	}
	if err := s.Engine.AddGroup(g); err != nil {
		return cmdutil.RegistryError(err)
	}
	fmt.Fprintf(w, "%s Added group %s\n", cmdutil.Green("✓"), name)
	return nil
}
