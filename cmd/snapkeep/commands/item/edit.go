package item

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
)

func init() {
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
	Cmd.AddCommand(assignCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Unregister an item",
	Long: `Remove an item from the registry. Its snapshots stay on disk and are
picked up again if an item with the same name and backup root is added.`,
	Example: `  snapkeep item remove game-cfg`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemoveWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

var enableCmd = &cobra.Command{
	Use:     "enable <name>",
	Short:   "Include an item in bulk operations",
	Example: `  snapkeep item enable game-cfg`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabledWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:     "disable <name>",
	Short:   "Exclude an item from bulk operations",
	Example: `  snapkeep item disable game-cfg`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabledWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], false)
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <name> [group]",
	Short: "Move an item into a group, or out of any group",
	Long:  `Place an item into an existing group. Without a group the item is detached.`,
	Example: `  # Move into a group
  snapkeep item assign save1 games

  # Detach from its group
  snapkeep item assign save1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group := ""
		if len(args) == 2 {
			group = args[1]
		}
		return runAssignWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], group)
	},
}

func runRemoveWithWriter(ctx context.Context, w io.Writer, name string) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}
	if err := s.Engine.RemoveItem(name); err != nil {
		return cmdutil.RegistryError(err)
	}
	fmt.Fprintf(w, "%s Removed %s\n", cmdutil.Green("✓"), name)
	return nil
}

func runSetEnabledWithWriter(ctx context.Context, w io.Writer, name string, enabled bool) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}
	if err := s.Engine.SetItemEnabled(name, enabled); err != nil {
		return cmdutil.RegistryError(err)
	}
	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	fmt.Fprintf(w, "%s %s %s\n", cmdutil.Green("✓"), state, name)
	return nil
}

func runAssignWithWriter(ctx context.Context, w io.Writer, name, group string) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}
	if err := s.Engine.AssignGroup(name, group); err != nil {
		return cmdutil.RegistryError(err)
	}
	if group == "" {
		fmt.Fprintf(w, "%s Detached %s\n", cmdutil.Green("✓"), name)
		return nil
	}
	fmt.Fprintf(w, "%s Moved %s into %s\n", cmdutil.Green("✓"), name, group)
	return nil
}
