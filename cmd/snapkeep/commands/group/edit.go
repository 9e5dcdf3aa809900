package group

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

var (
	removeDetach bool
	removeDelete bool
	removeYes    bool
)

func init() {
	removeCmd.Flags().BoolVar(&removeDetach, "detach", false, "keep the member items without a group")
	removeCmd.Flags().BoolVar(&removeDelete, "delete-items", false, "unregister the member items too")
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip the confirmation prompt for --delete-items")
	removeCmd.MarkFlagsMutuallyExclusive("detach", "delete-items")
	removeCmd.MarkFlagsOneRequired("detach", "delete-items")

	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a group",
	Long: `Delete a group. Choose what happens to its members: --detach keeps
them as ungrouped items, --delete-items unregisters them. Snapshots are
never deleted.`,
	Example: `  # Keep the members
  snapkeep group remove games --detach

  # Unregister the members as well
  snapkeep group remove games --delete-items --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemoveWithWriter(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0])
	},
}

var enableCmd = &cobra.Command{
	Use:     "enable <name>",
	Short:   "Allow --group operations on a group",
	Example: `  snapkeep group enable games`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabledWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:     "disable <name>",
	Short:   "Refuse --group operations on a group unless forced",
	Example: `  snapkeep group disable games`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabledWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], false)
	},
}

func runRemoveWithWriter(ctx context.Context, in io.Reader, w io.Writer, name string) error {
	policy := registry.DetachMembers
	if removeDelete {
		policy = registry.DeleteMembers
		if _, err := cmdutil.Confirm(in, w, removeYes,
			fmt.Sprintf("Delete group %s and unregister its items?", name)); err != nil {
			return err
		}
	}

	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}
	affected, err := s.Engine.RemoveGroup(name, policy)
	if err != nil {
		return cmdutil.RegistryError(err)
	}

	fmt.Fprintf(w, "%s Removed group %s\n", cmdutil.Green("✓"), name)
	if len(affected) > 0 {
		verb := "Detached"
		if policy == registry.DeleteMembers {
			verb = "Unregistered"
		}
		fmt.Fprintf(w, "  %s: %s\n", verb, strings.Join(affected, ", "))
	}
	return nil
}

func runSetEnabledWithWriter(ctx context.Context, w io.Writer, name string, enabled bool) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}
	if err := s.Engine.SetGroupEnabled(name, enabled); err != nil {
		return cmdutil.RegistryError(err)
	}
	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	fmt.Fprintf(w, "%s %s group %s\n", cmdutil.Green("✓"), state, name)
	return nil
}
