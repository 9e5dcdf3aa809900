// Package group provides CLI commands for managing sync groups.
package group

import (
	"github.com/spf13/cobra"
)

// Cmd is the root group command.
var Cmd = &cobra.Command{
	Use:   "group",
	Short: "Manage item groups",
	Long: `Manage named groups of items. A group lets backup, restore, prune and
watch operate on a set of items with --group.

Disabling a group makes --group refuse to run unless --force is given.
Member items keep their own enabled flags.`,
	Example: `  # Create a group and put an item in it
  snapkeep group add games --description "game configs and saves"
  snapkeep item assign save1 games

  # Back up the group
  snapkeep backup --group games

  See Also:
    snapkeep group add    - Create a group
    snapkeep group list   - List groups
    snapkeep group remove - Delete a group`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
