// Package item provides CLI commands for managing registered sync items.
package item

import (
	"github.com/spf13/cobra"
)

// Cmd is the root item command.
var Cmd = &cobra.Command{
	Use:   "item",
	Short: "Manage registered items",
	Long: `Manage the files and directories snapkeep takes snapshots of.

Each item has a unique name, a source path, and a backup root under which
its snapshots are stored. Disabled items are skipped by --all and --group
operations but can still be backed up and restored by name.`,
	Example: `  # Register a directory
  snapkeep item add game-cfg ~/.config/game

  # Register a file into a group with its own backup root
  snapkeep item add save1 ~/saves/slot1.dat --group games --root /mnt/backup

  # List items
  snapkeep item list

  See Also:
    snapkeep item add     - Register an item
    snapkeep item list    - List registered items
    snapkeep item remove  - Unregister an item
    snapkeep item assign  - Move an item into a group`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
