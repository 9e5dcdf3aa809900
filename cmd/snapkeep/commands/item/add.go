package item

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/paths"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

var (
	addRoot     string
	addGroup    string
	addDisabled bool
)

func init() {
	addCmd.Flags().StringVar(&addRoot, "root", "", "backup root for this item (default: backup_root config)")
	addCmd.Flags().StringVarP(&addGroup, "group", "g", "", "group to place the item in")
	addCmd.Flags().BoolVar(&addDisabled, "disabled", false, "register the item disabled")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name> <source>",
	Short: "Register an item",
	Long: `Register a file or directory under a unique name. The source path is
stored as an absolute path and does not need to exist yet.`,
	Example: `  # Register a directory
  snapkeep item add game-cfg ~/.config/game

  # Register into a group
  snapkeep item add save1 ~/saves/slot1.dat --group games

  See Also:
    snapkeep group add - Create a group
    snapkeep backup    - Take a snapshot`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
	},
}

func runAddWithWriter(ctx context.Context, w io.Writer, name, source string) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}

	src, err := paths.Normalize(source)
	if err != nil {
		return errors.NewUserError(err, "Pass a valid source path")
	}
	root := addRoot
	if root == "" {
		root = s.Config.BackupRoot
	}
	root, err = paths.Normalize(root)
	if err != nil {
		return errors.NewUserError(err, "Pass a valid --root path")
	}

	item := registry.SyncItem{
		Name:       name,
		SourcePath: src,
		BackupRoot: root,
		Enabled:    !addDisabled,
		Group:      addGroup,
	}
	if err := s.Engine.AddItem(item); err != nil {
		return cmdutil.RegistryError(err)
	}

	fmt.Fprintf(w, "%s Added %s (%s)\n", cmdutil.Green("✓"), name, src)
	return nil
}
