package commands

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/flags"
	"github.com/thoreinstein/snapkeep/internal/cli/prompt"
	"github.com/thoreinstein/snapkeep/internal/config"
	"github.com/thoreinstein/snapkeep/internal/editor"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/paths"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configEditCmd.Flags().BoolVar(&editRegistry, "registry", false, "edit the registry instead of the config file")
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage snapkeep configuration",
	Long: `Manage snapkeep configuration stored in ~/.config/snapkeep/config.yaml.

Every key can also be set through the environment with the SNAPKEEP_
prefix, for example SNAPKEEP_BACKUP_ROOT or SNAPKEEP_WATCH_DEBOUNCE.
Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  snapkeep config

  # Get a specific value
  snapkeep config get backup_root

  # Keep the ten newest snapshots after each backup
  snapkeep config set retention 10

  See Also: snapkeep status`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigListWithWriter(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. Nested keys use dot notation.`,
	Example: `  # Get the backup root
  snapkeep config get backup_root

  # Get the watch debounce
  snapkeep config get watch.debounce

  See Also: snapkeep config set, snapkeep config list`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGetWithWriter(cmd.OutOrStdout(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file. The resulting
configuration is validated before it is written.`,
	Example: `  # Change where snapshots are stored
  snapkeep config set backup_root ~/backups

  # Wait five seconds of quiet before watch takes a snapshot
  snapkeep config set watch.debounce 5s

  See Also: snapkeep config get, snapkeep config list`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSetWithWriter(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all effective configuration values in YAML format.`,
	Example: `  # List all configuration
  snapkeep config list

  See Also: snapkeep config get, snapkeep config set`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigListWithWriter(cmd.OutOrStdout())
	},
}

var editRegistry bool

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file or the registry in $EDITOR",
	Long: `Open the configuration file, or the registry with --registry, in your
editor. The file is created first if it does not exist. After the editor
exits the file is validated, and you are offered to re-open it if it no
longer parses.

Uses $EDITOR, then $VISUAL, then nano, then vi.`,
	Example: `  # Edit the config file
  snapkeep config edit

  # Edit the registry by hand
  EDITOR=nano snapkeep config edit --registry

  See Also: snapkeep config list, snapkeep doctor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		streams := editor.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
		return runConfigEdit(cmd.Context(), streams)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config and registry file locations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigPathWithWriter(cmd.OutOrStdout())
	},
}

func unknownKey(key string) error {
	return errors.NewUserError(
		errors.Mark(errors.Newf("unknown config key %q", key), errors.ErrInvalidConfig),
		"Run: snapkeep config list",
	)
}

func runConfigGetWithWriter(w io.Writer, key string) error {
	if !config.Known(key) {
		return unknownKey(key)
	}
	if key == config.KeyWatchDebounce {
		fmt.Fprintln(w, viper.GetDuration(key))
		return nil
	}
	fmt.Fprintln(w, viper.GetString(key))
	return nil
}

// effective builds the config map written by list and set.
func effective() map[string]any {
	return map[string]any{
		config.KeyVersion:    viper.GetInt(config.KeyVersion),
		config.KeyBackupRoot: viper.GetString(config.KeyBackupRoot),
		config.KeyRegistry:   viper.GetString(config.KeyRegistry),
		config.KeyRetention:  viper.GetInt(config.KeyRetention),
		"watch": map[string]any{
			"debounce": viper.GetDuration(config.KeyWatchDebounce).String(),
		},
	}
}

func runConfigListWithWriter(w io.Writer) error {
	data, err := yaml.Marshal(effective())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return err
}

func runConfigSetWithWriter(w io.Writer, key, value string) error {
	if !config.Known(key) {
		return unknownKey(key)
	}

	viper.Set(key, value)
	cfg, err := config.Current()
	if err != nil {
		return err
	}

	target := configFile()
	if err := paths.EnsureDir(filepath.Dir(target), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(err, "Check permissions on the config directory")
	}
	if err := fileutil.AtomicWriteYAML(target, effective()); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}
	flags.SetConfig(cfg)

	fmt.Fprintf(w, "Set %s = %s\n", key, value)
	return nil
}

// configFile is the file config set writes: the --config path, the file
// viper read, or the default location.
func configFile() string {
	if p := flags.ConfigPath(); p != "" {
		return p
	}
	if p := config.Used(); p != "" {
		return p
	}
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

func runConfigEdit(ctx context.Context, s editor.Streams) error {
	var (
		path     string
		validate func() error
	)

	if editRegistry {
		sess, err := cmdutil.Open(ctx)
		if err != nil {
			return err
		}
		path = sess.Store.Path()
		if !sess.Store.Exists() {
			if err := sess.Store.Save(registry.New()); err != nil {
				return errors.NewSystemError(err, "Check permissions on the registry directory")
			}
		}
		validate = func() error {
			_, err := sess.Store.Load()
			return err
		}
	} else {
		path = configFile()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
				return errors.NewSystemError(err, "Check permissions on the config directory")
			}
			if err := fileutil.AtomicWriteYAML(path, effective()); err != nil {
				return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
			}
		}
		validate = func() error {
			config.Init()
			_, err := config.Load(path)
			return err
		}
	}

	fmt.Fprintf(s.Out, "Location: %s\n", path)
	retry := func(err error) bool {
		fmt.Fprintf(s.Out, "%s %v\n", cmdutil.Red("✗"), err)
		ok, promptErr := prompt.Confirm(prompt.ConfirmOptions{}, s.In, s.Out, "Re-open the editor?")
		return promptErr == nil && ok
	}
	if err := editor.EditUntilValid(ctx, path, s, validate, retry); err != nil {
		if errors.Is(err, errors.ErrInvalidConfig) {
			return errors.NewConfigError(err)
		}
		return errors.NewSystemError(err, "Set $EDITOR to an editor on your PATH")
	}
	fmt.Fprintf(s.Out, "%s %s is valid\n", cmdutil.Green("✓"), path)
	return nil
}

func runConfigPathWithWriter(w io.Writer) error {
	regPath := flags.RegistryPath()
	if regPath == "" {
		regPath = viper.GetString(config.KeyRegistry)
	}
	fmt.Fprintf(w, "config:   %s\n", configFile())
	fmt.Fprintf(w, "registry: %s\n", paths.ExpandHome(regPath))
	return nil
}
