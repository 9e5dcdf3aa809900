// Package commands implements the CLI commands for snapkeep.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd"
	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/flags"
	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/group"
	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/item"
	"github.com/thoreinstein/snapkeep/internal/config"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

var configFlag string

var registryFlag string

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"config file (default: ./config.yaml or ~/.config/snapkeep/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&registryFlag, "registry", "",
		"registry file, overrides the registry config key")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("snapkeep version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(item.Cmd)
	rootCmd.AddCommand(group.Cmd)
}

var rootCmd = &cobra.Command{
	Use:   "snapkeep",
	Short: "Timestamped snapshots of files and directories",
	Long: `snapkeep keeps timestamped snapshots of the files and directories you
register with it, and restores any of them to its latest or a chosen
snapshot.

Items can be collected into groups so a whole set can be backed up or
restored in one command. Snapshots are plain directories named
{item}_{unix_seconds} under each item's backup root.`,
	Example: `  # Register a directory and back it up
  snapkeep item add game-cfg ~/.config/game
  snapkeep backup game-cfg

  # Back up everything that is enabled
  snapkeep backup --all

  # Restore the latest snapshot
  snapkeep restore game-cfg

  See Also: snapkeep item, snapkeep group, snapkeep status`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return loadConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging installs the process logger from the -v, -q, --log-format
// and --log-file flags. SNAPKEEP_DEBUG stands in for -v when no -v is given.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q or -v")
	}

	lc := logging.Config{
		Level:  slog.LevelError,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	}
	if !quiet {
		v := verbosity
		if v == 0 {
			v = logging.VerbosityFromEnv(os.Getenv("SNAPKEEP_DEBUG"))
		}
		lc.Level = logging.LevelFromVerbosity(v)
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "opening log file %s", logFile),
				"Point --log-file at a writable path")
		}
		lc.File = f
	}

	logger := logging.New(lc)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// loadConfig reads configuration for every command except help and version.
func loadConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	flags.SetConfigPath(configFlag)
	flags.SetRegistryPath(registryFlag)

	config.Init()
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	flags.SetConfig(cfg)

	logging.FromContext(cmd.Context()).Debug("configuration loaded",
		"file", config.Used(), "registry", cfg.Registry, "backup_root", cfg.BackupRoot)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
