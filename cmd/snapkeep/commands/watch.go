package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/logging"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/internal/watch"
)

var (
	watchScope    cmdutil.ScopeFlags
	watchDebounce time.Duration
)

func init() {
	watchScope.Register(watchCmd, "watch")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0,
		"quiet period before a changed item is backed up (default: watch.debounce)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [item]",
	Short: "Back up items automatically when their sources change",
	Long: `Watch the sources of one or more items and take a snapshot once
changes have settled for the debounce period. Runs until interrupted.

Directories are watched recursively. Changes under a backup root are
ignored so snapshots never trigger further snapshots.`,
	Example: `  # Watch every enabled item
  snapkeep watch --all

  # Watch one item with a longer quiet period
  snapkeep watch game-cfg --debounce 10s

  See Also: snapkeep backup, snapkeep config`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := watchScope.Resolve(args)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatchWithWriter(ctx, cmd.OutOrStdout(), target)
	},
}

func runWatchWithWriter(ctx context.Context, w io.Writer, target cmdutil.Target) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}

	var items []registry.SyncItem
	if target.Single() {
		it, err := s.Engine.Item(target.Item)
		if err != nil {
			return itemError(err)
		}
		items = []registry.SyncItem{it}
	} else {
		items, err = s.Engine.Select(target.Scope, watchScope.Options())
		if err != nil {
			return scopeError(err)
		}
	}

	debounce := watchDebounce
	if debounce <= 0 {
		debounce = s.Config.Watch.Debounce
	}

	watcher := watch.New(s.Engine,
		watch.WithDebounce(debounce),
		watch.WithLogger(logging.FromContext(ctx)),
		watch.OnEvent(func(ev watch.Event) {
			if ev.Err != nil {
				fmt.Fprintf(w, "%s %s: %v\n", cmdutil.Red("✗"), ev.Item, ev.Err)
				return
			}
			fmt.Fprintf(w, "%s %s -> %s\n", cmdutil.Green("✓"), ev.Item, ev.Snapshot.ID)
		}),
	)

	fmt.Fprintf(w, "Watching %d item(s), press Ctrl+C to stop.\n", len(items))
	if err := watcher.Run(ctx, items); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "Check that the item sources exist")
		}
		return errors.NewSystemError(err, "")
	}
	return nil
}
