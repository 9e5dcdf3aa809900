package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/selection"
)

// ScopeFlags are the --all, --group and --force flags of bulk-capable
// commands.
type ScopeFlags struct {
	All   bool
	Group string
	Force bool
}

// Register adds the scope flags to cmd.
func (f *ScopeFlags) Register(cmd *cobra.Command, verb string) {
	cmd.Flags().BoolVar(&f.All, "all", false, verb+" every enabled item")
	cmd.Flags().StringVarP(&f.Group, "group", "g", "", verb+" the enabled items of a group")
	cmd.Flags().BoolVar(&f.Force, "force", false, "operate on a disabled group")
}

// Target is the resolved subject of a command: one item or a scope.
type Target struct {
	Item  string
	Scope selection.Scope
}

// Single reports whether the target is one named item.
func (t Target) Single() bool {
	return t.Item != ""
}

// Options returns the engine group options.
func (f *ScopeFlags) Options() engine.GroupOptions {
	return engine.GroupOptions{Force: f.Force}
}

// Resolve requires exactly one of an item argument, --all or --group.
func (f *ScopeFlags) Resolve(args []string) (Target, error) {
	n := 0
	var t Target
	if len(args) > 0 {
		n++
		t.Item = args[0]
	}
	if f.All {
		n++
		t.Scope = selection.All()
	}
	if f.Group != "" {
		n++
		t.Scope = selection.Group(f.Group)
	}
	if n != 1 {
		return Target{}, errors.NewUserError(
			errors.Wrap(errors.ErrInvalidSelection, "specify exactly one of <item>, --all or --group"),
			"Run with --help for usage",
		)
	}
	return t, nil
}
