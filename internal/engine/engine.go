package engine

import (
	"log/slog"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/logging"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/internal/selection"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// ErrGroupDisabled indicates a bulk operation on a disabled group without
// GroupOptions.Force.
var ErrGroupDisabled = errors.Mark(errors.New("group is disabled"), errors.ErrInvalidSelection)

// Confirmation is the explicit consent token for destructive bulk restores.
type Confirmation bool

const (
	// Unconfirmed rejects the operation with ErrUnconfirmed.
	Unconfirmed Confirmation = false

	// Confirmed allows the operation to proceed.
	Confirmed Confirmation = true
)

// GroupOptions modifies group-scoped operations.
type GroupOptions struct {
	// Force runs the operation even if the group is disabled.
	Force bool
}

// Engine coordinates registry mutations and snapshot operations.
type Engine struct {
	reg       *registry.Registry
	store     registry.Store
	snaps     *snapshot.Manager
	logger    *slog.Logger
	retention int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-item outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSnapshotManager replaces the default snapshot manager.
func WithSnapshotManager(m *snapshot.Manager) Option {
	return func(e *Engine) {
		if m != nil {
			e.snaps = m
		}
	}
}

// WithRetention prunes each item down to n snapshots after a successful
// backup. Zero or less disables automatic pruning.
func WithRetention(n int) Option {
	return func(e *Engine) {
		e.retention = max(n, 0)
	}
}

// New creates an Engine over reg, persisting mutations to store.
func New(reg *registry.Registry, store registry.Store, opts ...Option) *Engine {
	if reg == nil {
		reg = registry.New()
	}
	e := &Engine{
		reg:    reg,
		store:  store,
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.snaps == nil {
		e.snaps = snapshot.NewManager(snapshot.WithLogger(e.logger))
	}
	return e
}

// Open loads the registry from store and returns an Engine over it.
func Open(store registry.Store, opts ...Option) (*Engine, error) {
	reg, err := store.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading registry")
	}
	return New(reg, store, opts...), nil
}

// Items returns a copy of the registered items in registry order.
func (e *Engine) Items() []registry.SyncItem {
	return e.reg.Clone().Items
}

// Groups returns a copy of the registered groups in registry order.
func (e *Engine) Groups() []registry.SyncGroup {
	return e.reg.Clone().Groups
}

// Item returns the named item.
func (e *Engine) Item(name string) (registry.SyncItem, error) {
	return e.reg.Item(name)
}

// Select returns the enabled items in scope. A group scope must name an
// existing group that is enabled unless opts.Force is set.
func (e *Engine) Select(scope selection.Scope, opts GroupOptions) ([]registry.SyncItem, error) {
	if scope.IsGroup() {
		g, err := e.reg.Group(scope.Group)
		if err != nil {
			return nil, err
		}
		if !g.Enabled && !opts.Force {
			return nil, errors.Wrapf(ErrGroupDisabled, "group %q (use --force)", g.Name)
		}
	}
	return selection.Select(e.reg.Items, scope), nil
}
