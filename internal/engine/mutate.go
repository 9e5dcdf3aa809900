package engine

import (
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

// mutate applies fn to a copy of the registry, saves the copy, and only
// then makes it current. A failed save leaves the in-memory registry as it
// was.
func (e *Engine) mutate(op string, fn func(*registry.Registry) error) error {
	next := e.reg.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if e.store != nil {
		if err := e.store.Save(next); err != nil {
			return errors.Wrapf(err, "%s: saving registry", op)
		}
	}
	*e.reg = *next
	e.logger.Debug("registry saved", "op", op, "items", len(next.Items), "groups", len(next.Groups))
	return nil
}

// AddItem registers a new item.
func (e *Engine) AddItem(item registry.SyncItem) error {
	return e.mutate("add item", func(r *registry.Registry) error {
		return r.AddItem(item)
	})
}

// RemoveItem unregisters an item. Its snapshots stay on disk.
func (e *Engine) RemoveItem(name string) error {
	return e.mutate("remove item", func(r *registry.Registry) error {
		return r.RemoveItem(name)
	})
}

// SetItemEnabled enables or disables an item for bulk operations.
func (e *Engine) SetItemEnabled(name string, enabled bool) error {
	return e.mutate("set item enabled", func(r *registry.Registry) error {
		return r.SetItemEnabled(name, enabled)
	})
}

// AssignGroup moves an item into a group, or out of any group when group
// is empty.
func (e *Engine) AssignGroup(name, group string) error {
	return e.mutate("assign group", func(r *registry.Registry) error {
		return r.AssignGroup(name, group)
	})
}

// AddGroup registers a new group.
func (e *Engine) AddGroup(group registry.SyncGroup) error {
	return e.mutate("add group", func(r *registry.Registry) error {
		return r.AddGroup(group)
	})
}

// RemoveGroup deletes a group and applies policy to its members, returning
// the affected item names.
func (e *Engine) RemoveGroup(name string, policy registry.MemberPolicy) ([]string, error) {
	var affected []string
	err := e.mutate("remove group", func(r *registry.Registry) error {
		var err error
		affected, err = r.RemoveGroup(name, policy)
		return err
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

// SetGroupEnabled enables or disables a group.
func (e *Engine) SetGroupEnabled(name string, enabled bool) error {
	return e.mutate("set group enabled", func(r *registry.Registry) error {
		return r.SetGroupEnabled(name, enabled)
	})
}
