package registry

import (
	"slices"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// ErrDuplicate indicates an item or group name is already taken.
var ErrDuplicate = errors.Mark(errors.New("name already exists"), errors.ErrInvalidSelection)

func unknownItem(name string) error {
	return errors.Wrapf(errors.ErrInvalidSelection, "unknown item %q", name)
}

func unknownGroup(name string) error {
	return errors.Wrapf(errors.ErrInvalidSelection, "unknown group %q", name)
}

func invalid(err error) error {
	return errors.Mark(err, errors.ErrInvalidSelection)
}

func (r *Registry) itemIndex(name string) int {
	return slices.IndexFunc(r.Items, func(it SyncItem) bool { return it.Name == name })
}

func (r *Registry) groupIndex(name string) int {
	return slices.IndexFunc(r.Groups, func(g SyncGroup) bool { return g.Name == name })
}

// Item returns a copy of the named item.
func (r *Registry) Item(name string) (SyncItem, error) {
	i := r.itemIndex(name)
	if i < 0 {
		return SyncItem{}, unknownItem(name)
	}
	return r.Items[i], nil
}

// Group returns a copy of the named group.
func (r *Registry) Group(name string) (SyncGroup, error) {
	i := r.groupIndex(name)
	if i < 0 {
		return SyncGroup{}, unknownGroup(name)
	}
	return r.Groups[i], nil
}

// HasGroup reports whether a group with the given name exists.
func (r *Registry) HasGroup(name string) bool {
	return r.groupIndex(name) >= 0
}

// Members returns the items assigned to group, in registry order,
// regardless of their enabled state.
func (r *Registry) Members(group string) []SyncItem {
	var out []SyncItem
	for _, it := range r.Items {
		if it.Group == group {
			out = append(out, it)
		}
	}
	return out
}

// AddItem appends item. The name must be unused and the group, if set,
// must exist.
func (r *Registry) AddItem(item SyncItem) error {
	if item.Name == "" {
		return errors.Wrap(errors.ErrMissingName, "item")
	}
	if err := item.Validate(); err != nil {
		return invalid(errors.Wrapf(err, "item %q", item.Name))
	}
	if r.itemIndex(item.Name) >= 0 {
		return errors.Wrapf(ErrDuplicate, "item %q", item.Name)
	}
	if item.Group != "" && !r.HasGroup(item.Group) {
		return unknownGroup(item.Group)
	}
	r.Items = append(r.Items, item)
	return nil
}

// RemoveItem deletes the named item. Its snapshots stay on disk.
func (r *Registry) RemoveItem(name string) error {
	i := r.itemIndex(name)
	if i < 0 {
		return unknownItem(name)
	}
	r.Items = slices.Delete(r.Items, i, i+1)
	return nil
}

// SetItemEnabled toggles the item's participation in bulk operations.
func (r *Registry) SetItemEnabled(name string, enabled bool) error {
	i := r.itemIndex(name)
	if i < 0 {
		return unknownItem(name)
	}
	r.Items[i].Enabled = enabled
	return nil
}

// AssignGroup moves the item into group. An empty group detaches it.
func (r *Registry) AssignGroup(name, group string) error {
	i := r.itemIndex(name)
	if i < 0 {
		return unknownItem(name)
	}
	if group != "" && !r.HasGroup(group) {
		return unknownGroup(group)
	}
	r.Items[i].Group = group
	return nil
}

// AddGroup appends group. The name must be unused.
func (r *Registry) AddGroup(group SyncGroup) error {
	if group.Name == "" {
		return errors.Wrap(errors.ErrMissingName, "group")
	}
	if err := group.Validate(); err != nil {
		return invalid(errors.Wrapf(err, "group %q", group.Name))
	}
	if r.HasGroup(group.Name) {
		return errors.Wrapf(ErrDuplicate, "group %q", group.Name)
	}
	r.Groups = append(r.Groups, group)
	return nil
}

// RemoveGroup deletes the named group and applies policy to its members.
// It returns the names of the affected members.
func (r *Registry) RemoveGroup(name string, policy MemberPolicy) ([]string, error) {
	if policy != DetachMembers && policy != DeleteMembers {
		return nil, errors.Wrapf(errors.ErrInvalidSelection, "member policy %s", policy)
	}
	gi := r.groupIndex(name)
	if gi < 0 {
		return nil, unknownGroup(name)
	}

	var affected []string
	kept := r.Items[:0]
	for _, it := range r.Items {
		if it.Group != name {
			kept = append(kept, it)
			continue
		}
		affected = append(affected, it.Name)
		if policy == DetachMembers {
			it.Group = ""
			kept = append(kept, it)
		}
	}
	r.Items = kept
	r.Groups = slices.Delete(r.Groups, gi, gi+1)
	return affected, nil
}

// SetGroupEnabled toggles the group's enabled flag. Member items keep their
// own flags.
func (r *Registry) SetGroupEnabled(name string, enabled bool) error {
	i := r.groupIndex(name)
	if i < 0 {
		return unknownGroup(name)
	}
	r.Groups[i].Enabled = enabled
	return nil
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	return &Registry{
		Version: r.Version,
		Items:   slices.Clone(r.Items),
		Groups:  slices.Clone(r.Groups),
	}
}
