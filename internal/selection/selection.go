// Package selection filters registry items by scope.
package selection

import "github.com/thoreinstein/snapkeep/internal/registry"

// Scope chooses which items a bulk operation acts on.
type Scope struct {
	// Group restricts the scope to one group's members. Empty means all.
	Group string
}

// All returns the scope of every enabled item.
func All() Scope {
	return Scope{}
}

// Group returns the scope of the enabled members of name.
func Group(name string) Scope {
	return Scope{Group: name}
}

// IsGroup reports whether the scope is restricted to a group.
func (s Scope) IsGroup() bool {
	return s.Group != ""
}

func (s Scope) String() string {
	if s.IsGroup() {
		return "group " + s.Group
	}
	return "all items"
}

// Select returns the enabled items within scope in their original order.
// It never modifies items. An unknown group yields an empty result.
func Select(items []registry.SyncItem, scope Scope) []registry.SyncItem {
	out := make([]registry.SyncItem, 0, len(items))
	for _, it := range items {
		if !it.Enabled {
			continue
		}
		if scope.IsGroup() && it.Group != scope.Group {
			continue
		}
		out = append(out, it)
	}
	return out
}
