package registry

// SyncItem is a named filesystem entry that snapkeep backs up.
type SyncItem struct {
	// Name is the unique, immutable key. It prefixes every snapshot id.
	Name string `yaml:"name" toml:"name" json:"name"`

	// SourcePath is the live file or directory.
	SourcePath string `yaml:"source_path" toml:"source_path" json:"source_path"`

	// BackupRoot is the directory holding this item's snapshots.
	BackupRoot string `yaml:"backup_root" toml:"backup_root" json:"backup_root"`

	// Enabled gates the item out of bulk operations when false.
	Enabled bool `yaml:"enabled" toml:"enabled" json:"enabled"`

	// Group is the owning group name, or "" for none.
	Group string `yaml:"group,omitempty" toml:"group,omitempty" json:"group,omitempty"`
}

// SyncGroup is a named set of items for bulk operations.
type SyncGroup struct {
	Name        string `yaml:"name" toml:"name" json:"name"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Enabled     bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
}

// MemberPolicy decides what happens to a group's items when the group is
// removed. The zero value is invalid; callers must choose.
type MemberPolicy int

const (
	_ MemberPolicy = iota

	// DetachMembers clears Group on every member.
	DetachMembers

	// DeleteMembers removes every member from the registry.
	DeleteMembers
)

func (p MemberPolicy) String() string {
	switch p {
	case DetachMembers:
		return "detach"
	case DeleteMembers:
		return "delete"
	default:
		return "unset"
	}
}

// CurrentVersion is the registry file format version.
const CurrentVersion = 1

// Registry is the ordered set of items and groups.
type Registry struct {
	Version int         `yaml:"version" toml:"version" json:"version"`
	Items   []SyncItem  `yaml:"items" toml:"items" json:"items"`
	Groups  []SyncGroup `yaml:"groups" toml:"groups" json:"groups"`
}

// New returns an empty registry at the current format version.
func New() *Registry {
	return &Registry{Version: CurrentVersion}
}
