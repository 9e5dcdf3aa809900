// Package paths resolves the directories snapkeep uses for its own state.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// compliance:
//
//	paths.DefaultRegistryPath() // ~/.config/snapkeep/registry.yaml
//	paths.DefaultBackupRoot()   // ~/.local/share/snapkeep/snapshots
//
// User-supplied item paths go through [Normalize], which expands a leading ~
// and makes the path absolute so registry entries do not depend on the
// working directory of the command that created them.
package paths
