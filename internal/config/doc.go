// Package config provides configuration management for the snapkeep CLI.
//
// Configuration is layered by Viper: defaults, then config.yaml from the
// working directory or ~/.config/snapkeep, then SNAPKEEP_* environment
// variables (SNAPKEEP_WATCH_DEBOUNCE for watch.debounce).
//
//	version: 1
//	backup_root: ~/.local/share/snapkeep/snapshots
//	registry: ~/.config/snapkeep/registry.yaml
//	retention: 10
//	watch:
//	  debounce: 5s
//
// The item registry itself is not part of this file; see package registry.
package config
