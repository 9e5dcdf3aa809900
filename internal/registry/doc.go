// Package registry holds the user-declared sync items and groups and
// persists them to a single file.
//
// A [Registry] is plain data plus mutation methods; it does no I/O. A
// [Store] loads and saves it. [FileStore] picks the on-disk format from the
// file extension:
//
//	registry.yaml, registry.yml  YAML
//	registry.toml                TOML
//	registry.json                JSON
//
// Removing an item or a group never touches snapshots already on disk.
package registry
