// Package engine runs snapkeep's operations over the item registry.
//
// An [Engine] owns the loaded registry and persists it through a
// registry.Store after every successful mutation. Backup and restore act on
// a single item by name, on every enabled item, or on the enabled members
// of one group. Bulk operations return a [Report] with one [ItemResult]
// per selected item; a failure on one item never stops the others.
//
// Bulk restore is destructive and requires [Confirmed]:
//
//	report, err := eng.RestoreAll(ctx, engine.Confirmed)
//
// Operations run sequentially. The context is checked between items only,
// so cancellation never interrupts a copy in progress.
package engine
