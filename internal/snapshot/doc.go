// Package snapshot creates, lists, restores and prunes item snapshots.
//
// A snapshot is a directory named {item}_{unix_seconds} directly under the
// item's backup root. Nothing else is stored: the listing is derived from
// the filesystem every time and ordered by the directory's modified time.
//
// A directory source is stored one level deep, under its own base name:
//
//	backup_root/
//	  cfg_1718000000/
//	    cfg/
//	      settings.ini
//	  notes_1718000000/
//	    notes.txt
//
// [Manager.Restore] reverses this. It clears the live path first and then
// copies, so a copy failure leaves the live path absent or partially
// written; the snapshot itself is never modified.
package snapshot
