// Package prompt provides the interactive confirmations and snapshot
// pickers used by the snapkeep commands.
package prompt
