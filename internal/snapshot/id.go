package snapshot

import (
	"strconv"
	"strings"
	"time"
)

// NewID returns the snapshot id for item at t.
func NewID(item string, t time.Time) string {
	return item + "_" + strconv.FormatInt(t.Unix(), 10)
}

// prefix is the listing filter for item.
func prefix(item string) string {
	return item + "_"
}

// parseTimestamp decodes the unix-seconds suffix of id.
func parseTimestamp(item, id string) (time.Time, bool) {
	suffix, ok := strings.CutPrefix(id, prefix(item))
	if !ok {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}
