package util

import (
	"strconv"
	"time"
)

// MustParseUint parses an unsigned id from a path parameter, returning 0 on
// failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseDate parses a calendar date in the wire format (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
