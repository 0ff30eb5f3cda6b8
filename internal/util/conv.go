package util

import "strconv"

// ParseUint converts a route parameter to a uint, returning 0 on junk.
func ParseUint(s string) uint {
	v, _ := strconv.ParseUint(s, 10, 64)
	return uint(v)
}
