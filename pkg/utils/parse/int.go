// ABOUTME: Lenient numeric parsing for feed metadata fields
// ABOUTME: Itunes season/episode numbers and enclosure sizes arrive as strings

package parse

import "strconv"

// IntOrZero parses s as a base-10 integer, yielding 0 when it does not
// parse. Feed metadata is frequently blank or junk; callers treat 0 as
// absent.
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
