// ABOUTME: Time formatting utilities for millisecond publish timestamps
// ABOUTME: Produces RFC-3339 strings and human-readable dates in a visitor timezone

package time

import (
	stdtime "time"
)

// MsToRFC3339 formats a Unix-millisecond timestamp as RFC 3339 in UTC.
// Zero and negative timestamps produce an empty string.
func MsToRFC3339(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return stdtime.UnixMilli(ms).UTC().Format(stdtime.RFC3339)
}

// HumanizeMs renders a Unix-millisecond timestamp as a short date in the
// given IANA timezone. An empty or unknown timezone falls back to UTC.
// Zero and negative timestamps produce an empty string.
func HumanizeMs(ms int64, timezone string) string {
	if ms <= 0 {
		return ""
	}

	loc := stdtime.UTC
	if timezone != "" {
		if l, err := stdtime.LoadLocation(timezone); err == nil {
			loc = l
		}
	}

	return stdtime.UnixMilli(ms).In(loc).Format("Mon, 02 Jan 2006")
}
