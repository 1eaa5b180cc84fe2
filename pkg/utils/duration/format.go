// ABOUTME: Duration formatting utilities for media durations
// ABOUTME: Converts between seconds and HH:MM:SS renderings

package duration

import (
	"fmt"
	"strconv"
	"strings"
)

// SecondsToHHMMSS renders a duration in seconds as HH:MM:SS. Negative
// durations render as 00:00:00.
func SecondsToHHMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ParseToSeconds converts a duration string to seconds. Accepts a bare
// number of seconds, HH:MM:SS, or MM:SS. Returns 0 for anything else.
func ParseToSeconds(durationStr string) int {
	if durationStr == "" {
		return 0
	}

	// If already a number, assume it's seconds
	if seconds, err := strconv.Atoi(durationStr); err == nil {
		return seconds
	}

	parts := strings.Split(durationStr, ":")
	switch len(parts) {
	case 3: // HH:MM:SS
		hours, _ := strconv.Atoi(parts[0])
		minutes, _ := strconv.Atoi(parts[1])
		seconds, _ := strconv.Atoi(parts[2])
		return hours*3600 + minutes*60 + seconds
	case 2: // MM:SS
		minutes, _ := strconv.Atoi(parts[0])
		seconds, _ := strconv.Atoi(parts[1])
		return minutes*60 + seconds
	}

	return 0
}
