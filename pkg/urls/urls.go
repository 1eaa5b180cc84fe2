// ABOUTME: URL construction utilities for the public feed surface
// ABOUTME: Provides relative-URL joining, canonical item/feed URLs and tracking-URL chaining

package urls

import (
	"fmt"
	"regexp"
	"strings"
)

var schemePrefix = regexp.MustCompile(`^(\w+:)?//`)

// JoinWithRelative resolves a possibly-relative URL against a base URL.
// Absolute URLs pass through unchanged. When the base is empty the first
// non-empty fallback is used instead. An empty relative URL yields "".
func JoinWithRelative(base, relative string, fallback ...string) string {
	if relative == "" {
		return ""
	}
	if strings.HasPrefix(relative, "http://") || strings.HasPrefix(relative, "https://") {
		return relative
	}

	prefix := base
	if prefix == "" {
		for _, f := range fallback {
			if f != "" {
				prefix = f
				break
			}
		}
	}
	if prefix == "" {
		return relative
	}

	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(relative, "/")
}

// WebItem returns the canonical web URL for an item. The title contributes
// a slug segment when it produces one; otherwise the URL carries the id alone.
func WebItem(itemID, itemTitle, baseURL string) string {
	if slug := Slugify(itemTitle); slug != "" {
		return fmt.Sprintf("%s/i/%s-%s/", baseURL, slug, itemID)
	}
	return fmt.Sprintf("%s/i/%s/", baseURL, itemID)
}

// JSONItem returns the canonical JSON URL for an item.
func JSONItem(itemID, baseURL string) string {
	return fmt.Sprintf("%s/i/%s/json/", baseURL, itemID)
}

// RSSItem returns the canonical RSS URL for an item.
func RSSItem(itemID, baseURL string) string {
	return fmt.Sprintf("%s/i/%s/rss/", baseURL, itemID)
}

// JSONFeed returns the canonical JSON feed URL.
func JSONFeed(baseURL string) string {
	return baseURL + "/json/"
}

// RSSFeed returns the canonical RSS feed URL.
func RSSFeed(baseURL string) string {
	return baseURL + "/rss/"
}

// WithTracking chains analytics tracking prefixes in front of a media URL.
// Each tracking host is stripped of its scheme and trailing slash, then the
// media URL (scheme removed) is appended, producing a single https URL that
// redirects through every tracker in order. No trackers means the URL is
// returned unchanged.
func WithTracking(mediaURL string, trackingURLs []string) string {
	if mediaURL == "" {
		return ""
	}
	if len(trackingURLs) == 0 {
		return mediaURL
	}

	var prefix strings.Builder
	for _, t := range trackingURLs {
		t = strings.TrimSuffix(schemePrefix.ReplaceAllString(t, ""), "/")
		if t == "" {
			continue
		}
		prefix.WriteString(t)
		prefix.WriteString("/")
	}
	if prefix.Len() == 0 {
		return mediaURL
	}

	return "https://" + prefix.String() + schemePrefix.ReplaceAllString(mediaURL, "")
}
