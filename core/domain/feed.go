// ABOUTME: FeedContent domain model represents the stored feed aggregate
// ABOUTME: Holds the channel, settings, items and pagination cursors read by the builder

package domain

// Version is echoed in the _microfeed extension block of every public feed.
const Version = "v1.0.0"

// JSONFeedVersion is the JSONFeed spec version emitted at the top of the document.
const JSONFeedVersion = "https://jsonfeed.org/version/1.1"

// Sort orders for the items collection.
const (
	SortNewestFirst = "newest_first"
	SortOldestFirst = "oldest_first"
)

// FeedContent is the stored feed aggregate. It is owned by the storage
// layer; the public builder only reads it.
type FeedContent struct {
	// Channel holds feed-level metadata
	Channel Channel

	// Settings holds web/global settings for the feed
	Settings Settings

	// Items contains the stored items, already ordered by the storage layer
	Items []Item

	// ItemsNextCursor points at the next page, empty when there is none
	ItemsNextCursor string

	// ItemsPrevCursor points at the previous page, empty when there is none
	ItemsPrevCursor string

	// ItemsSortOrder is the sort order the cursors were computed under
	ItemsSortOrder string
}

// Channel holds feed-level metadata edited through the admin UI.
type Channel struct {
	Title       string
	Link        string
	Description string
	Image       string
	Publisher   string
	Language    string
	Copyright   string

	// Categories are stored as "Top/Sub" strings, split once on '/' when
	// projected into the public feed
	Categories []string

	// iTunes feed-level fields
	ITunesExplicit   bool
	ITunesTitle      string
	ITunesType       string
	ITunesBlock      bool
	ITunesComplete   bool
	ITunesNewFeedURL string
	ITunesEmail      string
}

// Settings holds per-feed configuration stored alongside the channel.
type Settings struct {
	WebGlobal WebGlobalSettings
	Subscribe SubscribeSettings
	Analytics AnalyticsSettings
}

// WebGlobalSettings holds the public bucket base URL and favicon.
type WebGlobalSettings struct {
	// PublicBucketURL is the origin relative media/image paths resolve against
	PublicBucketURL string
	Favicon         Favicon
}

// Favicon is the feed favicon reference, possibly relative to the bucket.
type Favicon struct {
	URL string
}

// SubscribeSettings lists the subscribe methods shown on the public site.
type SubscribeSettings struct {
	Methods []SubscribeMethod
}

// SubscribeMethod is one subscribe option (rss, json, Apple Podcasts, ...).
type SubscribeMethod struct {
	Name    string `json:"name,omitempty"`
	Type    string `json:"type,omitempty"`
	URL     string `json:"url,omitempty"`
	Image   string `json:"image,omitempty"`
	Enabled bool   `json:"enabled"`

	// Editable methods keep their stored URL; non-editable rss/json methods
	// get the canonical feed URL of that type
	Editable bool `json:"editable"`
}

// AnalyticsSettings holds tracking URL prefixes chained in front of media URLs.
type AnalyticsSettings struct {
	URLs []string
}
