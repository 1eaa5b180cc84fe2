// ABOUTME: Public output types for the JSONFeed 1.1 document
// ABOUTME: Defines the feed, item, attachment and _microfeed extension shapes

package builder

import "microfeed-api/core/domain"

// PublicFeed is the top-level JSONFeed 1.1 document.
type PublicFeed struct {
	Version     string        `json:"version"`
	Title       string        `json:"title"`
	HomePageURL string        `json:"home_page_url,omitempty"`
	FeedURL     string        `json:"feed_url"`
	NextURL     string        `json:"next_url,omitempty"`
	Description string        `json:"description"`
	Icon        string        `json:"icon,omitempty"`
	Favicon     string        `json:"favicon,omitempty"`
	Authors     []Author      `json:"authors,omitempty"`
	Language    string        `json:"language,omitempty"`
	Expired     bool          `json:"expired,omitempty"`
	Items       []*PublicItem `json:"items"`

	Microfeed *FeedExtension `json:"_microfeed"`
}

// Author is a JSONFeed author entry.
type Author struct {
	Name string `json:"name"`
}

// PublicItem is one entry in the public feed. Content is keyed by
// lower-case language code ("pt", "en", ...).
type PublicItem struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Attachments   []Attachment      `json:"attachments,omitempty"`
	URL           string            `json:"url,omitempty"`
	ExternalURL   string            `json:"external_url,omitempty"`
	ContentHTML   map[string]string `json:"content_html"`
	ContentText   map[string]string `json:"content_text"`
	Image         string            `json:"image,omitempty"`
	BannerImage   string            `json:"banner_image,omitempty"`
	DatePublished string            `json:"date_published,omitempty"`
	DateModified  string            `json:"date_modified,omitempty"`
	Language      string            `json:"language,omitempty"`

	Microfeed *ItemExtension `json:"_microfeed"`
}

// Attachment is the JSONFeed attachment for an item's media file.
type Attachment struct {
	URL               string `json:"url,omitempty"`
	MimeType          string `json:"mime_type,omitempty"`
	SizeInByte        int64  `json:"size_in_byte,omitempty"`
	DurationInSeconds int    `json:"duration_in_seconds,omitempty"`
}

// ItemExtension is the per-item _microfeed vendor extension block.
type ItemExtension struct {
	IsAudio       bool `json:"is_audio,omitempty"`
	IsDocument    bool `json:"is_document,omitempty"`
	IsExternalURL bool `json:"is_external_url,omitempty"`
	IsVideo       bool `json:"is_video,omitempty"`
	IsImage       bool `json:"is_image,omitempty"`

	WebURL  string `json:"web_url,omitempty"`
	JSONURL string `json:"json_url,omitempty"`
	RSSURL  string `json:"rss_url,omitempty"`

	GUID   string `json:"guid,omitempty"`
	Status string `json:"status"`
	Slug   string `json:"slug,omitempty"`

	DurationHHMMSS string `json:"duration_hhmmss,omitempty"`

	ITunesTitle       string `json:"itunes:title,omitempty"`
	ITunesBlock       bool   `json:"itunes:block,omitempty"`
	ITunesEpisodeType string `json:"itunes:episodeType,omitempty"`
	ITunesSeason      int    `json:"itunes:season,omitempty"`
	ITunesEpisode     int    `json:"itunes:episode,omitempty"`
	ITunesExplicit    bool   `json:"itunes:explicit,omitempty"`

	DatePublishedShort string `json:"date_published_short,omitempty"`
	DatePublishedMs    int64  `json:"date_published_ms,omitempty"`

	Metadata *Metadata `json:"metadata"`
}

// Metadata carries the classification extracted from the item's embedded
// metadata directive.
type Metadata struct {
	Type string   `json:"type"`
	Tags []string `json:"tags"`

	// Date is null when the directive carried no date attribute
	Date *string `json:"date"`

	// Color is only set on synthetic liturgy items
	Color string `json:"color,omitempty"`
}

// Category is one node of the two-level category tree in the feed extension.
type Category struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories,omitempty"`
}

// FeedExtension is the feed-level _microfeed vendor extension block.
type FeedExtension struct {
	MicrofeedVersion string                   `json:"microfeed_version"`
	BaseURL          string                   `json:"base_url"`
	Categories       []Category               `json:"categories"`
	SubscribeMethods []domain.SubscribeMethod `json:"subscribe_methods"`
	DescriptionText  string                   `json:"description_text"`

	ITunesExplicit   bool   `json:"itunes:explicit,omitempty"`
	ITunesTitle      string `json:"itunes:title,omitempty"`
	Copyright        string `json:"copyright,omitempty"`
	ITunesType       string `json:"itunes:type,omitempty"`
	ITunesBlock      bool   `json:"itunes:block,omitempty"`
	ITunesComplete   bool   `json:"itunes:complete,omitempty"`
	ITunesNewFeedURL string `json:"itunes:new-feed-url,omitempty"`
	ITunesEmail      string `json:"itunes:email,omitempty"`

	ItemsSortOrder  string `json:"items_sort_order,omitempty"`
	ItemsNextCursor string `json:"items_next_cursor,omitempty"`
	ItemsPrevCursor string `json:"items_prev_cursor,omitempty"`
	NextURL         string `json:"next_url,omitempty"`
	PrevURL         string `json:"prev_url,omitempty"`
}
