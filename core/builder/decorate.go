// ABOUTME: Item decorator enriches a stored item with presentation fields
// ABOUTME: Produces an immutable request-scoped DecoratedItem, never mutating the input

package builder

import (
	"microfeed-api/core/domain"
	"microfeed-api/pkg/urls"
	htmlutil "microfeed-api/pkg/utils/html"
	timeutil "microfeed-api/pkg/utils/time"
)

// DecoratedItem is a stored item plus the derived fields the transformer
// needs. It is request-scoped and discarded after the response is built.
type DecoratedItem struct {
	Item domain.Item

	WebURL  string
	JSONURL string
	RSSURL  string

	// PubDate is the publish date rendered in the visitor's timezone
	PubDate            string
	PubDateRFC3339     string
	UpdatedDateRFC3339 string

	DescriptionText string

	// ImageURL is the item image resolved against the public bucket
	ImageURL string

	// MediaURL is the media file URL, resolved against the public bucket
	// unless the media is an external URL
	MediaURL string

	// Mutually-exclusive media category flags, set only when the media
	// file is structurally valid
	IsAudio       bool
	IsDocument    bool
	IsExternalURL bool
	IsVideo       bool
	IsImage       bool

	MediaValid bool
}

// Decorate computes the presentation fields for one stored item. All
// inputs are treated as optional: a missing image or media file simply
// skips URL resolution.
func Decorate(item domain.Item, baseURL, publicBucketURL, visitorTimezone string) DecoratedItem {
	d := DecoratedItem{
		Item:               item,
		WebURL:             urls.WebItem(item.ID, item.Title, baseURL),
		JSONURL:            urls.JSONItem(item.ID, baseURL),
		RSSURL:             urls.RSSItem(item.ID, baseURL),
		PubDate:            timeutil.HumanizeMs(item.PubDateMs, visitorTimezone),
		PubDateRFC3339:     timeutil.MsToRFC3339(item.PubDateMs),
		UpdatedDateRFC3339: timeutil.MsToRFC3339(item.UpdatedDateMs),
		DescriptionText:    htmlutil.StripHTML(item.Description),
	}

	if item.Image != "" {
		d.ImageURL = urls.JoinWithRelative(publicBucketURL, item.Image)
	}

	if item.MediaFile.IsValid() {
		d.MediaValid = true
		d.IsAudio = item.MediaFile.Category == domain.CategoryAudio
		d.IsDocument = item.MediaFile.Category == domain.CategoryDocument
		d.IsExternalURL = item.MediaFile.Category == domain.CategoryExternalURL
		d.IsVideo = item.MediaFile.Category == domain.CategoryVideo
		d.IsImage = item.MediaFile.Category == domain.CategoryImage

		if d.IsExternalURL {
			d.MediaURL = item.MediaFile.URL
		} else {
			d.MediaURL = urls.JoinWithRelative(publicBucketURL, item.MediaFile.URL)
		}
	}

	return d
}
