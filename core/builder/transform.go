// ABOUTME: Item transformer projects a decorated item into its public JSONFeed shape
// ABOUTME: Runs the directive and language-block passes and the conditional field projection

package builder

import (
	"microfeed-api/pkg/urls"
	durationutil "microfeed-api/pkg/utils/duration"
	htmlutil "microfeed-api/pkg/utils/html"
	parseutil "microfeed-api/pkg/utils/parse"
)

// transformItem produces the public item from a decorated item. Every
// optional field is emitted only when present on the source; the directive
// pass always runs before the language-block pass.
func (b *Builder) transformItem(d DecoratedItem) *PublicItem {
	item := d.Item

	out := &PublicItem{
		ID:    item.ID,
		Title: item.Title,
	}
	if out.Title == "" {
		out.Title = "untitled"
	}

	ext := &ItemExtension{
		IsAudio:       d.IsAudio,
		IsDocument:    d.IsDocument,
		IsExternalURL: d.IsExternalURL,
		IsVideo:       d.IsVideo,
		IsImage:       d.IsImage,
		WebURL:        d.WebURL,
		JSONURL:       d.JSONURL,
		RSSURL:        d.RSSURL,
		GUID:          item.GUID,
		Status:        item.Status.Name(),
		Slug:          urls.Slugify(item.Title),
	}

	if d.MediaValid {
		media := item.MediaFile
		attachment := Attachment{
			MimeType:   media.ContentType,
			SizeInByte: media.SizeByte,
		}
		if d.MediaURL != "" {
			attachment.URL = urls.WithTracking(d.MediaURL, b.trackingURLs())
		}
		if media.DurationSecond > 0 {
			attachment.DurationInSeconds = media.DurationSecond
			ext.DurationHHMMSS = durationutil.SecondsToHHMMSS(media.DurationSecond)
		}
		if attachment != (Attachment{}) {
			out.Attachments = []Attachment{attachment}
		}
	}

	if item.Link != "" {
		out.URL = item.Link
	}
	if d.IsExternalURL && d.MediaURL != "" {
		out.ExternalURL = d.MediaURL
	}

	directive, remainder := ExtractDirective(item.Description)
	ext.Metadata = &Metadata{
		Type: directive.Type,
		Tags: directive.Tags,
		Date: directive.Date,
	}

	out.ContentHTML = make(map[string]string)
	out.ContentText = make(map[string]string)
	if blocks := ExtractLanguageBlocks(remainder); len(blocks) > 0 {
		for lang, html := range blocks {
			out.ContentHTML[lang] = html
			out.ContentText[lang] = htmlutil.StripHTML(html)
		}
	} else {
		// No language spans: the whole body is Portuguese content
		out.ContentHTML["pt"] = remainder
		out.ContentText["pt"] = htmlutil.StripHTML(remainder)
	}

	if d.ImageURL != "" {
		out.Image = d.ImageURL
	}
	if d.IsImage && d.MediaURL != "" {
		out.BannerImage = d.MediaURL
	}
	if d.PubDateRFC3339 != "" {
		out.DatePublished = d.PubDateRFC3339
	}
	if d.UpdatedDateRFC3339 != "" {
		out.DateModified = d.UpdatedDateRFC3339
	}
	if item.Language != "" {
		out.Language = item.Language
	}

	ext.ITunesTitle = item.ITunesTitle
	ext.ITunesBlock = item.ITunesBlock
	ext.ITunesEpisodeType = item.ITunesEpisodeType
	ext.ITunesSeason = parseutil.IntOrZero(item.ITunesSeason)
	ext.ITunesEpisode = parseutil.IntOrZero(item.ITunesEpisode)
	ext.ITunesExplicit = item.ITunesExplicit
	ext.DatePublishedShort = d.PubDate
	ext.DatePublishedMs = item.PubDateMs

	out.Microfeed = ext
	return out
}
