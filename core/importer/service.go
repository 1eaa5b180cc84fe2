// ABOUTME: Importer service seeds feed content from an existing RSS/Atom feed
// ABOUTME: Maps parsed channel and episode data into the stored domain model

package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	"microfeed-api/core/domain"
	coreerrors "microfeed-api/core/errors"
	"microfeed-api/core/interfaces"
	durationutil "microfeed-api/pkg/utils/duration"
	parseutil "microfeed-api/pkg/utils/parse"

	"github.com/mmcdole/gofeed"
)

// Service imports an external RSS/Atom feed into the stored content model.
// Used once when migrating an existing podcast into this system.
type Service struct {
	deps interfaces.Dependencies
	repo interfaces.ContentRepository
}

// NewService creates an importer service.
func NewService(deps interfaces.Dependencies, repo interfaces.ContentRepository) *Service {
	return &Service{deps: deps, repo: repo}
}

// Import fetches and parses the feed at feedURL, stores its channel
// metadata and items, and returns the number of items imported.
func (s *Service) Import(ctx context.Context, feedURL string) (int, error) {
	if feedURL == "" {
		return 0, coreerrors.Invalid("url", "cannot be empty")
	}
	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return 0, coreerrors.Invalid("url", "invalid URL format")
	}

	if s.deps.HTTPClient == nil {
		return 0, errors.New("HTTP client not configured")
	}
	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return 0, coreerrors.WrapError(err, "feed fetch failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return 0, coreerrors.Upstream(feedURL, resp.StatusCode(), "feed returned non-200 status")
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return 0, coreerrors.WrapError(err, "feed body read failed")
	}

	parsedFeed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return 0, coreerrors.WrapError(err, "feed parse failed")
	}

	channel := convertChannel(parsedFeed)
	if err := s.repo.SaveChannel(ctx, channel); err != nil {
		return 0, coreerrors.WrapError(err, "failed to save channel")
	}

	imported := 0
	for _, item := range parsedFeed.Items {
		converted := ConvertItem(item)
		if err := s.repo.SaveItem(ctx, converted); err != nil {
			if s.deps.Logger != nil {
				s.deps.Logger.Warn("Failed to import item", map[string]interface{}{
					"guid":  converted.GUID,
					"error": err.Error(),
				})
			}
			continue
		}
		imported++
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Feed imported", map[string]interface{}{
			"url":   feedURL,
			"items": imported,
		})
	}
	return imported, nil
}

// convertChannel maps parsed feed metadata onto the stored channel.
func convertChannel(feed *gofeed.Feed) *domain.Channel {
	channel := &domain.Channel{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
		Copyright:   feed.Copyright,
		Categories:  feed.Categories,
	}

	if feed.Image != nil {
		channel.Image = feed.Image.URL
	}
	if feed.Author != nil {
		channel.Publisher = feed.Author.Name
	}

	if itunes := feed.ITunesExt; itunes != nil {
		if itunes.Author != "" {
			channel.Publisher = itunes.Author
		}
		if itunes.Image != "" {
			channel.Image = itunes.Image
		}
		channel.ITunesExplicit = isYes(itunes.Explicit)
		channel.ITunesType = itunes.Type
		channel.ITunesBlock = isYes(itunes.Block)
		channel.ITunesComplete = isYes(itunes.Complete)
		channel.ITunesNewFeedURL = itunes.NewFeedURL
		if itunes.Owner != nil {
			channel.ITunesEmail = itunes.Owner.Email
		}
	}

	return channel
}

// ConvertItem maps one parsed entry onto a stored item. The enclosure's
// mime-type prefix decides the media category.
func ConvertItem(item *gofeed.Item) *domain.Item {
	converted := &domain.Item{
		ID:          item.GUID,
		GUID:        item.GUID,
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
		Status:      domain.StatusPublished,
	}
	if item.Content != "" {
		converted.Description = item.Content
	}
	if converted.ID == "" {
		converted.ID = item.Link
		converted.GUID = item.Link
	}

	if item.PublishedParsed != nil {
		converted.PubDateMs = item.PublishedParsed.UnixMilli()
	}
	if item.UpdatedParsed != nil {
		converted.UpdatedDateMs = item.UpdatedParsed.UnixMilli()
	}
	if item.Image != nil {
		converted.Image = item.Image.URL
	}

	for _, enc := range item.Enclosures {
		if enc.URL == "" {
			continue
		}
		converted.MediaFile = &domain.MediaFile{
			Category:    categoryForMime(enc.Type),
			URL:         enc.URL,
			ContentType: enc.Type,
			SizeByte:    int64(parseutil.IntOrZero(enc.Length)),
		}
		break
	}

	if itunes := item.ITunesExt; itunes != nil {
		converted.ITunesTitle = itunes.Subtitle
		converted.ITunesEpisodeType = itunes.EpisodeType
		converted.ITunesSeason = itunes.Season
		converted.ITunesEpisode = itunes.Episode
		converted.ITunesExplicit = isYes(itunes.Explicit)
		converted.ITunesBlock = isYes(itunes.Block)
		if itunes.Image != "" && converted.Image == "" {
			converted.Image = itunes.Image
		}
		if converted.MediaFile != nil && itunes.Duration != "" {
			converted.MediaFile.DurationSecond = durationutil.ParseToSeconds(itunes.Duration)
		}
	}

	return converted
}

// isYes interprets the yes/true/explicit strings itunes tags use as booleans.
func isYes(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "true", "explicit":
		return true
	}
	return false
}

// categoryForMime maps a mime type onto a media category.
func categoryForMime(mimeType string) domain.EnclosureCategory {
	switch {
	case strings.HasPrefix(mimeType, "audio/"):
		return domain.CategoryAudio
	case strings.HasPrefix(mimeType, "video/"):
		return domain.CategoryVideo
	case strings.HasPrefix(mimeType, "image/"):
		return domain.CategoryImage
	default:
		return domain.CategoryDocument
	}
}
