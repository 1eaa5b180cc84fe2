// ABOUTME: Public JSON builder turns stored feed content into a JSONFeed 1.1 document
// ABOUTME: Orchestrates channel projection, item filtering/transformation and the vendor extension

package builder

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"microfeed-api/core/domain"
	"microfeed-api/core/interfaces"
	"microfeed-api/pkg/urls"
	htmlutil "microfeed-api/pkg/utils/html"
)

const defaultSupplementaryTimeout = 5 * time.Second

// SupplementaryProvider contributes at most one synthetic item to the
// feed. Implementations must treat every failure as "no item"; the
// builder never lets a provider error reach the response.
type SupplementaryProvider interface {
	FetchDailyItem(ctx context.Context) (*PublicItem, error)
}

// Options configures a single build.
type Options struct {
	// BaseURL is the public origin the feed is served from
	BaseURL string

	// ForOneItem suppresses pagination fields for single-item documents
	ForOneItem bool

	// VisitorTimezone is the IANA timezone hint supplied by the edge
	// network, used for the human-readable publish date
	VisitorTimezone string

	// TypeFilter, when non-empty, keeps only items whose metadata
	// directive declares this type
	TypeFilter string

	// Supplementary optionally contributes a daily synthetic item. The
	// caller leaves it nil when an explicit type filter was requested.
	Supplementary SupplementaryProvider

	// SupplementaryTimeout bounds the provider call (default 5s)
	SupplementaryTimeout time.Duration

	Logger interfaces.Logger
}

// Builder assembles the public JSON document for one request. Builders
// are single-use and request-scoped; nothing is shared across requests.
type Builder struct {
	content *domain.FeedContent
	opts    Options
}

// New creates a builder for the given stored content.
func New(content *domain.FeedContent, opts Options) *Builder {
	if opts.SupplementaryTimeout <= 0 {
		opts.SupplementaryTimeout = defaultSupplementaryTimeout
	}
	return &Builder{content: content, opts: opts}
}

func (b *Builder) publicBucketURL() string {
	return b.content.Settings.WebGlobal.PublicBucketURL
}

func (b *Builder) trackingURLs() []string {
	return b.content.Settings.Analytics.URLs
}

// Build produces the full JSONFeed document. It never returns an error:
// malformed stored fields degrade to absent output fields, and the
// supplementary provider is best-effort.
func (b *Builder) Build(ctx context.Context) *PublicFeed {
	feed := b.buildChannel()
	feed.Items = []*PublicItem{}

	if b.opts.Supplementary != nil {
		if item := b.fetchSupplementary(ctx); item != nil {
			feed.Items = append(feed.Items, item)
		}
	}

	for _, item := range b.content.Items {
		if item.Status != domain.StatusPublished && item.Status != domain.StatusUnlisted {
			continue
		}
		if b.opts.TypeFilter != "" && ScanType(item.Description) != b.opts.TypeFilter {
			continue
		}

		decorated := Decorate(item, b.opts.BaseURL, b.publicBucketURL(), b.opts.VisitorTimezone)
		feed.Items = append(feed.Items, b.transformItem(decorated))
	}

	feed.Microfeed = b.buildFeedExtension(feed)
	return feed
}

// fetchSupplementary calls the provider with a bounded timeout and
// swallows every failure.
func (b *Builder) fetchSupplementary(ctx context.Context) *PublicItem {
	ctx, cancel := context.WithTimeout(ctx, b.opts.SupplementaryTimeout)
	defer cancel()

	item, err := b.opts.Supplementary.FetchDailyItem(ctx)
	if err != nil {
		if b.opts.Logger != nil {
			b.opts.Logger.Warn("Supplementary item fetch failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil
	}
	return item
}

// buildChannel projects the stored channel and settings into the
// top-level JSONFeed fields.
func (b *Builder) buildChannel() *PublicFeed {
	channel := b.content.Channel

	feed := &PublicFeed{
		Version:     domain.JSONFeedVersion,
		Title:       channel.Title,
		Description: channel.Description,
		FeedURL:     urls.JSONFeed(b.opts.BaseURL),
	}
	if feed.Title == "" {
		feed.Title = "untitled"
	}

	if channel.Link != "" {
		feed.HomePageURL = channel.Link
	}

	if b.content.ItemsNextCursor != "" && !b.opts.ForOneItem {
		feed.NextURL = fmt.Sprintf("%s?next_cursor=%s&sort=%s",
			feed.FeedURL, url.QueryEscape(b.content.ItemsNextCursor), b.content.ItemsSortOrder)
	}

	if channel.Image != "" {
		feed.Icon = urls.JoinWithRelative(b.publicBucketURL(), channel.Image, b.opts.BaseURL)
	}
	if favicon := b.content.Settings.WebGlobal.Favicon.URL; favicon != "" {
		feed.Favicon = urls.JoinWithRelative(b.publicBucketURL(), favicon, b.opts.BaseURL)
	}

	if channel.Publisher != "" {
		feed.Authors = []Author{{Name: channel.Publisher}}
	}
	if channel.Language != "" {
		feed.Language = channel.Language
	}
	if channel.ITunesComplete {
		feed.Expired = true
	}

	return feed
}

// buildFeedExtension computes the feed-level _microfeed block: the
// category tree, subscribe methods, itunes passthrough and pagination.
func (b *Builder) buildFeedExtension(feed *PublicFeed) *FeedExtension {
	channel := b.content.Channel

	ext := &FeedExtension{
		MicrofeedVersion: domain.Version,
		BaseURL:          b.opts.BaseURL,
		Categories:       []Category{},
		DescriptionText:  htmlutil.StripHTML(channel.Description),
	}

	for _, stored := range channel.Categories {
		topAndSub := strings.SplitN(stored, "/", 2)
		name := strings.TrimSpace(topAndSub[0])
		if name == "" {
			continue
		}
		cat := Category{Name: name}
		if len(topAndSub) > 1 {
			if sub := strings.TrimSpace(topAndSub[1]); sub != "" {
				cat.Categories = []Category{{Name: sub}}
			}
		}
		ext.Categories = append(ext.Categories, cat)
	}

	ext.SubscribeMethods = b.buildSubscribeMethods()

	ext.ITunesExplicit = channel.ITunesExplicit
	ext.ITunesTitle = channel.ITunesTitle
	ext.Copyright = channel.Copyright
	ext.ITunesType = channel.ITunesType
	ext.ITunesBlock = channel.ITunesBlock
	ext.ITunesComplete = channel.ITunesComplete
	ext.ITunesNewFeedURL = channel.ITunesNewFeedURL
	ext.ITunesEmail = channel.ITunesEmail

	ext.ItemsSortOrder = b.content.ItemsSortOrder
	if b.content.ItemsNextCursor != "" && !b.opts.ForOneItem {
		ext.ItemsNextCursor = b.content.ItemsNextCursor
		ext.NextURL = feed.NextURL
	}
	if b.content.ItemsPrevCursor != "" && !b.opts.ForOneItem {
		ext.ItemsPrevCursor = b.content.ItemsPrevCursor
		ext.PrevURL = fmt.Sprintf("%s?prev_cursor=%s&sort=%s",
			feed.FeedURL, url.QueryEscape(b.content.ItemsPrevCursor), b.content.ItemsSortOrder)
	}

	return ext
}

// buildSubscribeMethods projects the enabled subscribe methods. Icons are
// resolved against the public bucket; non-editable rss/json methods get
// their URL forced to the canonical feed URL of that type.
func (b *Builder) buildSubscribeMethods() []domain.SubscribeMethod {
	methods := []domain.SubscribeMethod{}
	for _, m := range b.content.Settings.Subscribe.Methods {
		if !m.Enabled {
			continue
		}

		m.Image = urls.JoinWithRelative(b.publicBucketURL(), m.Image, b.opts.BaseURL)
		if !m.Editable {
			switch m.Type {
			case "rss":
				m.URL = urls.RSSFeed(b.opts.BaseURL)
			case "json":
				m.URL = urls.JSONFeed(b.opts.BaseURL)
			}
		}
		methods = append(methods, m)
	}
	return methods
}
