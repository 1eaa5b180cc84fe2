// ABOUTME: Public feed handlers serving the JSONFeed document
// ABOUTME: Parses pagination/filter query params and caches built documents

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"microfeed-api/core/builder"
	"microfeed-api/core/domain"
	"microfeed-api/core/interfaces"
	"microfeed-api/pkg/config"
	"microfeed-api/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// ContentService defines the methods the feed handlers need from the
// content service.
type ContentService interface {
	FetchContent(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error)
	FetchItemContent(ctx context.Context, itemID string) (*domain.FeedContent, error)
}

// FeedHandler serves the public JSON feed and single-item documents.
type FeedHandler struct {
	content       ContentService
	supplementary builder.SupplementaryProvider
	cache         interfaces.Cache
	metrics       *metrics.Collector
	cfg           config.FeedConfig
	logger        interfaces.Logger
}

// NewFeedHandler creates a feed handler. The supplementary provider and
// cache may be nil; both are optional.
func NewFeedHandler(
	content ContentService,
	supplementary builder.SupplementaryProvider,
	cache interfaces.Cache,
	collector *metrics.Collector,
	cfg config.FeedConfig,
	logger interfaces.Logger,
) *FeedHandler {
	return &FeedHandler{
		content:       content,
		supplementary: supplementary,
		cache:         cache,
		metrics:       collector,
		cfg:           cfg,
		logger:        logger,
	}
}

// visitorTimezone extracts the IANA timezone hint forwarded by the edge
// network, if any.
func visitorTimezone(r *http.Request) string {
	if tz := r.Header.Get("CF-Timezone"); tz != "" {
		return tz
	}
	return r.Header.Get("X-Visitor-Timezone")
}

// GetFeed handles GET /json.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	sort := query.Get("sort")
	if sort != domain.SortOldestFirst {
		sort = domain.SortNewestFirst
	}

	q := interfaces.ContentQuery{
		NextCursor: query.Get("next_cursor"),
		PrevCursor: query.Get("prev_cursor"),
		Sort:       sort,
		Limit:      h.cfg.PageSize,
	}

	// An explicit ?type= overrides the configured default filter and
	// suppresses the supplementary item.
	typeFilter := h.cfg.DefaultItemType
	explicitType := query.Has("type")
	if explicitType {
		typeFilter = query.Get("type")
	}

	tz := visitorTimezone(r)
	cacheKey := fmt.Sprintf("feed:json:%s:%s:%s:%s:%s", q.Sort, q.NextCursor, q.PrevCursor, typeFilter, tz)
	if h.serveFromCache(ctx, w, cacheKey) {
		return
	}

	content, err := h.content.FetchContent(ctx, q)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := builder.Options{
		BaseURL:              h.cfg.BaseURL,
		VisitorTimezone:      tz,
		TypeFilter:           typeFilter,
		SupplementaryTimeout: time.Duration(h.cfg.LiturgyTimeoutSeconds) * time.Second,
		Logger:               h.logger,
	}
	if !explicitType {
		opts.Supplementary = h.supplementary
	}

	start := time.Now()
	feed := builder.New(content, opts).Build(ctx)
	if h.metrics != nil {
		h.metrics.RecordBuild("feed", time.Since(start), len(feed.Items))
	}

	h.respond(ctx, w, cacheKey, feed)
}

// GetItem handles GET /i/{itemId}/json.
func (h *FeedHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "itemId")
	tz := visitorTimezone(r)

	cacheKey := fmt.Sprintf("feed:item:%s:%s", itemID, tz)
	if h.serveFromCache(ctx, w, cacheKey) {
		return
	}

	content, err := h.content.FetchItemContent(ctx, itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := builder.Options{
		BaseURL:         h.cfg.BaseURL,
		ForOneItem:      true,
		VisitorTimezone: tz,
		Logger:          h.logger,
	}

	start := time.Now()
	feed := builder.New(content, opts).Build(ctx)
	if h.metrics != nil {
		h.metrics.RecordBuild("item", time.Since(start), len(feed.Items))
	}

	h.respond(ctx, w, cacheKey, feed)
}

// serveFromCache writes the cached document when present. Cache errors
// are treated as misses.
func (h *FeedHandler) serveFromCache(ctx context.Context, w http.ResponseWriter, key string) bool {
	if h.cache == nil {
		return false
	}
	data, err := h.cache.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}
	if h.metrics != nil {
		h.metrics.RecordCacheHit()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
	return true
}

// respond serializes the document, stores it in the cache and writes it.
func (h *FeedHandler) respond(ctx context.Context, w http.ResponseWriter, key string, feed *builder.PublicFeed) {
	data, err := json.Marshal(feed)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.cache != nil && h.cfg.CacheTTLSeconds > 0 {
		ttl := time.Duration(h.cfg.CacheTTLSeconds) * time.Second
		if err := h.cache.Set(ctx, key, data, ttl); err != nil && h.logger != nil {
			h.logger.Warn("failed to cache feed document", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
