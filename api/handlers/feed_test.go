package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"microfeed-api/core/builder"
	"microfeed-api/core/domain"
	coreerrors "microfeed-api/core/errors"
	"microfeed-api/core/interfaces"
	"microfeed-api/pkg/config"
	"microfeed-api/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

func feedConfig() config.FeedConfig {
	return config.FeedConfig{
		BaseURL:         "https://feed.example.com",
		PageSize:        25,
		CacheTTLSeconds: 60,
	}
}

func newFeedRouter(h *FeedHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/json", h.GetFeed)
	r.Get("/i/{itemId}/json", h.GetItem)
	return r
}

func contentWithItems(items ...domain.Item) *domain.FeedContent {
	return &domain.FeedContent{
		Channel: domain.Channel{Title: "Canal"},
		Items:   items,
	}
}

func decodeFeed(t *testing.T, rec *httptest.ResponseRecorder) *builder.PublicFeed {
	t.Helper()
	var feed builder.PublicFeed
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("response is not a feed document: %v", err)
	}
	return &feed
}

func TestGetFeed_ReturnsDocument(t *testing.T) {
	service := &mockContentService{
		fetchContentFunc: func(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
			return contentWithItems(domain.Item{
				ID:        "a",
				Title:     "Aviso",
				Status:    domain.StatusPublished,
				PubDateMs: 1710864000000,
			}), nil
		},
	}
	handler := NewFeedHandler(service, nil, nil, nil, feedConfig(), nopLogger{})

	rec := httptest.NewRecorder()
	newFeedRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	feed := decodeFeed(t, rec)
	if feed.Version != domain.JSONFeedVersion {
		t.Errorf("version = %q", feed.Version)
	}
	if len(feed.Items) != 1 || feed.Items[0].ID != "a" {
		t.Errorf("items = %+v", feed.Items)
	}
	if service.lastQuery.Limit != 25 {
		t.Errorf("limit = %d, want configured page size", service.lastQuery.Limit)
	}
	if service.lastQuery.Sort != domain.SortNewestFirst {
		t.Errorf("sort = %q", service.lastQuery.Sort)
	}
}

func TestGetFeed_QueryParameters(t *testing.T) {
	service := &mockContentService{}
	handler := NewFeedHandler(service, nil, nil, nil, feedConfig(), nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/json?sort=oldest_first&next_cursor=123&prev_cursor=456", nil)
	newFeedRouter(handler).ServeHTTP(httptest.NewRecorder(), req)

	if service.lastQuery.Sort != domain.SortOldestFirst {
		t.Errorf("sort = %q", service.lastQuery.Sort)
	}
	if service.lastQuery.NextCursor != "123" || service.lastQuery.PrevCursor != "456" {
		t.Errorf("cursors = %q/%q", service.lastQuery.NextCursor, service.lastQuery.PrevCursor)
	}
}

func TestGetFeed_SupplementaryIncludedByDefault(t *testing.T) {
	provider := &mockSupplementary{}
	handler := NewFeedHandler(&mockContentService{}, provider, nil, nil, feedConfig(), nopLogger{})

	rec := httptest.NewRecorder()
	newFeedRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/json", nil))

	if !provider.called {
		t.Error("supplementary provider was not consulted")
	}
	feed := decodeFeed(t, rec)
	if len(feed.Items) != 1 || feed.Items[0].ID != "liturgia-hoje" {
		t.Errorf("items = %+v, want supplementary item", feed.Items)
	}
}

func TestGetFeed_ExplicitTypeSuppressesSupplementary(t *testing.T) {
	provider := &mockSupplementary{}
	handler := NewFeedHandler(&mockContentService{}, provider, nil, nil, feedConfig(), nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/json?type=santo", nil)
	newFeedRouter(handler).ServeHTTP(httptest.NewRecorder(), req)

	if provider.called {
		t.Error("explicit type filter must suppress the supplementary provider")
	}
}

func TestGetFeed_DefaultTypeFilterFromConfig(t *testing.T) {
	service := &mockContentService{
		fetchContentFunc: func(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
			santo := domain.Item{ID: "s", Status: domain.StatusPublished,
				Description: `[meta type="santo" tags=""]x`}
			geral := domain.Item{ID: "g", Status: domain.StatusPublished}
			return contentWithItems(santo, geral), nil
		},
	}
	cfg := feedConfig()
	cfg.DefaultItemType = "santo"
	handler := NewFeedHandler(service, nil, nil, nil, cfg, nopLogger{})

	rec := httptest.NewRecorder()
	newFeedRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/json", nil))

	feed := decodeFeed(t, rec)
	if len(feed.Items) != 1 || feed.Items[0].ID != "s" {
		t.Errorf("items = %+v, want configured default filter applied", feed.Items)
	}
}

func TestGetFeed_EmptyExplicitTypeClearsDefault(t *testing.T) {
	service := &mockContentService{
		fetchContentFunc: func(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
			return contentWithItems(domain.Item{ID: "g", Status: domain.StatusPublished}), nil
		},
	}
	cfg := feedConfig()
	cfg.DefaultItemType = "santo"
	handler := NewFeedHandler(service, nil, nil, nil, cfg, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/json?type=", nil)
	newFeedRouter(handler).ServeHTTP(rec, req)

	feed := decodeFeed(t, rec)
	if len(feed.Items) != 1 {
		t.Errorf("items = %+v, want empty explicit type to disable filtering", feed.Items)
	}
}

func TestGetFeed_CachesResponse(t *testing.T) {
	cache := newMockCache()
	collector := metrics.NewCollector()
	handler := NewFeedHandler(&mockContentService{}, nil, cache, collector, feedConfig(), nopLogger{})
	router := newFeedRouter(handler)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/json", nil))
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/json", nil))
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, second request must hit the cache", cache.sets)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response differs from built response")
	}
}

func TestGetFeed_CacheKeyVariesWithQuery(t *testing.T) {
	cache := newMockCache()
	handler := NewFeedHandler(&mockContentService{}, nil, cache, nil, feedConfig(), nopLogger{})
	router := newFeedRouter(handler)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/json", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/json?sort=oldest_first", nil))

	if cache.sets != 2 {
		t.Errorf("cache sets = %d, want distinct keys per query", cache.sets)
	}
}

func TestGetFeed_StorageError(t *testing.T) {
	service := &mockContentService{
		fetchContentFunc: func(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
			return nil, coreerrors.Invalid("cursor", "must be a millisecond timestamp")
		},
	}
	handler := NewFeedHandler(service, nil, nil, nil, feedConfig(), nopLogger{})

	rec := httptest.NewRecorder()
	newFeedRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/json?next_cursor=bogus", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetItem_SingleItemMode(t *testing.T) {
	service := &mockContentService{
		fetchItemFunc: func(ctx context.Context, itemID string) (*domain.FeedContent, error) {
			content := contentWithItems(domain.Item{
				ID: itemID, Title: "Aviso", Status: domain.StatusPublished, PubDateMs: 1710864000000,
			})
			content.ItemsNextCursor = "123"
			return content, nil
		},
	}
	handler := NewFeedHandler(service, &mockSupplementary{}, nil, nil, feedConfig(), nopLogger{})

	rec := httptest.NewRecorder()
	newFeedRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/i/abc/json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	feed := decodeFeed(t, rec)
	if len(feed.Items) != 1 || feed.Items[0].ID != "abc" {
		t.Errorf("items = %+v, want the requested item only", feed.Items)
	}
	if feed.NextURL != "" {
		t.Errorf("NextURL = %q, want pagination suppressed", feed.NextURL)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	service := &mockContentService{
		fetchItemFunc: func(ctx context.Context, itemID string) (*domain.FeedContent, error) {
			return nil, coreerrors.ItemNotFound(itemID)
		},
	}
	handler := NewFeedHandler(service, nil, nil, nil, feedConfig(), nopLogger{})

	rec := httptest.NewRecorder()
	newFeedRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/i/missing/json", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not JSON: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Errorf("error code = %q", body.Error.Code)
	}
}

func TestVisitorTimezone(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	if got := visitorTimezone(req); got != "" {
		t.Errorf("timezone = %q, want empty", got)
	}

	req.Header.Set("X-Visitor-Timezone", "Europe/Lisbon")
	if got := visitorTimezone(req); got != "Europe/Lisbon" {
		t.Errorf("timezone = %q", got)
	}

	req.Header.Set("CF-Timezone", "America/Sao_Paulo")
	if got := visitorTimezone(req); got != "America/Sao_Paulo" {
		t.Errorf("timezone = %q, want edge header preferred", got)
	}
}
