package handlers

import (
	"context"
	"time"

	"microfeed-api/core/builder"
	"microfeed-api/core/domain"
	"microfeed-api/core/interfaces"
)

// mockContentService is a mock implementation of ContentService
type mockContentService struct {
	fetchContentFunc func(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error)
	fetchItemFunc    func(ctx context.Context, itemID string) (*domain.FeedContent, error)

	lastQuery interfaces.ContentQuery
}

func (m *mockContentService) FetchContent(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
	m.lastQuery = q
	if m.fetchContentFunc != nil {
		return m.fetchContentFunc(ctx, q)
	}
	return &domain.FeedContent{}, nil
}

func (m *mockContentService) FetchItemContent(ctx context.Context, itemID string) (*domain.FeedContent, error) {
	if m.fetchItemFunc != nil {
		return m.fetchItemFunc(ctx, itemID)
	}
	return &domain.FeedContent{}, nil
}

// mockItemService is a mock implementation of ItemService
type mockItemService struct {
	createFunc func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	updateFunc func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	deleteFunc func(ctx context.Context, itemID string) error
}

func (m *mockItemService) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	return item, nil
}

func (m *mockItemService) UpdateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, item)
	}
	return item, nil
}

func (m *mockItemService) DeleteItem(ctx context.Context, itemID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, itemID)
	}
	return nil
}

// mockImportService is a mock implementation of ImportService
type mockImportService struct {
	importFunc func(ctx context.Context, feedURL string) (int, error)
}

func (m *mockImportService) Import(ctx context.Context, feedURL string) (int, error) {
	if m.importFunc != nil {
		return m.importFunc(ctx, feedURL)
	}
	return 0, nil
}

// mockSupplementary is a mock implementation of builder.SupplementaryProvider
type mockSupplementary struct {
	called bool
}

func (m *mockSupplementary) FetchDailyItem(ctx context.Context) (*builder.PublicItem, error) {
	m.called = true
	return &builder.PublicItem{ID: "liturgia-hoje", Title: "Liturgia Diária"}, nil
}

// mockCache is an in-memory Cache for handler tests
type mockCache struct {
	entries map[string][]byte
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if data, ok := m.entries[key]; ok {
		return data, nil
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.entries[key] = value
	m.sets++
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

// nopLogger discards all log calls
type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}
