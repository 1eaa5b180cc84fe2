package content

import (
	"context"

	"microfeed-api/core/domain"
	"microfeed-api/core/interfaces"
)

// mockRepository is a mock implementation of the ContentRepository interface
type mockRepository struct {
	fetchContentFunc func(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error)
	fetchItemFunc    func(ctx context.Context, itemID string) (*domain.FeedContent, error)
	getItemFunc      func(ctx context.Context, itemID string) (*domain.Item, error)

	saved []*domain.Item
}

func (m *mockRepository) FetchContent(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
	if m.fetchContentFunc != nil {
		return m.fetchContentFunc(ctx, q)
	}
	return &domain.FeedContent{}, nil
}

func (m *mockRepository) FetchItem(ctx context.Context, itemID string) (*domain.FeedContent, error) {
	if m.fetchItemFunc != nil {
		return m.fetchItemFunc(ctx, itemID)
	}
	return &domain.FeedContent{}, nil
}

func (m *mockRepository) SaveItem(ctx context.Context, item *domain.Item) error {
	m.saved = append(m.saved, item)
	return nil
}

func (m *mockRepository) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	if m.getItemFunc != nil {
		return m.getItemFunc(ctx, itemID)
	}
	return nil, nil
}

func (m *mockRepository) SaveChannel(ctx context.Context, channel *domain.Channel) error {
	return nil
}

func (m *mockRepository) SaveSettings(ctx context.Context, settings *domain.Settings) error {
	return nil
}

// nopLogger discards all log calls
type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}
