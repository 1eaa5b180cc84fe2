package builder

import (
	"context"
	"errors"
)

// mockLogger records log calls for assertions
type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

// mockSupplementary is a mock implementation of SupplementaryProvider
type mockSupplementary struct {
	item *PublicItem
	err  error

	// block makes the provider wait for context cancellation
	block bool

	called bool
}

func (m *mockSupplementary) FetchDailyItem(ctx context.Context) (*PublicItem, error) {
	m.called = true
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}

var errProviderDown = errors.New("provider unavailable")
