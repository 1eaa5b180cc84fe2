// ABOUTME: Storage interfaces for persisting channel and item entities
// ABOUTME: Defines contracts for content repository implementations

package interfaces

import (
	"context"

	"microfeed-api/core/domain"
)

// ContentQuery selects a page of the stored feed content.
type ContentQuery struct {
	// NextCursor requests the page after this cursor, empty for the first page
	NextCursor string

	// PrevCursor requests the page before this cursor
	PrevCursor string

	// Sort is one of domain.SortNewestFirst / domain.SortOldestFirst
	Sort string

	// Limit caps the number of items per page
	Limit int
}

// ContentRepository supplies the stored feed aggregate and persists items.
// The public builder only ever reads through this interface.
type ContentRepository interface {
	// FetchContent loads the channel, settings and a page of items together
	// with the pagination cursors for the requested sort order.
	FetchContent(ctx context.Context, q ContentQuery) (*domain.FeedContent, error)

	// FetchItem loads the channel, settings and the single item with the
	// given id. Returns a NotFoundError when the item does not exist.
	FetchItem(ctx context.Context, itemID string) (*domain.FeedContent, error)

	// SaveItem inserts or updates an item.
	SaveItem(ctx context.Context, item *domain.Item) error

	// GetItem loads a single raw item by id.
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)

	// SaveChannel replaces the stored channel metadata.
	SaveChannel(ctx context.Context, channel *domain.Channel) error

	// SaveSettings replaces the stored feed settings.
	SaveSettings(ctx context.Context, settings *domain.Settings) error
}
