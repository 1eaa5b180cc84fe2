// ABOUTME: Content service mediates between HTTP handlers and the content repository
// ABOUTME: Loads the feed aggregate for the builder and persists admin item submissions

package content

import (
	"context"
	"strings"
	"time"

	"microfeed-api/core/builder"
	"microfeed-api/core/domain"
	coreerrors "microfeed-api/core/errors"
	"microfeed-api/core/interfaces"
	"microfeed-api/core/sanitize"

	"github.com/google/uuid"
)

const defaultPageSize = 50

// Service loads feed content for the public builder and persists items
// submitted through the admin endpoint.
type Service struct {
	repo      interfaces.ContentRepository
	sanitizer *sanitize.Sanitizer
	logger    interfaces.Logger
}

// NewService creates a content service.
func NewService(repo interfaces.ContentRepository, sanitizer *sanitize.Sanitizer, logger interfaces.Logger) *Service {
	return &Service{repo: repo, sanitizer: sanitizer, logger: logger}
}

// FetchContent loads a page of the feed aggregate. An empty sort defaults
// to newest-first; the limit is capped at the default page size.
func (s *Service) FetchContent(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
	if q.Sort != domain.SortNewestFirst && q.Sort != domain.SortOldestFirst {
		q.Sort = domain.SortNewestFirst
	}
	if q.Limit <= 0 || q.Limit > defaultPageSize {
		q.Limit = defaultPageSize
	}
	return s.repo.FetchContent(ctx, q)
}

// FetchItemContent loads the aggregate for single-item mode.
func (s *Service) FetchItemContent(ctx context.Context, itemID string) (*domain.FeedContent, error) {
	if itemID == "" {
		return nil, coreerrors.Invalid("itemId", "cannot be empty")
	}
	return s.repo.FetchItem(ctx, itemID)
}

// CreateItem persists a new item. The id and publish timestamp are
// assigned here when absent; the description is sanitized before storage.
func (s *Service) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, coreerrors.Invalid("item", "cannot be empty")
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.GUID == "" {
		item.GUID = item.ID
	}
	if item.PubDateMs == 0 {
		item.PubDateMs = time.Now().UnixMilli()
	}
	if item.Status == 0 {
		item.Status = domain.StatusPublished
	}
	item.Description = s.sanitizeDescription(item.Description)

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, coreerrors.WrapError(err, "failed to save item")
	}

	s.logger.Info("Item created", map[string]interface{}{
		"item_id": item.ID,
		"status":  item.Status.Name(),
	})
	return item, nil
}

// sanitizeDescription cleans a submitted description while keeping the
// embedded metadata directive intact. The sanitizer entity-escapes quotes
// in text, which would corrupt the directive's attribute syntax, so the
// directive is split off first and re-emitted in canonical form.
func (s *Service) sanitizeDescription(raw string) string {
	directive, remainder := builder.ExtractDirective(raw)
	clean := s.sanitizer.Sanitize(remainder)
	if remainder == raw {
		return clean
	}
	return directive.Encode() + clean
}

// UpdateItem persists changes to an existing item.
func (s *Service) UpdateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil || item.ID == "" {
		return nil, coreerrors.Invalid("item.id", "cannot be empty")
	}

	existing, err := s.repo.GetItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, coreerrors.ItemNotFound(item.ID)
	}

	item.UpdatedDateMs = time.Now().UnixMilli()
	item.Description = s.sanitizeDescription(item.Description)
	if item.GUID == "" {
		item.GUID = existing.GUID
	}
	if item.PubDateMs == 0 {
		item.PubDateMs = existing.PubDateMs
	}
	if item.Status == 0 {
		item.Status = existing.Status
	}

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, coreerrors.WrapError(err, "failed to update item")
	}

	s.logger.Info("Item updated", map[string]interface{}{
		"item_id": item.ID,
		"status":  item.Status.Name(),
	})
	return item, nil
}

// DeleteItem soft-deletes an item by flipping its status to deleted. The
// row stays in storage so the admin UI can still list it.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return coreerrors.Invalid("itemId", "cannot be empty")
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return coreerrors.ItemNotFound(itemID)
	}

	item.Status = domain.StatusDeleted
	item.UpdatedDateMs = time.Now().UnixMilli()
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return coreerrors.WrapError(err, "failed to delete item")
	}

	s.logger.Info("Item deleted", map[string]interface{}{"item_id": itemID})
	return nil
}
