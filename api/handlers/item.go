// ABOUTME: Admin item handlers for creating, updating and soft-deleting items
// ABOUTME: Maps the admin JSON payload onto the domain item model

package handlers

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"microfeed-api/core/domain"
	coreerrors "microfeed-api/core/errors"
	"microfeed-api/core/interfaces"

	"github.com/go-chi/chi/v5"
)

// ItemService defines the methods the admin handlers need from the
// content service.
type ItemService interface {
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
}

// ItemHandler handles admin item persistence requests.
type ItemHandler struct {
	items  ItemService
	logger interfaces.Logger
}

// NewItemHandler creates an item handler.
func NewItemHandler(items ItemService, logger interfaces.Logger) *ItemHandler {
	return &ItemHandler{items: items, logger: logger}
}

// mediaFilePayload is the admin wire shape of an attached media file.
type mediaFilePayload struct {
	Category       string `json:"category"`
	URL            string `json:"url"`
	ContentType    string `json:"content_type"`
	SizeByte       int64  `json:"size_in_byte"`
	DurationSecond int    `json:"duration_in_seconds"`
}

// itemPayload is the admin wire shape of an item.
type itemPayload struct {
	Title             string            `json:"title"`
	Link              string            `json:"link"`
	Image             string            `json:"image"`
	Description       string            `json:"description"`
	Status            int               `json:"status"`
	PubDateMs         int64             `json:"pub_date_ms"`
	Language          string            `json:"language"`
	MediaFile         *mediaFilePayload `json:"media_file"`
	ITunesTitle       string            `json:"itunes:title"`
	ITunesBlock       bool              `json:"itunes:block"`
	ITunesEpisodeType string            `json:"itunes:episodeType"`
	ITunesSeason      string            `json:"itunes:season"`
	ITunesEpisode     string            `json:"itunes:episode"`
	ITunesExplicit    bool              `json:"itunes:explicit"`
}

// itemRequest wraps the item payload the way the admin client submits it.
type itemRequest struct {
	Item *itemPayload `json:"item"`
}

// itemResponse echoes the persisted item back to the admin client.
type itemResponse struct {
	Item *itemPayload `json:"item"`
	ID   string       `json:"id"`
}

func (p *itemPayload) toDomain() *domain.Item {
	item := &domain.Item{
		Title:             p.Title,
		Link:              p.Link,
		Image:             p.Image,
		Description:       p.Description,
		Status:            domain.ItemStatus(p.Status),
		PubDateMs:         p.PubDateMs,
		Language:          p.Language,
		ITunesTitle:       p.ITunesTitle,
		ITunesBlock:       p.ITunesBlock,
		ITunesEpisodeType: p.ITunesEpisodeType,
		ITunesSeason:      p.ITunesSeason,
		ITunesEpisode:     p.ITunesEpisode,
		ITunesExplicit:    p.ITunesExplicit,
	}
	if p.MediaFile != nil && p.MediaFile.URL != "" {
		item.MediaFile = &domain.MediaFile{
			Category:       domain.EnclosureCategory(p.MediaFile.Category),
			URL:            p.MediaFile.URL,
			ContentType:    p.MediaFile.ContentType,
			SizeByte:       p.MediaFile.SizeByte,
			DurationSecond: p.MediaFile.DurationSecond,
		}
	}
	return item
}

func payloadFromDomain(item *domain.Item) *itemPayload {
	p := &itemPayload{
		Title:             item.Title,
		Link:              item.Link,
		Image:             item.Image,
		Description:       item.Description,
		Status:            int(item.Status),
		PubDateMs:         item.PubDateMs,
		Language:          item.Language,
		ITunesTitle:       item.ITunesTitle,
		ITunesBlock:       item.ITunesBlock,
		ITunesEpisodeType: item.ITunesEpisodeType,
		ITunesSeason:      item.ITunesSeason,
		ITunesEpisode:     item.ITunesEpisode,
		ITunesExplicit:    item.ITunesExplicit,
	}
	if item.MediaFile != nil {
		p.MediaFile = &mediaFilePayload{
			Category:       string(item.MediaFile.Category),
			URL:            item.MediaFile.URL,
			ContentType:    item.MediaFile.ContentType,
			SizeByte:       item.MediaFile.SizeByte,
			DurationSecond: item.MediaFile.DurationSecond,
		}
	}
	return p
}

func decodeItemRequest(r *http.Request) (*itemPayload, error) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, coreerrors.Invalid("body", "invalid JSON")
	}
	if req.Item == nil {
		return nil, coreerrors.Invalid("item", "cannot be empty")
	}
	return req.Item, nil
}

// CreateItem handles POST /admin/api/items.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeItemRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.items.CreateItem(r.Context(), payload.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &itemResponse{
		Item: payloadFromDomain(created),
		ID:   created.ID,
	})
}

// UpdateItem handles PUT /admin/api/items/{itemId}.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeItemRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	item := payload.toDomain()
	item.ID = chi.URLParam(r, "itemId")

	updated, err := h.items.UpdateItem(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &itemResponse{
		Item: payloadFromDomain(updated),
		ID:   updated.ID,
	})
}

// DeleteItem handles DELETE /admin/api/items/{itemId}. Items are
// soft-deleted; they stay in storage with a deleted status.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")
	if err := h.items.DeleteItem(r.Context(), itemID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
