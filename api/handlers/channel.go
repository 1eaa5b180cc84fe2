// ABOUTME: Admin channel handlers, currently the RSS import endpoint
// ABOUTME: Imports an external RSS/Atom feed into the content repository

package handlers

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	coreerrors "microfeed-api/core/errors"
	"microfeed-api/core/interfaces"
)

// ImportService defines the methods the channel handlers need from the
// importer service.
type ImportService interface {
	Import(ctx context.Context, feedURL string) (int, error)
}

// ChannelHandler handles admin channel requests.
type ChannelHandler struct {
	importer ImportService
	logger   interfaces.Logger
}

// NewChannelHandler creates a channel handler.
func NewChannelHandler(importer ImportService, logger interfaces.Logger) *ChannelHandler {
	return &ChannelHandler{importer: importer, logger: logger}
}

type importRequest struct {
	URL string `json:"url"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

// ImportFeed handles POST /admin/api/channel/import. It fetches the
// given RSS/Atom feed and stores its channel and items.
func (h *ChannelHandler) ImportFeed(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, coreerrors.Invalid("body", "invalid JSON"))
		return
	}
	if req.URL == "" {
		writeError(w, coreerrors.Invalid("url", "cannot be empty"))
		return
	}

	count, err := h.importer.Import(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("Imported external feed", map[string]interface{}{
		"url":      req.URL,
		"imported": count,
	})
	writeJSON(w, http.StatusOK, &importResponse{Imported: count})
}
