// ABOUTME: HTTP server assembly wiring routes, middleware and handlers
// ABOUTME: Exposes the public feed endpoints plus the admin and operational routes

package api

import (
	"net/http"

	"microfeed-api/api/handlers"
	"microfeed-api/api/middleware"
	"microfeed-api/core/interfaces"
	"microfeed-api/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

// ServerConfig carries everything the router assembly needs.
type ServerConfig struct {
	Feed      *handlers.FeedHandler
	Items     *handlers.ItemHandler
	Channel   *handlers.ChannelHandler
	Metrics   *metrics.Collector
	Logger    interfaces.Logger
	RateLimit int
}

// NewRouter builds the chi router with all routes and middleware
// attached. The returned limiter must be stopped on shutdown; it is nil
// when rate limiting is disabled.
func NewRouter(cfg ServerConfig) (http.Handler, *middleware.RateLimiter) {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Visitor-Timezone"},
		MaxAge:         300,
	}).Handler)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimit*2)
		r.Use(middleware.RateLimit(limiter))
	}

	// Public feed surface
	r.Get("/json", cfg.Feed.GetFeed)
	r.Get("/i/{itemId}/json", cfg.Feed.GetItem)

	// The RSS rendition is not served by this service; point clients at
	// the JSON feed instead of returning a bare 404.
	r.Get("/rss", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Link", `</json>; rel="alternate"; type="application/feed+json"`)
		http.Error(w, "rss is not served here, use /json", http.StatusGone)
	})

	// Admin surface
	r.Route("/admin/api", func(r chi.Router) {
		r.Post("/items", cfg.Items.CreateItem)
		r.Put("/items/{itemId}", cfg.Items.UpdateItem)
		r.Delete("/items/{itemId}", cfg.Items.DeleteItem)
		if cfg.Channel != nil {
			r.Post("/channel/import", cfg.Channel.ImportFeed)
		}
	})

	// Operational surface
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	return r, limiter
}
