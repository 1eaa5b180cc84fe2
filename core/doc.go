// Package core contains the business logic for the microfeed API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (FeedContent, Channel, Item, Settings)
// - builder: Public JSONFeed document builder with the _microfeed extension
// - content: Loading and persisting stored feed content
// - importer: Seeding content from an external RSS/Atom feed
// - liturgy: Supplementary daily-content provider
// - sanitize: HTML sanitation for admin-submitted descriptions
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, storage)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "microfeed-api/core/builder"
//	    "microfeed-api/core/domain"
//	)
//
//	// Load stored content through a ContentRepository, then build the
//	// public document for one request:
//	feed := builder.New(content, builder.Options{
//	    BaseURL: "https://feed.example.com",
//	}).Build(ctx)
package core
