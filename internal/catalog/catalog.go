// Package catalog provides read-only access to the storefront's listings and
// category tree. Two implementations exist: an in-memory store seeded with
// the demo fixture set, and a Postgres-backed store for deployments with a
// real catalog database.
package catalog

import (
	"context"

	"github.com/bidora/storefront-server/pkg/errors"
	"github.com/bidora/storefront-server/pkg/types"
)

// Service is the catalog collaborator consumed by the HTTP and WebSocket
// layers. Listings are immutable snapshots; there is no write path.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are implementation-specific.
	Health() map[string]string

	// Close releases any underlying resources.
	Close() error

	// LISTING METHODS
	Listings(ctx context.Context) ([]types.Listing, error)
	ListingByID(ctx context.Context, id string) (types.Listing, error)

	// CATEGORY METHODS
	Categories(ctx context.Context) ([]types.Category, error)
	RootCategories(ctx context.Context) ([]types.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (types.CategoryTree, error)
}

// Not-found failures shared by both store implementations.
func errListingNotFound(id string) error {
	return errors.New(errors.ErrListingNotFound, "listing not found: "+id)
}

func errCategoryNotFound(slug string) error {
	return errors.New(errors.ErrCategoryNotFound, "category not found: "+slug)
}
