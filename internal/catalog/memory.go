package catalog

import (
	"context"
	"strconv"

	"github.com/bidora/storefront-server/pkg/types"
	"github.com/charmbracelet/log"
)

// memoryStore serves an immutable snapshot of listings and categories.
// Reads never copy lazily; every accessor hands out fresh slices so callers
// can sort or filter without touching the seed data.
type memoryStore struct {
	listings   []types.Listing
	categories []types.Category
}

// NewMemory returns a catalog backed by the given snapshot.
func NewMemory(listings []types.Listing, categories []types.Category) Service {
	return &memoryStore{listings: listings, categories: categories}
}

func (s *memoryStore) Health() map[string]string {
	return map[string]string{
		"status":     "up",
		"message":    "It's healthy",
		"source":     "memory",
		"listings":   strconv.Itoa(len(s.listings)),
		"categories": strconv.Itoa(len(s.categories)),
	}
}

func (s *memoryStore) Close() error {
	log.Info("In-memory catalog released")
	return nil
}

func (s *memoryStore) Listings(ctx context.Context) ([]types.Listing, error) {
	return append([]types.Listing(nil), s.listings...), nil
}

func (s *memoryStore) ListingByID(ctx context.Context, id string) (types.Listing, error) {
	for _, listing := range s.listings {
		if listing.ID == id {
			return listing, nil
		}
	}
	return types.Listing{}, errListingNotFound(id)
}

func (s *memoryStore) Categories(ctx context.Context) ([]types.Category, error) {
	return append([]types.Category(nil), s.categories...), nil
}

func (s *memoryStore) RootCategories(ctx context.Context) ([]types.Category, error) {
	roots := make([]types.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.Parent == "" {
			roots = append(roots, c)
		}
	}
	return roots, nil
}

func (s *memoryStore) CategoryBySlug(ctx context.Context, slug string) (types.CategoryTree, error) {
	for _, c := range s.categories {
		if c.Slug != slug {
			continue
		}
		tree := types.CategoryTree{Category: c}
		for _, child := range s.categories {
			if child.Parent == c.ID {
				tree.Subcategories = append(tree.Subcategories, child)
			}
		}
		return tree, nil
	}
	return types.CategoryTree{}, errCategoryNotFound(slug)
}
