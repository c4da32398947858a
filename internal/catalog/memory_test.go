package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/bidora/storefront-server/internal/countdown"
	"github.com/bidora/storefront-server/pkg/errors"
)

var seedTime = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func newSeededStore() Service {
	return NewMemory(SeedListings(seedTime), SeedCategories())
}

func TestMemoryListingByID(t *testing.T) {
	store := newSeededStore()
	ctx := context.Background()

	listing, err := store.ListingByID(ctx, "1")
	if err != nil {
		t.Fatalf("ListingByID returned error: %v", err)
	}
	if listing.Title == "" || listing.CategoryID != "smartphones" {
		t.Errorf("unexpected listing: %+v", listing)
	}

	_, err = store.ListingByID(ctx, "nope")
	if !errors.Is(err, errors.ErrListingNotFound) {
		t.Errorf("err = %v, want listing not found", err)
	}
}

func TestMemoryCategories(t *testing.T) {
	store := newSeededStore()
	ctx := context.Background()

	roots, err := store.RootCategories(ctx)
	if err != nil {
		t.Fatalf("RootCategories returned error: %v", err)
	}
	for _, c := range roots {
		if c.Parent != "" {
			t.Errorf("root category %s has a parent", c.ID)
		}
	}

	tree, err := store.CategoryBySlug(ctx, "electronics")
	if err != nil {
		t.Fatalf("CategoryBySlug returned error: %v", err)
	}
	if len(tree.Subcategories) == 0 {
		t.Error("electronics has no subcategories")
	}

	_, err = store.CategoryBySlug(ctx, "vehicles")
	if !errors.Is(err, errors.ErrCategoryNotFound) {
		t.Errorf("err = %v, want category not found", err)
	}
}

func TestMemoryListingsReturnsCopy(t *testing.T) {
	store := newSeededStore()
	ctx := context.Background()

	first, err := store.Listings(ctx)
	if err != nil {
		t.Fatalf("Listings returned error: %v", err)
	}
	first[0].Title = "mutated"

	second, err := store.Listings(ctx)
	if err != nil {
		t.Fatalf("Listings returned error: %v", err)
	}
	if second[0].Title == "mutated" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestSeedCoversEveryPhase(t *testing.T) {
	listings := SeedListings(seedTime)

	seen := map[countdown.Phase]bool{}
	for _, l := range listings {
		c, err := countdown.Classify(seedTime, l, countdown.DefaultEndingSoonThreshold)
		if err != nil {
			t.Fatalf("seed listing %s does not classify: %v", l.ID, err)
		}
		seen[c.Phase] = true
	}

	for _, phase := range []countdown.Phase{
		countdown.PhaseNotStarted,
		countdown.PhaseActive,
		countdown.PhaseEndingSoon,
		countdown.PhaseEnded,
	} {
		if !seen[phase] {
			t.Errorf("seed data has no %s listing", phase)
		}
	}
}
