package search

import "github.com/bidora/storefront-server/pkg/types"

// Pagination defaults shared by the shelf and search endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// Page slices an already-ordered result set. Out-of-range pages return an
// empty (non-nil) slice so the response envelope stays well-formed.
func Page(listings []types.Listing, page, limit int) []types.Listing {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	offset := (page - 1) * limit
	if offset >= len(listings) {
		return []types.Listing{}
	}
	end := offset + limit
	if end > len(listings) {
		end = len(listings)
	}
	return append([]types.Listing{}, listings[offset:end]...)
}
