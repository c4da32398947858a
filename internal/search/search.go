// Package search filters, orders and paginates catalog listings for the
// browse surfaces. It never mutates its input and uses the countdown
// classifier as its single notion of "live" and "upcoming".
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/bidora/storefront-server/internal/countdown"
	"github.com/bidora/storefront-server/pkg/errors"
	"github.com/bidora/storefront-server/pkg/types"
)

// Criterion selects the ordering applied to a listing collection.
type Criterion string

const (
	CriterionNewest       Criterion = "newest"
	CriterionEndingSoon   Criterion = "ending_soon"
	CriterionStartingSoon Criterion = "starting_soon"
	CriterionPriceAsc     Criterion = "price_asc"
	CriterionPriceDesc    Criterion = "price_desc"
	CriterionMostBids     Criterion = "most_bids"
)

// DefaultStartingSoonWindow bounds the look-ahead for upcoming listings.
const DefaultStartingSoonWindow = 24 * time.Hour

// ParseCriterion maps a sortBy query value to a Criterion. The storefront
// client historically sent kebab-case spellings ("ending-soon",
// "lowest-price", "highest-bid"); those stay accepted alongside the canonical
// names. An empty value defaults to newest; anything else is rejected rather
// than silently defaulted so misconfigured callers surface in testing.
func ParseCriterion(raw string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "newest":
		return CriterionNewest, nil
	case "ending_soon", "ending-soon":
		return CriterionEndingSoon, nil
	case "starting_soon", "starting-soon":
		return CriterionStartingSoon, nil
	case "price_asc", "price-asc", "lowest-price":
		return CriterionPriceAsc, nil
	case "price_desc", "price-desc", "highest-price", "highest-bid":
		return CriterionPriceDesc, nil
	case "most_bids", "most-bids":
		return CriterionMostBids, nil
	}
	return "", errors.New(errors.ErrUnsupportedSortCriteria, "unsupported sort criterion: "+raw)
}

// Filters are AND-combined constraints applied before sorting. Nil price
// bounds mean unbounded; an empty condition set matches every condition.
type Filters struct {
	Query      string
	CategoryID string
	Conditions []types.Condition
	MinPrice   *float64
	MaxPrice   *float64

	// LiveOnly drops ended listings; UpcomingOnly keeps only listings that
	// have not started yet and start inside the look-ahead window.
	LiveOnly     bool
	UpcomingOnly bool
}

// Options tune the time windows the classifier and the upcoming filter use.
// Zero values fall back to the package defaults.
type Options struct {
	EndingSoonThreshold time.Duration
	StartingSoonWindow  time.Duration
}

// SelectAndSort filters the listings, orders them by the criterion and
// returns a newly allocated slice. The sort is stable with ties broken by id
// ascending, so output is deterministic. Listings whose dates cannot be
// classified are dropped from time-sensitive selections instead of failing
// the whole collection.
func SelectAndSort(now time.Time, listings []types.Listing, criterion Criterion, filters Filters, opts Options) ([]types.Listing, error) {
	window := opts.StartingSoonWindow
	if window <= 0 {
		window = DefaultStartingSoonWindow
	}

	timeSensitive := filters.LiveOnly || filters.UpcomingOnly ||
		criterion == CriterionEndingSoon || criterion == CriterionStartingSoon

	query := strings.ToLower(strings.TrimSpace(filters.Query))

	out := make([]types.Listing, 0, len(listings))
	for _, listing := range listings {
		if query != "" &&
			!strings.Contains(strings.ToLower(listing.Title), query) &&
			!strings.Contains(strings.ToLower(listing.Description), query) {
			continue
		}
		if filters.CategoryID != "" && listing.CategoryID != filters.CategoryID {
			continue
		}
		if len(filters.Conditions) > 0 && !conditionMatches(listing.Condition, filters.Conditions) {
			continue
		}
		price, _ := listing.EffectivePrice()
		if filters.MinPrice != nil && price < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && price > *filters.MaxPrice {
			continue
		}

		if timeSensitive {
			c, err := countdown.Classify(now, listing, opts.EndingSoonThreshold)
			if err != nil {
				// One bad record never breaks the view.
				continue
			}
			if filters.LiveOnly && !c.Live() {
				continue
			}
			if criterion == CriterionEndingSoon && !c.Live() {
				continue
			}
			if filters.UpcomingOnly || criterion == CriterionStartingSoon {
				if c.Phase != countdown.PhaseNotStarted {
					continue
				}
				if listing.StartDate.Sub(now) > window {
					continue
				}
			}
		}

		out = append(out, listing)
	}

	less, err := comparator(criterion)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		cmp := less(out[i], out[j])
		if cmp == 0 {
			return out[i].ID < out[j].ID
		}
		return cmp < 0
	})
	return out, nil
}

func conditionMatches(c types.Condition, set []types.Condition) bool {
	for _, want := range set {
		if c == want {
			return true
		}
	}
	return false
}

func comparator(criterion Criterion) (func(a, b types.Listing) int, error) {
	switch criterion {
	case CriterionNewest:
		return func(a, b types.Listing) int {
			return compareTime(b.CreatedAt, a.CreatedAt)
		}, nil
	case CriterionEndingSoon:
		return func(a, b types.Listing) int {
			return compareTime(a.EndDate, b.EndDate)
		}, nil
	case CriterionStartingSoon:
		return func(a, b types.Listing) int {
			return compareTime(a.StartDate, b.StartDate)
		}, nil
	case CriterionPriceAsc:
		return func(a, b types.Listing) int {
			return compareFloat(effective(a), effective(b))
		}, nil
	case CriterionPriceDesc:
		return func(a, b types.Listing) int {
			return compareFloat(effective(b), effective(a))
		}, nil
	case CriterionMostBids:
		return func(a, b types.Listing) int {
			return b.BidsCount - a.BidsCount
		}, nil
	}
	return nil, errors.New(errors.ErrUnsupportedSortCriteria, "unsupported sort criterion: "+string(criterion))
}

func effective(l types.Listing) float64 {
	price, _ := l.EffectivePrice()
	return price
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
