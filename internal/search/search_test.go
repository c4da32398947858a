package search

import (
	"reflect"
	"testing"
	"time"

	"github.com/bidora/storefront-server/pkg/errors"
	"github.com/bidora/storefront-server/pkg/types"
)

var base = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func fixture() []types.Listing {
	return []types.Listing{
		{
			ID: "a", Title: "iPhone 14 Purple", Description: "Great phone",
			CategoryID: "smartphones", Condition: types.ConditionLikeNew,
			StartingPrice: 400, CurrentBid: 100, BidsCount: 5,
			StartDate: base.Add(-2 * time.Hour), EndDate: base.Add(3 * time.Hour),
			CreatedAt: base.Add(-24 * time.Hour),
		},
		{
			ID: "b", Title: "MacBook Air", Description: "Laptop in great shape",
			CategoryID: "laptops", Condition: types.ConditionNew,
			StartingPrice: 700, CurrentBid: 50, BidsCount: 3,
			StartDate: base.Add(-5 * time.Hour), EndDate: base.Add(1 * time.Hour),
			CreatedAt: base.Add(-12 * time.Hour),
		},
		{
			ID: "c", Title: "iPad Silver", Description: "Tablet with scratches",
			CategoryID: "tablets", Condition: types.ConditionGood,
			StartingPrice: 200, BidsCount: 0,
			StartDate: base.Add(2 * time.Hour), EndDate: base.Add(18 * time.Hour),
			CreatedAt: base.Add(-8 * time.Hour),
		},
		{
			ID: "d", Title: "Old Power Bank", Description: "Ended already",
			CategoryID: "accessories", Condition: types.ConditionFair,
			StartingPrice: 30, CurrentBid: 41, BidsCount: 3,
			StartDate: base.Add(-72 * time.Hour), EndDate: base.Add(-5 * time.Minute),
			CreatedAt: base.Add(-80 * time.Hour),
		},
	}
}

func ids(listings []types.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestSelectAndSortPriceDesc(t *testing.T) {
	out, err := SelectAndSort(base, fixture(), CriterionPriceDesc, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	// Effective prices: a=100 (bid), b=50 (bid), c=200 (starting), d=41 (bid).
	want := []string{"c", "a", "b", "d"}
	if got := ids(out); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSelectAndSortMostBidsWithTies(t *testing.T) {
	out, err := SelectAndSort(base, fixture(), CriterionMostBids, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	// Counts: a=5, b=3, d=3, c=0; the b/d tie breaks by id ascending.
	want := []string{"a", "b", "d", "c"}
	if got := ids(out); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSelectAndSortNewest(t *testing.T) {
	out, err := SelectAndSort(base, fixture(), CriterionNewest, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	want := []string{"c", "b", "a", "d"}
	if got := ids(out); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSelectAndSortEndingSoonExcludesEnded(t *testing.T) {
	out, err := SelectAndSort(base, fixture(), CriterionEndingSoon, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	want := []string{"b", "a", "c"}
	if got := ids(out); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSelectAndSortStartingSoonWindow(t *testing.T) {
	listings := fixture()
	// Starts beyond the look-ahead window; must not appear.
	listings = append(listings, types.Listing{
		ID: "e", Title: "Far future", CategoryID: "cameras",
		StartingPrice: 100,
		StartDate:     base.Add(48 * time.Hour), EndDate: base.Add(96 * time.Hour),
		CreatedAt: base,
	})

	out, err := SelectAndSort(base, listings, CriterionStartingSoon, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	want := []string{"c"}
	if got := ids(out); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSelectAndSortFilters(t *testing.T) {
	min, max := 40.0, 150.0

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"query matches title case-insensitively", Filters{Query: "iphone"}, []string{"a"}},
		{"query matches description", Filters{Query: "tablet"}, []string{"c"}},
		{"category", Filters{CategoryID: "laptops"}, []string{"b"}},
		{"condition set", Filters{Conditions: []types.Condition{types.ConditionNew, types.ConditionGood}}, []string{"c", "b"}},
		{"price range over effective price", Filters{MinPrice: &min, MaxPrice: &max}, []string{"b", "a", "d"}},
		{"live only", Filters{LiveOnly: true}, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := SelectAndSort(base, fixture(), CriterionNewest, tt.filters, Options{})
			if err != nil {
				t.Fatalf("SelectAndSort returned error: %v", err)
			}
			if got := ids(out); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("result = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterOrderIsCommutative(t *testing.T) {
	min := 40.0
	combined := Filters{CategoryID: "smartphones", MinPrice: &min}

	// Price-then-category must equal category-then-price; with AND-combined
	// filters both reduce to the combined filter applied once.
	byPrice, err := SelectAndSort(base, fixture(), CriterionNewest, Filters{MinPrice: &min}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	both, err := SelectAndSort(base, byPrice, CriterionNewest, Filters{CategoryID: "smartphones"}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	direct, err := SelectAndSort(base, fixture(), CriterionNewest, combined, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	if !reflect.DeepEqual(ids(both), ids(direct)) {
		t.Errorf("sequential filters = %v, combined = %v", ids(both), ids(direct))
	}
}

func TestSelectAndSortIsIdempotent(t *testing.T) {
	first, err := SelectAndSort(base, fixture(), CriterionPriceAsc, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	second, err := SelectAndSort(base, first, CriterionPriceAsc, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Errorf("re-sorting changed the order: %v vs %v", ids(first), ids(second))
	}
}

func TestSelectAndSortDoesNotMutateInput(t *testing.T) {
	in := fixture()
	original := ids(in)

	if _, err := SelectAndSort(base, in, CriterionPriceDesc, Filters{}, Options{}); err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	if got := ids(in); !reflect.DeepEqual(got, original) {
		t.Errorf("input mutated: %v, want %v", got, original)
	}
}

func TestSelectAndSortDropsInvalidDatesFromTimeViews(t *testing.T) {
	listings := append(fixture(), types.Listing{
		ID: "z", Title: "Broken record", StartingPrice: 10,
		CreatedAt: base,
	})

	timeView, err := SelectAndSort(base, listings, CriterionEndingSoon, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	for _, l := range timeView {
		if l.ID == "z" {
			t.Error("listing with invalid dates appeared in a time-based view")
		}
	}

	// Non-time views keep it.
	plain, err := SelectAndSort(base, listings, CriterionPriceAsc, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	found := false
	for _, l := range plain {
		if l.ID == "z" {
			found = true
		}
	}
	if !found {
		t.Error("listing with invalid dates was dropped from a price view")
	}
}

func TestSelectAndSortEmptyInput(t *testing.T) {
	out, err := SelectAndSort(base, nil, CriterionNewest, Filters{}, Options{})
	if err != nil {
		t.Fatalf("SelectAndSort returned error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %v", ids(out))
	}
}

func TestSelectAndSortUnknownCriterion(t *testing.T) {
	_, err := SelectAndSort(base, fixture(), Criterion("bestest"), Filters{}, Options{})
	if !errors.Is(err, errors.ErrUnsupportedSortCriteria) {
		t.Errorf("err = %v, want unsupported sort criterion", err)
	}
}

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		raw  string
		want Criterion
	}{
		{"", CriterionNewest},
		{"newest", CriterionNewest},
		{"ending-soon", CriterionEndingSoon},
		{"ending_soon", CriterionEndingSoon},
		{"starting-soon", CriterionStartingSoon},
		{"lowest-price", CriterionPriceAsc},
		{"price_asc", CriterionPriceAsc},
		{"highest-bid", CriterionPriceDesc},
		{"price_desc", CriterionPriceDesc},
		{"most_bids", CriterionMostBids},
		{"Most-Bids", CriterionMostBids},
	}
	for _, tt := range tests {
		got, err := ParseCriterion(tt.raw)
		if err != nil {
			t.Errorf("ParseCriterion(%q) returned error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCriterion(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}

	if _, err := ParseCriterion("alphabetical"); !errors.Is(err, errors.ErrUnsupportedSortCriteria) {
		t.Errorf("err = %v, want unsupported sort criterion", err)
	}
}

func TestPage(t *testing.T) {
	listings := fixture()

	first := Page(listings, 1, 2)
	if got := ids(first); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("page 1 = %v", got)
	}
	second := Page(listings, 2, 2)
	if got := ids(second); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Errorf("page 2 = %v", got)
	}
	if out := Page(listings, 5, 2); len(out) != 0 {
		t.Errorf("out-of-range page = %v, want empty", ids(out))
	}
	if out := Page(listings, 0, 0); len(out) != 4 {
		t.Errorf("defaulted paging returned %d items, want 4", len(out))
	}
}
