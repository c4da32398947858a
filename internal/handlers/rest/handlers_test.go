package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bidora/storefront-server/internal/catalog"
	"github.com/bidora/storefront-server/internal/clock"
	"github.com/bidora/storefront-server/internal/search"
	"github.com/bidora/storefront-server/pkg/types"
	"github.com/gorilla/mux"
)

var testNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func testListings() []types.Listing {
	return []types.Listing{
		{
			ID: "a", Title: "iPhone 14", Description: "phone",
			CategoryID: "smartphones", Condition: types.ConditionLikeNew,
			StartingPrice: 400, CurrentBid: 550, BidsCount: 12,
			StartDate: testNow.Add(-12 * time.Hour), EndDate: testNow.Add(2 * time.Hour),
			CreatedAt: testNow.Add(-24 * time.Hour),
		},
		{
			ID: "b", Title: "MacBook Air", Description: "laptop",
			CategoryID: "laptops", Condition: types.ConditionNew,
			StartingPrice: 700, CurrentBid: 900, BidsCount: 8,
			StartDate: testNow.Add(-24 * time.Hour), EndDate: testNow.Add(5 * time.Hour),
			CreatedAt: testNow.Add(-12 * time.Hour),
		},
		{
			ID: "c", Title: "iPad", Description: "tablet",
			CategoryID: "tablets", Condition: types.ConditionGood,
			StartingPrice: 200, BidsCount: 0,
			StartDate: testNow.Add(2 * time.Hour), EndDate: testNow.Add(18 * time.Hour),
			CreatedAt: testNow.Add(-8 * time.Hour),
		},
	}
}

func testRouter() *mux.Router {
	store := catalog.NewMemory(testListings(), catalog.SeedCategories())
	handler := NewHandler(store, clock.NewFixed(testNow), search.Options{}, "ping")
	return handler.SetupRoutes(true)
}

func get(t *testing.T, router *mux.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) listingsEnvelope {
	t.Helper()
	var envelope listingsEnvelope
	if err := json.NewDecoder(recorder.Body).Decode(&envelope); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	return envelope
}

func TestPing(t *testing.T) {
	recorder := get(t, testRouter(), "/api/ping")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["message"] != "ping" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestGetNewest(t *testing.T) {
	recorder := get(t, testRouter(), "/api/products/newest")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	envelope := decodeEnvelope(t, recorder)
	if envelope.Total != 3 || envelope.Page != 1 || envelope.Limit != 12 {
		t.Errorf("envelope = total %d page %d limit %d", envelope.Total, envelope.Page, envelope.Limit)
	}
	if envelope.Products[0].ID != "c" {
		t.Errorf("first product = %s, want c", envelope.Products[0].ID)
	}
}

func TestGetEndingSoonOrder(t *testing.T) {
	recorder := get(t, testRouter(), "/api/products/ending-soon")
	envelope := decodeEnvelope(t, recorder)

	if len(envelope.Products) != 3 {
		t.Fatalf("products = %d, want 3", len(envelope.Products))
	}
	if envelope.Products[0].ID != "a" {
		t.Errorf("first product = %s, want a (closest end date)", envelope.Products[0].ID)
	}
}

func TestGetStartingSoon(t *testing.T) {
	recorder := get(t, testRouter(), "/api/products/starting-soon")
	envelope := decodeEnvelope(t, recorder)

	if len(envelope.Products) != 1 || envelope.Products[0].ID != "c" {
		t.Errorf("products = %+v, want only c", envelope.Products)
	}
}

func TestSearchWithFiltersAndSort(t *testing.T) {
	recorder := get(t, testRouter(), "/api/products/search?sortBy=lowest-price&minPrice=100")
	envelope := decodeEnvelope(t, recorder)

	// Effective prices: c=200, a=550, b=900.
	if len(envelope.Products) != 3 || envelope.Products[0].ID != "c" || envelope.Products[2].ID != "b" {
		t.Errorf("unexpected order: %+v", envelope.Products)
	}

	recorder = get(t, testRouter(), "/api/products/search?query=macbook")
	envelope = decodeEnvelope(t, recorder)
	if envelope.Total != 1 || envelope.Products[0].ID != "b" {
		t.Errorf("query filter returned %+v", envelope.Products)
	}

	recorder = get(t, testRouter(), "/api/products/search?condition=NEW,GOOD")
	envelope = decodeEnvelope(t, recorder)
	if envelope.Total != 2 {
		t.Errorf("condition filter total = %d, want 2", envelope.Total)
	}
}

func TestSearchRejectsUnknownSort(t *testing.T) {
	recorder := get(t, testRouter(), "/api/products/search?sortBy=alphabetical")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["error"] == "" {
		t.Error("missing error message")
	}
}

func TestSearchPagination(t *testing.T) {
	recorder := get(t, testRouter(), "/api/products/search?page=2&limit=2")
	envelope := decodeEnvelope(t, recorder)

	if envelope.Total != 3 || envelope.Page != 2 || envelope.Limit != 2 {
		t.Errorf("envelope = total %d page %d limit %d", envelope.Total, envelope.Page, envelope.Limit)
	}
	if len(envelope.Products) != 1 {
		t.Errorf("page 2 products = %d, want 1", len(envelope.Products))
	}
}

func TestGetByID(t *testing.T) {
	recorder := get(t, testRouter(), "/api/products/a")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var listing types.Listing
	if err := json.NewDecoder(recorder.Body).Decode(&listing); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if listing.ID != "a" {
		t.Errorf("listing = %s", listing.ID)
	}

	recorder = get(t, testRouter(), "/api/products/unknown")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

func TestCategories(t *testing.T) {
	recorder := get(t, testRouter(), "/api/categories")
	var categories []types.Category
	if err := json.NewDecoder(recorder.Body).Decode(&categories); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("no categories")
	}

	recorder = get(t, testRouter(), "/api/categories/root")
	categories = nil
	if err := json.NewDecoder(recorder.Body).Decode(&categories); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	for _, c := range categories {
		if c.Parent != "" {
			t.Errorf("root category %s has a parent", c.ID)
		}
	}

	recorder = get(t, testRouter(), "/api/categories/slug/electronics")
	var tree types.CategoryTree
	if err := json.NewDecoder(recorder.Body).Decode(&tree); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if tree.ID != "electronics" || len(tree.Subcategories) == 0 {
		t.Errorf("tree = %+v", tree)
	}

	recorder = get(t, testRouter(), "/api/categories/slug/vehicles")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	recorder := get(t, testRouter(), "/api/ping")
	if recorder.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
	if recorder.Header().Get("X-Request-Id") == "" {
		t.Error("missing request id header")
	}
}
