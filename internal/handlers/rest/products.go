package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bidora/storefront-server/internal/search"
	"github.com/bidora/storefront-server/pkg/errors"
	"github.com/bidora/storefront-server/pkg/types"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// Ping returns the configured ping message.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": h.pingMessage})
}

// Health returns the catalog health map.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Health())
}

// GetNewest serves the most recently created listings.
func (h *Handler) GetNewest(w http.ResponseWriter, r *http.Request) {
	h.shelf(w, r, search.CriterionNewest, search.Filters{})
}

// GetEndingSoon serves live listings ordered by closest end date.
func (h *Handler) GetEndingSoon(w http.ResponseWriter, r *http.Request) {
	h.shelf(w, r, search.CriterionEndingSoon, search.Filters{LiveOnly: true})
}

// GetStartingSoon serves upcoming listings inside the look-ahead window.
func (h *Handler) GetStartingSoon(w http.ResponseWriter, r *http.Request) {
	h.shelf(w, r, search.CriterionStartingSoon, search.Filters{UpcomingOnly: true})
}

func (h *Handler) shelf(w http.ResponseWriter, r *http.Request, criterion search.Criterion, filters search.Filters) {
	listings, err := h.catalog.Listings(r.Context())
	if err != nil {
		log.Errorf("Error loading listings: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ordered, err := search.SelectAndSort(h.clock.Now(), listings, criterion, filters, h.opts)
	if err != nil {
		log.Errorf("Error sorting listings: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	page, limit := parsePaging(r)
	respondJSON(w, http.StatusOK, listingsEnvelope{
		Products: search.Page(ordered, page, limit),
		Total:    len(ordered),
		Page:     page,
		Limit:    limit,
	})
}

// Search applies the query-string filters and sort criterion.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	criterion, err := search.ParseCriterion(r.URL.Query().Get("sortBy"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters := parseFilters(r)

	listings, listErr := h.catalog.Listings(r.Context())
	if listErr != nil {
		log.Errorf("Error loading listings: %v", listErr)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ordered, err := search.SelectAndSort(h.clock.Now(), listings, criterion, filters, h.opts)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, limit := parsePaging(r)
	respondJSON(w, http.StatusOK, listingsEnvelope{
		Products: search.Page(ordered, page, limit),
		Total:    len(ordered),
		Page:     page,
		Limit:    limit,
	})
}

// GetByID serves a single listing.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	listing, err := h.catalog.ListingByID(r.Context(), id)
	if errors.Is(err, errors.ErrListingNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Errorf("Error loading listing %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func parsePaging(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = search.DefaultPage
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = search.DefaultLimit
	}
	return page, limit
}

func parseFilters(r *http.Request) search.Filters {
	q := r.URL.Query()

	filters := search.Filters{
		Query:      q.Get("query"),
		CategoryID: q.Get("categoryId"),
	}

	if raw := q.Get("condition"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			condition := types.Condition(strings.TrimSpace(part))
			if condition.Valid() {
				filters.Conditions = append(filters.Conditions, condition)
			}
		}
	}

	if raw := q.Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinPrice = &v
		}
	}
	if raw := q.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &v
		}
	}

	return filters
}
