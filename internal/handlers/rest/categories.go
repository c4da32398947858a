package rest

import (
	"net/http"

	"github.com/bidora/storefront-server/pkg/errors"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// GetCategories serves the full category list.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		log.Errorf("Error loading categories: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// GetRootCategories serves categories without a parent.
func (h *Handler) GetRootCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.RootCategories(r.Context())
	if err != nil {
		log.Errorf("Error loading root categories: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// GetCategoryBySlug serves one category with its direct subcategories.
func (h *Handler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	tree, err := h.catalog.CategoryBySlug(r.Context(), slug)
	if errors.Is(err, errors.ErrCategoryNotFound) {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Errorf("Error loading category %s: %v", slug, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, tree)
}
