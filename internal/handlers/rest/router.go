// Package rest exposes the storefront catalog over HTTP: shelf views backed
// by the countdown classifier, parameterized search, listing detail and the
// category tree.
package rest

import (
	"github.com/bidora/storefront-server/internal/catalog"
	"github.com/bidora/storefront-server/internal/clock"
	"github.com/bidora/storefront-server/internal/search"
	"github.com/gorilla/mux"
)

// Handler contains the HTTP request handlers for the catalog API.
type Handler struct {
	catalog     catalog.Service
	clock       clock.Clock
	opts        search.Options
	pingMessage string
}

// NewHandler creates a new HTTP handler around the catalog collaborator.
func NewHandler(cat catalog.Service, clk clock.Clock, opts search.Options, pingMessage string) *Handler {
	return &Handler{
		catalog:     cat,
		clock:       clk,
		opts:        opts,
		pingMessage: pingMessage,
	}
}

// SetupRoutes configures all HTTP routes.
func (h *Handler) SetupRoutes(allowCrossOrigin bool) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/ping", h.Ping).Methods("GET")
	router.HandleFunc("/api/health", h.Health).Methods("GET")

	// Products routes
	router.HandleFunc("/api/products/newest", h.GetNewest).Methods("GET")
	router.HandleFunc("/api/products/ending-soon", h.GetEndingSoon).Methods("GET")
	router.HandleFunc("/api/products/starting-soon", h.GetStartingSoon).Methods("GET")
	router.HandleFunc("/api/products/search", h.Search).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.GetByID).Methods("GET")

	// Categories routes
	router.HandleFunc("/api/categories", h.GetCategories).Methods("GET")
	router.HandleFunc("/api/categories/root", h.GetRootCategories).Methods("GET")
	router.HandleFunc("/api/categories/slug/{slug}", h.GetCategoryBySlug).Methods("GET")

	// Middleware
	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	if allowCrossOrigin {
		router.Use(corsMiddleware)
	}

	return router
}
