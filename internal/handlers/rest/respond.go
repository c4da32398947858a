package rest

import (
	"encoding/json"
	"net/http"

	"github.com/bidora/storefront-server/pkg/types"
	"github.com/charmbracelet/log"
)

// listingsEnvelope is the paginated response shape shared by every shelf and
// search endpoint.
type listingsEnvelope struct {
	Products []types.Listing `json:"products"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
