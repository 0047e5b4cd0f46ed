package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/PolicyEngine/Autumn-budget-local-area/config"
	"github.com/PolicyEngine/Autumn-budget-local-area/models"
)

type ConstituencyResponse struct {
	Constituencies []models.ConstituencyRef `json:"constituencies"`
}

// GetConstituencies returns the deduplicated constituency list, ordered by
// name. An optional q parameter prefix-filters by name for the selector's
// autocomplete. An empty dataset yields an empty list, not an error.
func GetConstituencies(w http.ResponseWriter, r *http.Request) {
	if config.Data == nil {
		log.Printf("GetConstituencies: Dataset store not initialized")
		http.Error(w, "Dataset not initialized", http.StatusInternalServerError)
		return
	}

	refs := config.Data.Constituencies()

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		q = strings.ToLower(q)
		var filtered []models.ConstituencyRef
		for _, ref := range refs {
			if strings.HasPrefix(strings.ToLower(ref.Name), q) {
				filtered = append(filtered, ref)
			}
		}
		refs = filtered
	}

	response := ConstituencyResponse{Constituencies: refs}
	if response.Constituencies == nil {
		response.Constituencies = []models.ConstituencyRef{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("GetConstituencies: Error encoding response: %v", err)
	}
}
