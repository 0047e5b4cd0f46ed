package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/PolicyEngine/Autumn-budget-local-area/models"
)

type PolicyResponse struct {
	Policies []models.PolicyProvision `json:"policies"`
}

// GetPolicies returns the fixed provision catalog in display order.
func GetPolicies(w http.ResponseWriter, r *http.Request) {
	response := PolicyResponse{Policies: models.Provisions}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("GetPolicies: Error encoding response: %v", err)
	}
}
