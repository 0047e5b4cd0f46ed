package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/PolicyEngine/Autumn-budget-local-area/aggregate"
	"github.com/PolicyEngine/Autumn-budget-local-area/config"
	"github.com/PolicyEngine/Autumn-budget-local-area/models"
)

// SelectionEcho is the resolved selection plus its canonical query string,
// which is the authoritative URL representation the front end round-trips.
type SelectionEcho struct {
	Constituency *models.ConstituencyRef `json:"constituency,omitempty"`
	Policies     []string                `json:"policies"`
	Year         int                     `json:"year"`
	Query        string                  `json:"query"`
}

type SummaryResponse struct {
	State   SelectionEcho     `json:"state"`
	Summary aggregate.Summary `json:"summary"`
}

type FamilyTypeResponse struct {
	State   SelectionEcho      `json:"state"`
	Buckets []aggregate.Bucket `json:"buckets"`
}

type TimelineResponse struct {
	State  SelectionEcho             `json:"state"`
	Points []aggregate.TimelinePoint `json:"points"`
}

type IncomeDistributionResponse struct {
	State   SelectionEcho            `json:"state"`
	Deciles []aggregate.DecileImpact `json:"deciles"`
}

type ScatterResponse struct {
	State  SelectionEcho            `json:"state"`
	Points []aggregate.ScatterPoint `json:"points"`
}

type MapResponse struct {
	State  SelectionEcho        `json:"state"`
	Values []aggregate.MapValue `json:"values"`
}

// decodeState reads the selection from the request query, resolves the
// constituency placeholder against the loaded dataset, and returns the state
// with its canonical encoding.
func decodeState(r *http.Request) (models.SelectionState, SelectionEcho) {
	state := models.DecodeSelection(r.URL.Query())
	if config.Data != nil {
		state.ResolveConstituency(config.Data.Lookup)
	}
	echo := SelectionEcho{
		Constituency: state.Constituency,
		Policies:     state.PolicyIDs,
		Year:         state.Year,
		Query:        state.Encode().Encode(),
	}
	return state, echo
}

func writeJSON(w http.ResponseWriter, handler string, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("%s: Error encoding response: %v", handler, err)
	}
}

// cached wraps a series computation in the TTL cache, keyed on the canonical
// selection query. Misses are pure re-derivations from the row sets.
func cached(series, query string, compute func() interface{}) interface{} {
	if config.SeriesCache == nil {
		return compute()
	}
	key := config.GetCacheKey(series, query)
	if value, found := config.SeriesCache.Get(key); found {
		return value
	}
	value := compute()
	config.SeriesCache.SetDefault(key, value)
	return value
}

// GetImpactSummary returns the headline net impact with the per-provision
// breakdown for the selected constituency and year.
func GetImpactSummary(w http.ResponseWriter, r *http.Request) {
	if config.Data == nil {
		http.Error(w, "Dataset not initialized", http.StatusInternalServerError)
		return
	}
	state, echo := decodeState(r)

	summary := cached("summary", echo.Query, func() interface{} {
		return aggregate.Summarize(config.Data.ConstituencyRows, state)
	}).(aggregate.Summary)

	writeJSON(w, "GetImpactSummary", SummaryResponse{State: echo, Summary: summary})
}

// GetFamilyTypeImpact buckets household records by family type.
func GetFamilyTypeImpact(w http.ResponseWriter, r *http.Request) {
	if config.Data == nil {
		http.Error(w, "Dataset not initialized", http.StatusInternalServerError)
		return
	}
	state, echo := decodeState(r)

	buckets := cached("family-types", echo.Query, func() interface{} {
		return aggregate.ByFamilyType(config.Data.HouseholdRows, state)
	}).([]aggregate.Bucket)
	if buckets == nil {
		buckets = []aggregate.Bucket{}
	}

	writeJSON(w, "GetFamilyTypeImpact", FamilyTypeResponse{State: echo, Buckets: buckets})
}

// GetImpactTimeline returns one aggregate value per supported year with the
// policy selection held fixed.
func GetImpactTimeline(w http.ResponseWriter, r *http.Request) {
	if config.Data == nil {
		http.Error(w, "Dataset not initialized", http.StatusInternalServerError)
		return
	}
	state, echo := decodeState(r)

	points := cached("timeline", echo.Query, func() interface{} {
		return aggregate.Timeline(config.Data.ConstituencyRows, state)
	}).([]aggregate.TimelinePoint)

	writeJSON(w, "GetImpactTimeline", TimelineResponse{State: echo, Points: points})
}

// GetIncomeDistribution returns the decile breakdown, absolute and relative.
func GetIncomeDistribution(w http.ResponseWriter, r *http.Request) {
	if config.Data == nil {
		http.Error(w, "Dataset not initialized", http.StatusInternalServerError)
		return
	}
	state, echo := decodeState(r)

	deciles := cached("income-distribution", echo.Query, func() interface{} {
		return aggregate.IncomeDistribution(config.Data.HouseholdRows, state)
	}).([]aggregate.DecileImpact)

	writeJSON(w, "GetIncomeDistribution", IncomeDistributionResponse{State: echo, Deciles: deciles})
}

// GetImpactScatter returns one income/impact point per household record.
func GetImpactScatter(w http.ResponseWriter, r *http.Request) {
	if config.Data == nil {
		http.Error(w, "Dataset not initialized", http.StatusInternalServerError)
		return
	}
	state, echo := decodeState(r)

	points := cached("scatter", echo.Query, func() interface{} {
		return aggregate.Scatter(config.Data.HouseholdRows, state)
	}).([]aggregate.ScatterPoint)
	if points == nil {
		points = []aggregate.ScatterPoint{}
	}

	writeJSON(w, "GetImpactScatter", ScatterResponse{State: echo, Points: points})
}

// GetImpactMap returns the per-constituency values for map coloring.
func GetImpactMap(w http.ResponseWriter, r *http.Request) {
	if config.Data == nil {
		http.Error(w, "Dataset not initialized", http.StatusInternalServerError)
		return
	}
	state, echo := decodeState(r)

	values := cached("map", echo.Query, func() interface{} {
		return aggregate.MapSeries(config.Data.ConstituencyRows, state)
	}).([]aggregate.MapValue)
	if values == nil {
		values = []aggregate.MapValue{}
	}

	writeJSON(w, "GetImpactMap", MapResponse{State: echo, Values: values})
}
