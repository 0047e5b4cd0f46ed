package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolicyEngine/Autumn-budget-local-area/config"
	"github.com/PolicyEngine/Autumn-budget-local-area/dataset"
)

func seedStore(t *testing.T) {
	t.Helper()

	constituencyCSV := "constituency_code,constituency_name,year,two_child_limit_impact,salary_sacrifice_cap_impact\n" +
		"E14001234,\"Holborn and St Pancras\",2029,120,-40\n" +
		"E14005678,\"Cities of London and Westminster\",2029,60,-20\n"
	householdCSV := "household_id,constituency_code,year,family_type,gross_income,income_decile,weight,two_child_limit_impact\n" +
		"h1,E14001234,2029,couple_with_children,30000,3,1,300\n"

	config.Data = dataset.NewStore(
		dataset.ParseTable(constituencyCSV),
		dataset.ParseTable(householdCSV),
	)
	config.SeriesCache = nil // exercise pure recomputation in tests
}

func doGet(t *testing.T, handler http.HandlerFunc, target string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	return rec
}

func TestGetImpactSummary(t *testing.T) {
	seedStore(t)

	var resp SummaryResponse
	doGet(t, GetImpactSummary,
		"/api/v1/impact/summary?constituency=E14001234&policies=two_child_limit,salary_sacrifice_cap&year=2029",
		&resp)

	assert.InDelta(t, 80.0, resp.Summary.NetImpact, 1e-9)
	assert.Equal(t, 1, resp.Summary.Rows)

	// The provisional code resolves to the full reference.
	require.NotNil(t, resp.State.Constituency)
	assert.Equal(t, "Holborn and St Pancras", resp.State.Constituency.Name)

	// The canonical query round-trips the selection (year 2029 is the
	// default and stays omitted).
	assert.Equal(t,
		"constituency=E14001234&policies=two_child_limit%2Csalary_sacrifice_cap",
		resp.State.Query)
}

func TestGetImpactSummaryDropsUnknownIDs(t *testing.T) {
	seedStore(t)

	var resp SummaryResponse
	doGet(t, GetImpactSummary,
		"/api/v1/impact/summary?constituency=E14001234&policies=two_child_limit,bogus_id",
		&resp)

	assert.Equal(t, []string{"two_child_limit"}, resp.State.Policies)
	assert.InDelta(t, 120.0, resp.Summary.NetImpact, 1e-9)
}

func TestGetImpactSummaryEmptySelection(t *testing.T) {
	seedStore(t)

	var resp SummaryResponse
	doGet(t, GetImpactSummary, "/api/v1/impact/summary?policies=", &resp)

	assert.Zero(t, resp.Summary.NetImpact)
	assert.Empty(t, resp.Summary.Contributions)
}

func TestGetImpactSummaryEmptyStore(t *testing.T) {
	config.Data = dataset.NewStore(nil, nil)
	config.SeriesCache = nil

	var resp SummaryResponse
	doGet(t, GetImpactSummary, "/api/v1/impact/summary?constituency=E14001234", &resp)

	// No data yet: zero series, not an error.
	assert.Zero(t, resp.Summary.NetImpact)
	assert.Equal(t, 0, resp.Summary.Rows)
	// Unresolvable constituency keeps the placeholder name.
	require.NotNil(t, resp.State.Constituency)
	assert.Equal(t, "E14001234", resp.State.Constituency.Name)
}

func TestGetImpactMap(t *testing.T) {
	seedStore(t)

	var resp MapResponse
	doGet(t, GetImpactMap, "/api/v1/impact/map?policies=two_child_limit&year=2029", &resp)

	require.Len(t, resp.Values, 2)
	assert.Equal(t, "E14001234", resp.Values[0].Code)
	assert.InDelta(t, 120.0, resp.Values[0].Impact, 1e-9)
	assert.InDelta(t, 60.0, resp.Values[1].Impact, 1e-9)
}

func TestGetImpactScatter(t *testing.T) {
	seedStore(t)

	var resp ScatterResponse
	doGet(t, GetImpactScatter, "/api/v1/impact/scatter?constituency=E14001234", &resp)

	require.Len(t, resp.Points, 1)
	assert.Equal(t, "h1", resp.Points[0].HouseholdID)
	assert.InDelta(t, 300.0, resp.Points[0].Impact, 1e-9)
}

func TestGetPolicies(t *testing.T) {
	var resp PolicyResponse
	doGet(t, GetPolicies, "/api/v1/policies", &resp)

	require.Len(t, resp.Policies, 9)
	assert.Equal(t, "two_child_limit", resp.Policies[0].ID)
}

func TestGetConstituencies(t *testing.T) {
	seedStore(t)

	var resp ConstituencyResponse
	doGet(t, GetConstituencies, "/api/v1/constituencies", &resp)

	require.Len(t, resp.Constituencies, 2)
	// Lexicographic by name.
	assert.Equal(t, "Cities of London and Westminster", resp.Constituencies[0].Name)

	var filtered ConstituencyResponse
	doGet(t, GetConstituencies, "/api/v1/constituencies?q=holborn", &filtered)
	require.Len(t, filtered.Constituencies, 1)
	assert.Equal(t, "E14001234", filtered.Constituencies[0].Code)
}

func TestGetConstituenciesEmptyStore(t *testing.T) {
	config.Data = dataset.NewStore(nil, nil)

	var resp ConstituencyResponse
	doGet(t, GetConstituencies, "/api/v1/constituencies", &resp)
	assert.Empty(t, resp.Constituencies)
}

func TestSeriesCacheReturnsSameResult(t *testing.T) {
	seedStore(t)
	config.InitCache()
	defer func() { config.SeriesCache = nil }()

	var first, second TimelineResponse
	doGet(t, GetImpactTimeline, "/api/v1/impact/timeline?constituency=E14001234", &first)
	doGet(t, GetImpactTimeline, "/api/v1/impact/timeline?constituency=E14001234", &second)
	assert.Equal(t, first, second)
}
