package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/wage-query-service/internal/adapter/http"
	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/observability"
	"github.com/couchcryptid/wage-query-service/internal/query"
)

// memStore serves a small fixed dataset so handler tests run against
// the real engine.
type memStore struct {
	occupationsErr error
}

func (s *memStore) Occupations(_ context.Context) ([]domain.Occupation, error) {
	if s.occupationsErr != nil {
		return nil, s.occupationsErr
	}
	return []domain.Occupation{
		{Code: "15-1252", Title: "Software Developers", ObservationCount: 530, IsPopular: true},
		{Code: "13-2011", Title: "Accountants and Auditors", ObservationCount: 480},
	}, nil
}

func (s *memStore) Areas(_ context.Context) ([]domain.Area, error) {
	return []domain.Area{
		{ID: "12420", Name: "Austin-Round Rock-San Marcos, TX", State: "TX", Tier: 2},
		{ID: "41860", Name: "San Francisco-Oakland-Fremont, CA", State: "CA", Tier: 1},
		{ID: "42140", Name: "Santa Fe, NM", State: "NM", Tier: 4},
	}, nil
}

func (s *memStore) WageTable(_ context.Context, socCode string) (domain.WageTable, error) {
	if socCode != "15-1252" {
		return domain.WageTable{}, fmt.Errorf("wage table %q: %w", socCode, domain.ErrNotFound)
	}
	return domain.WageTable{SOCCode: "15-1252", Records: []domain.WageRecord{
		{AreaID: "41860", L1: 55.0, L2: 60.0, L3: 72.0, L4: 85.0},
		{AreaID: "12420", L1: 42.0, L2: 50.0, L3: 58.0, L4: 66.0},
		{AreaID: "42140", L1: 30.0, L2: 36.0, L3: 42.0, L4: 50.0},
	}}, nil
}

func newTestServer(store *memStore) *httpadapter.Server {
	logger := slog.New(slog.DiscardHandler)
	engine := query.New(store, logger, observability.NewMetricsForTesting())
	return httpadapter.NewServer(":0", engine, logger)
}

func doJSON(t *testing.T, srv *httpadapter.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReflectsCatalogAvailability(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rec := doJSON(t, newTestServer(&memStore{}), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		store := &memStore{occupationsErr: fmt.Errorf("occupations.json: %w", domain.ErrDataUnavailable)}
		rec := doJSON(t, newTestServer(store), http.MethodGet, "/readyz", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestSearchOccupationsEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/search-occupations", `{"queries":["software"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []domain.OccupationMatch `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "15-1252", body.Results[0].Code)
	assert.Equal(t, "software", body.Results[0].MatchedQuery)
}

func TestSearchAreasEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/search-areas", `{"queries":["Austin, TX"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []domain.AreaMatch `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "12420", body.Results[0].ID)
}

func TestWagesEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/wages", `{"socCodes":["15-1252"],"areaIds":["12420"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []domain.WageLookupResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "12420", body.Results[0].AreaID)
	require.NotNil(t, body.Results[0].Snapshot)
	assert.Equal(t, 137280, body.Results[0].Snapshot.Annual.L4)
}

func TestWagesEndpointPerItemErrors(t *testing.T) {
	// A missing occupation produces an error row, never a non-200.
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/wages", `{"socCodes":["15-9999"],"areaIds":["12420"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []domain.WageLookupResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "no wage data found for SOC code 15-9999", body.Results[0].Err)
}

func TestOptimalAreasEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/optimal-areas", `{"socCode":"15-1252","annualSalary":125000}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.OptimalAreasPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	// The default tier ceiling of 2 excludes the tier-4 area.
	require.Len(t, page.Results, 2)
	assert.Equal(t, "12420", page.Results[0].AreaID)
	assert.Equal(t, 3, page.Results[0].AchievedLevel)
	assert.Equal(t, "41860", page.Results[1].AreaID)
}

func TestOptimalAreasEndpointExplicitZeroDisablesTierFilter(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/optimal-areas", `{"socCode":"15-1252","annualSalary":125000,"minCityTier":0}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.OptimalAreasPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Results, 3)
}

func TestOptimalAreasEndpointUnknownOccupation(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/optimal-areas", `{"socCode":"15-9999","annualSalary":125000}`)

	// The caller gets the message in-band so an agent can relay it.
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "15-9999")
	assert.NotContains(t, body, "results")
}

func TestOptimalAreasEndpointMissingSOCCode(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/optimal-areas", `{"annualSalary":125000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedBodyReturns400(t *testing.T) {
	rec := doJSON(t, newTestServer(&memStore{}), http.MethodPost,
		"/v1/tools/search-occupations", `{"queries":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	srv := newTestServer(&memStore{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")

	srv.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
