package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/query"
)

type mockEngine struct {
	occupationMatches []domain.OccupationMatch
	areaMatches       []domain.AreaMatch
	wageResults       []domain.WageLookupResult
	optimalPage       domain.OptimalAreasPage
	lastOptimalQuery  query.OptimalAreasQuery
	err               error
}

func (m *mockEngine) SearchOccupations(_ context.Context, _ []string) ([]domain.OccupationMatch, error) {
	return m.occupationMatches, m.err
}

func (m *mockEngine) SearchAreas(_ context.Context, _ []string) ([]domain.AreaMatch, error) {
	return m.areaMatches, m.err
}

func (m *mockEngine) LookupWages(_ context.Context, _ query.WageQuery) []domain.WageLookupResult {
	return m.wageResults
}

func (m *mockEngine) FindOptimalAreas(_ context.Context, q query.OptimalAreasQuery) (domain.OptimalAreasPage, error) {
	m.lastOptimalQuery = q
	return m.optimalPage, m.err
}

func newTestServer(engine QueryEngine) *Server {
	return NewServer(engine, slog.New(slog.DiscardHandler))
}

func TestServer_handleSearchOccupations(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matches", func(t *testing.T) {
		engine := &mockEngine{occupationMatches: []domain.OccupationMatch{
			{Code: "15-1252", Title: "Software Developers", MatchedQuery: "software"},
		}}
		server := newTestServer(engine)

		_, output, err := server.handleSearchOccupations(ctx, nil, SearchOccupationsInput{Queries: []string{"software"}})

		require.NoError(t, err)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "15-1252", output.Results[0].Code)
	})

	t.Run("propagates catalog errors", func(t *testing.T) {
		engine := &mockEngine{err: fmt.Errorf("occupations.json: %w", domain.ErrDataUnavailable)}
		server := newTestServer(engine)

		_, _, err := server.handleSearchOccupations(ctx, nil, SearchOccupationsInput{Queries: []string{"software"}})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})
}

func TestServer_handleFindOptimalAreas(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults apply when optional fields are omitted", func(t *testing.T) {
		engine := &mockEngine{}
		server := newTestServer(engine)

		_, _, err := server.handleFindOptimalAreas(ctx, nil, FindOptimalAreasInput{
			SOCCode:      "15-1252",
			AnnualSalary: 120000,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, engine.lastOptimalQuery.TierCeiling)
		assert.Equal(t, 1, engine.lastOptimalQuery.Page)
		assert.Zero(t, engine.lastOptimalQuery.MinLevel)
	})

	t.Run("explicit zero tier disables the filter", func(t *testing.T) {
		engine := &mockEngine{}
		server := newTestServer(engine)
		zero := 0

		_, _, err := server.handleFindOptimalAreas(ctx, nil, FindOptimalAreasInput{
			SOCCode:      "15-1252",
			AnnualSalary: 120000,
			MinCityTier:  &zero,
		})

		require.NoError(t, err)
		assert.Zero(t, engine.lastOptimalQuery.TierCeiling)
	})

	t.Run("unknown occupation becomes an in-band error", func(t *testing.T) {
		engine := &mockEngine{err: fmt.Errorf("wage table for 15-9999: %w", domain.ErrNotFound)}
		server := newTestServer(engine)

		_, output, err := server.handleFindOptimalAreas(ctx, nil, FindOptimalAreasInput{
			SOCCode:      "15-9999",
			AnnualSalary: 120000,
		})

		require.NoError(t, err)
		assert.Contains(t, output.Error, "15-9999")
		assert.Empty(t, output.Results)
	})

	t.Run("unavailable data stays a tool error", func(t *testing.T) {
		engine := &mockEngine{err: fmt.Errorf("wages/15-1252.json: %w", domain.ErrDataUnavailable)}
		server := newTestServer(engine)

		_, _, err := server.handleFindOptimalAreas(ctx, nil, FindOptimalAreasInput{
			SOCCode:      "15-1252",
			AnnualSalary: 120000,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})
}

func TestServer_handleGetWageData(t *testing.T) {
	engine := &mockEngine{wageResults: []domain.WageLookupResult{
		{SOCCode: "15-1252", AreaID: "12420"},
		{SOCCode: "15-1252", AreaID: "00000", Err: "no data for area 00000"},
	}}
	server := newTestServer(engine)

	_, output, err := server.handleGetWageData(context.Background(), nil, GetWageDataInput{
		SOCCodes: []string{"15-1252"},
		AreaIDs:  []string{"12420", "00000"},
	})

	require.NoError(t, err)
	require.Len(t, output.Results, 2)
	assert.False(t, output.Results[0].IsError())
	assert.True(t, output.Results[1].IsError())
}
