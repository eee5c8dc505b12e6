package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/query"
)

// SearchOccupationsInput is the input schema for the occupation search tool.
type SearchOccupationsInput struct {
	Queries []string `json:"queries" jsonschema:"occupation title fragments to look up, e.g. 'software developer'"`
}

// SearchOccupationsOutput is the output schema for the occupation search tool.
type SearchOccupationsOutput struct {
	Results []domain.OccupationMatch `json:"results"`
}

// SearchAreasInput is the input schema for the area search tool.
type SearchAreasInput struct {
	Queries []string `json:"queries" jsonschema:"place names to look up, e.g. 'Austin, TX'"`
}

// SearchAreasOutput is the output schema for the area search tool.
type SearchAreasOutput struct {
	Results []domain.AreaMatch `json:"results"`
}

// GetWageDataInput is the input schema for the wage lookup tool.
type GetWageDataInput struct {
	SOCCodes []string `json:"socCodes" jsonschema:"SOC occupation codes to look up, e.g. '15-1252'"`
	AreaIDs  []string `json:"areaIds,omitempty" jsonschema:"specific area ids; takes precedence over state"`
	State    string   `json:"state,omitempty" jsonschema:"two-letter state code for top areas in that state"`
}

// GetWageDataOutput is the output schema for the wage lookup tool.
type GetWageDataOutput struct {
	Results []domain.WageLookupResult `json:"results"`
}

// FindOptimalAreasInput is the input schema for the optimal area tool.
// MinCityTier and Page are pointers so an omitted value and an explicit
// zero stay distinguishable; omitting MinCityTier applies the default
// ceiling of 2, while 0 disables the tier filter.
type FindOptimalAreasInput struct {
	SOCCode      string  `json:"socCode" jsonschema:"SOC occupation code, e.g. '15-1252'"`
	AnnualSalary float64 `json:"annualSalary" jsonschema:"annual salary in dollars to evaluate"`
	MinLevel     *int    `json:"minLevel,omitempty" jsonschema:"keep only areas where the salary achieves at least this wage level (1-4)"`
	MinCityTier  *int    `json:"minCityTier,omitempty" jsonschema:"numeric city tier ceiling; keep areas with tier at most this value (default 2, 0 disables)"`
	State        string  `json:"state,omitempty" jsonschema:"two-letter state code to restrict results to"`
	Page         *int    `json:"page,omitempty" jsonschema:"1-based page number, 50 results per page"`
}

// FindOptimalAreasOutput is the output schema for the optimal area
// tool. Error is set instead of the page fields when the occupation has
// no wage data, so the agent can relay the message.
type FindOptimalAreasOutput struct {
	Results     []domain.AreaLevelInfo `json:"results,omitempty"`
	TotalCount  int                    `json:"totalCount"`
	CurrentPage int                    `json:"currentPage"`
	TotalPages  int                    `json:"totalPages"`
	HasMore     bool                   `json:"hasMore"`
	Error       string                 `json:"error,omitempty"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "searchOccupations",
		Description: "Find SOC occupation codes by title fragment",
	}, s.handleSearchOccupations)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "searchAreas",
		Description: "Find metro area ids by place name",
	}, s.handleSearchAreas)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "getWageData",
		Description: "Look up prevailing wage levels for occupations, by area, state, or nationally",
	}, s.handleGetWageData)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "findOptimalAreas",
		Description: "Rank every area of an occupation by the wage level a salary achieves there",
	}, s.handleFindOptimalAreas)
}

func (s *Server) handleSearchOccupations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchOccupationsInput,
) (*mcp.CallToolResult, SearchOccupationsOutput, error) {
	matches, err := s.engine.SearchOccupations(ctx, input.Queries)
	if err != nil {
		return nil, SearchOccupationsOutput{}, err
	}
	return nil, SearchOccupationsOutput{Results: matches}, nil
}

func (s *Server) handleSearchAreas(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchAreasInput,
) (*mcp.CallToolResult, SearchAreasOutput, error) {
	matches, err := s.engine.SearchAreas(ctx, input.Queries)
	if err != nil {
		return nil, SearchAreasOutput{}, err
	}
	return nil, SearchAreasOutput{Results: matches}, nil
}

func (s *Server) handleGetWageData(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetWageDataInput,
) (*mcp.CallToolResult, GetWageDataOutput, error) {
	results := s.engine.LookupWages(ctx, query.WageQuery{
		SOCCodes: input.SOCCodes,
		AreaIDs:  input.AreaIDs,
		State:    input.State,
	})
	return nil, GetWageDataOutput{Results: results}, nil
}

func (s *Server) handleFindOptimalAreas(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindOptimalAreasInput,
) (*mcp.CallToolResult, FindOptimalAreasOutput, error) {
	q := query.OptimalAreasQuery{
		SOCCode:      input.SOCCode,
		AnnualSalary: input.AnnualSalary,
		TierCeiling:  2,
		State:        input.State,
		Page:         1,
	}
	if input.MinLevel != nil {
		q.MinLevel = *input.MinLevel
	}
	if input.MinCityTier != nil {
		q.TierCeiling = *input.MinCityTier
	}
	if input.Page != nil {
		q.Page = *input.Page
	}

	page, err := s.engine.FindOptimalAreas(ctx, q)
	if err != nil {
		// An unknown occupation is an in-band answer for the agent.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, FindOptimalAreasOutput{Error: err.Error()}, nil
		}
		return nil, FindOptimalAreasOutput{}, err
	}
	return nil, FindOptimalAreasOutput{
		Results:     page.Results,
		TotalCount:  page.TotalCount,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		HasMore:     page.HasMore,
	}, nil
}
