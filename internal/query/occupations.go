package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/couchcryptid/wage-query-service/internal/domain"
)

// SearchOccupations resolves free-text job-title fragments to SOC
// codes by case-folded substring containment against catalog titles.
// Each query contributes at most 5 matches in catalog order (the
// catalog is pre-ranked at build time); matches are deduplicated by
// code across queries, first occurrence winning, and the merged result
// is capped at 15. An empty query list yields an empty result.
//
// Matching is against titles only, never against code fragments.
func (e *Engine) SearchOccupations(ctx context.Context, queries []string) ([]domain.OccupationMatch, error) {
	start := e.clock.Now()

	catalog, err := e.store.Occupations(ctx)
	if err != nil {
		e.observe("search_occupations", start, "error")
		return nil, fmt.Errorf("occupation catalog: %w", err)
	}

	matches := matchOccupations(catalog, queries)
	e.logger.Debug("occupation search", "queries", len(queries), "matches", len(matches))
	e.observe("search_occupations", start, "success")
	return matches, nil
}

func matchOccupations(catalog []domain.Occupation, queries []string) []domain.OccupationMatch {
	matches := make([]domain.OccupationMatch, 0, maxMergedMatches)
	seen := make(map[string]struct{})

	for _, query := range queries {
		needle := strings.ToLower(query)
		perQuery := 0
		for _, occupation := range catalog {
			if perQuery == maxMatchesPerQuery {
				break
			}
			if !strings.Contains(strings.ToLower(occupation.Title), needle) {
				continue
			}
			// A duplicate still consumes one of the query's 5 slots.
			perQuery++
			if _, dup := seen[occupation.Code]; dup {
				continue
			}
			seen[occupation.Code] = struct{}{}
			matches = append(matches, domain.OccupationMatch{
				Code:             occupation.Code,
				Title:            occupation.Title,
				ObservationCount: occupation.ObservationCount,
				MatchedQuery:     query,
			})
		}
	}

	if len(matches) > maxMergedMatches {
		matches = matches[:maxMergedMatches]
	}
	return matches
}
