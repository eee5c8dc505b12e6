package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/couchcryptid/wage-query-service/internal/domain"
)

// SearchAreas resolves location fragments ("Austin, TX", "New York")
// to area codes. Each query is lower-cased and split on commas and
// whitespace into tokens, dropping tokens of length <= 1. The primary
// pass keeps areas whose "{name} {state}" contains every token
// (capped at 5); when that yields nothing and at least one token
// exists, a fallback pass matches just the first token alone (capped
// at 3), recovering from misremembered state abbreviations. Matches
// are deduplicated by area id across queries and the merged result is
// capped at 15.
func (e *Engine) SearchAreas(ctx context.Context, queries []string) ([]domain.AreaMatch, error) {
	start := e.clock.Now()

	catalog, err := e.store.Areas(ctx)
	if err != nil {
		e.observe("search_areas", start, "error")
		return nil, fmt.Errorf("area catalog: %w", err)
	}

	matches := matchAreas(catalog, queries)
	e.logger.Debug("area search", "queries", len(queries), "matches", len(matches))
	e.observe("search_areas", start, "success")
	return matches, nil
}

func matchAreas(catalog []domain.Area, queries []string) []domain.AreaMatch {
	matches := make([]domain.AreaMatch, 0, maxMergedMatches)
	seen := make(map[string]struct{})

	for _, query := range queries {
		hits := areasMatchingAllTokens(catalog, tokenizeAreaQuery(query))

		for _, area := range hits {
			if _, dup := seen[area.ID]; dup {
				continue
			}
			seen[area.ID] = struct{}{}
			matches = append(matches, domain.AreaMatch{
				ID:           area.ID,
				Name:         area.Name,
				State:        area.State,
				MatchedQuery: query,
			})
		}
	}

	if len(matches) > maxMergedMatches {
		matches = matches[:maxMergedMatches]
	}
	return matches
}

// tokenizeAreaQuery splits "Austin, TX" into ["austin", "tx"],
// discarding tokens too short to be meaningful.
func tokenizeAreaQuery(query string) []string {
	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(query, ",", " ")))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) > 1 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

func areasMatchingAllTokens(catalog []domain.Area, tokens []string) []domain.Area {
	primary := make([]domain.Area, 0, maxMatchesPerQuery)
	for _, area := range catalog {
		if len(primary) == maxMatchesPerQuery {
			break
		}
		if containsAllTokens(area, tokens) {
			primary = append(primary, area)
		}
	}
	if len(primary) > 0 || len(tokens) == 0 {
		return primary
	}

	// Over-constrained query ("Austin, ZZ"): relax to the first token
	// alone, which is usually the city name.
	fallback := make([]domain.Area, 0, maxFallbackMatches)
	for _, area := range catalog {
		if len(fallback) == maxFallbackMatches {
			break
		}
		if containsAllTokens(area, tokens[:1]) {
			fallback = append(fallback, area)
		}
	}
	return fallback
}

func containsAllTokens(area domain.Area, tokens []string) bool {
	haystack := strings.ToLower(area.Name + " " + area.State)
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}
