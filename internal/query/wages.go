package query

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/couchcryptid/wage-query-service/internal/domain"
)

// WageQuery selects wage records for one or more occupations. Exactly
// one filter mode applies per occupation, in precedence order:
// AreaIDs (batch cross-product), then State (top 5 in-state by L4),
// then neither (top 5 nationally by L4).
type WageQuery struct {
	SOCCodes []string
	AreaIDs  []string
	State    string
}

// LookupWages retrieves wage snapshots for every occupation in the
// query. Occupations are processed independently and results
// concatenated; a missing wage table or area record produces a
// per-item error entry and never aborts the remaining lookups, so a
// single call can resolve an n-by-m occupation/area grid.
func (e *Engine) LookupWages(ctx context.Context, q WageQuery) []domain.WageLookupResult {
	start := e.clock.Now()

	results := make([]domain.WageLookupResult, 0, len(q.SOCCodes))
	for _, socCode := range q.SOCCodes {
		results = append(results, e.lookupOccupationWages(ctx, socCode, q)...)
	}

	e.logger.Debug("wage lookup",
		"soc_codes", len(q.SOCCodes),
		"area_ids", len(q.AreaIDs),
		"state", q.State,
		"results", len(results),
	)
	e.observe("get_wage_data", start, "success")
	return results
}

func (e *Engine) lookupOccupationWages(ctx context.Context, socCode string, q WageQuery) []domain.WageLookupResult {
	table, err := e.store.WageTable(ctx, socCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.WageLookupResult{{
				SOCCode: socCode,
				Err:     fmt.Sprintf("no wage data found for SOC code %s", socCode),
			}}
		}
		e.logger.Error("wage table read failed", "soc_code", socCode, "error", err)
		return []domain.WageLookupResult{{
			SOCCode: socCode,
			Err:     fmt.Sprintf("wage data temporarily unavailable for SOC code %s", socCode),
		}}
	}

	switch {
	case len(q.AreaIDs) > 0:
		return wagesByArea(socCode, table, q.AreaIDs)
	case q.State != "":
		return e.topWagesInState(ctx, socCode, table, q.State)
	default:
		return topWages(socCode, table.Records, "")
	}
}

// wagesByArea emits one result per requested area: a snapshot when the
// table has a record for it, a per-item error otherwise.
func wagesByArea(socCode string, table domain.WageTable, areaIDs []string) []domain.WageLookupResult {
	byArea := make(map[string]domain.WageRecord, len(table.Records))
	for _, record := range table.Records {
		if _, ok := byArea[record.AreaID]; !ok {
			byArea[record.AreaID] = record
		}
	}

	results := make([]domain.WageLookupResult, 0, len(areaIDs))
	for _, areaID := range areaIDs {
		record, ok := byArea[areaID]
		if !ok {
			results = append(results, domain.WageLookupResult{
				SOCCode: socCode,
				AreaID:  areaID,
				Err:     fmt.Sprintf("no data for area %s", areaID),
			})
			continue
		}
		snapshot := record.Snapshot()
		results = append(results, domain.WageLookupResult{
			SOCCode:  socCode,
			AreaID:   areaID,
			Snapshot: &snapshot,
		})
	}
	return results
}

// topWagesInState keeps records whose area belongs to the state, then
// ranks like the national mode. State membership comes from the area
// catalog; if that catalog is unreadable the whole occupation entry
// degrades to a single error item.
func (e *Engine) topWagesInState(ctx context.Context, socCode string, table domain.WageTable, state string) []domain.WageLookupResult {
	areas, err := e.store.Areas(ctx)
	if err != nil {
		e.logger.Error("area catalog read failed", "error", err)
		return []domain.WageLookupResult{{
			SOCCode: socCode,
			State:   state,
			Err:     fmt.Sprintf("area lookup failed for state %s", state),
		}}
	}

	inState := make(map[string]struct{})
	for _, area := range areas {
		if area.State == state {
			inState[area.ID] = struct{}{}
		}
	}

	records := make([]domain.WageRecord, 0, len(table.Records))
	for _, record := range table.Records {
		if _, ok := inState[record.AreaID]; ok {
			records = append(records, record)
		}
	}
	return topWages(socCode, records, state)
}

// topWages ranks records descending by L4 — the most senior wage level,
// used as the proxy for "most significant" areas — and returns the top
// 5 as snapshots. The input is copied; cached tables are never sorted
// in place.
func topWages(socCode string, records []domain.WageRecord, state string) []domain.WageLookupResult {
	ranked := slices.Clone(records)
	slices.SortStableFunc(ranked, func(a, b domain.WageRecord) int {
		return cmp.Compare(b.L4, a.L4)
	})
	if len(ranked) > maxRankedWages {
		ranked = ranked[:maxRankedWages]
	}

	results := make([]domain.WageLookupResult, 0, len(ranked))
	for _, record := range ranked {
		snapshot := record.Snapshot()
		results = append(results, domain.WageLookupResult{
			SOCCode:  socCode,
			AreaID:   record.AreaID,
			State:    state,
			Snapshot: &snapshot,
		})
	}
	return results
}
