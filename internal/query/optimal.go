package query

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/couchcryptid/wage-query-service/internal/domain"
)

// OptimalAreasQuery matches a salary against every area of one
// occupation's wage table. Zero values disable the optional filters.
//
// TierCeiling is the public "minCityTier" parameter: despite the
// public name it is a maximum numeric tier — keep areas with
// tier <= ceiling, i.e. at least this prominent. Adapters default an
// absent value to 2 (top metros and major cities).
type OptimalAreasQuery struct {
	SOCCode      string
	AnnualSalary float64
	MinLevel     int
	TierCeiling  int
	State        string
	Page         int
}

// FindOptimalAreas computes the achieved prevailing-wage level of the
// salary in every area with wage data for the occupation, enriches the
// rows with area metadata, filters by level, tier ceiling, and state,
// sorts by achieved level descending with the lowest L1 threshold
// first among ties (the "easiest target" areas), and returns one page
// of 50. Pages past the end yield an empty result, not an error.
func (e *Engine) FindOptimalAreas(ctx context.Context, q OptimalAreasQuery) (domain.OptimalAreasPage, error) {
	start := e.clock.Now()

	if q.SOCCode == "" {
		e.observe("find_optimal_areas", start, "error")
		return domain.OptimalAreasPage{}, fmt.Errorf("soc code is required: %w", domain.ErrInvalidInput)
	}

	table, err := e.store.WageTable(ctx, q.SOCCode)
	if err != nil {
		e.observe("find_optimal_areas", start, "error")
		return domain.OptimalAreasPage{}, fmt.Errorf("wage table for %s: %w", q.SOCCode, err)
	}

	// Missing area metadata degrades to "Unknown" rows rather than
	// failing the whole call.
	areaIndex := e.areaIndex(ctx)

	rows := make([]domain.AreaLevelInfo, 0, len(table.Records))
	for _, record := range table.Records {
		rows = append(rows, levelInfoForRecord(record, q.AnnualSalary, areaIndex))
	}

	filtered := filterAreaLevels(rows, q)
	sortAreaLevels(filtered)
	page := paginateAreaLevels(filtered, q.Page)

	e.logger.Debug("optimal area search",
		"soc_code", q.SOCCode,
		"annual_salary", q.AnnualSalary,
		"filtered", page.TotalCount,
		"page", page.CurrentPage,
	)
	e.observe("find_optimal_areas", start, "success")
	return page, nil
}

func (e *Engine) areaIndex(ctx context.Context) map[string]domain.Area {
	areas, err := e.store.Areas(ctx)
	if err != nil {
		e.logger.Warn("area catalog unavailable, using placeholder metadata", "error", err)
		return nil
	}
	index := make(map[string]domain.Area, len(areas))
	for _, area := range areas {
		index[area.ID] = area
	}
	return index
}

func levelInfoForRecord(record domain.WageRecord, annualSalary float64, areaIndex map[string]domain.Area) domain.AreaLevelInfo {
	thresholds := record.AnnualThresholds()

	info := domain.AreaLevelInfo{
		AreaID:        record.AreaID,
		Name:          "Unknown",
		State:         "Unknown",
		CityTier:      domain.DefaultCityTier,
		AchievedLevel: thresholds.AchievedLevel(annualSalary),
		Thresholds:    thresholds,
	}
	if area, ok := areaIndex[record.AreaID]; ok {
		info.Name = area.Name
		info.State = area.State
		info.CityTier = area.CityTier()
	}
	return info
}

// filterAreaLevels applies the optional filters, AND-combined:
// achieved level at least MinLevel, city tier at most TierCeiling,
// exact state match (case-insensitive).
func filterAreaLevels(rows []domain.AreaLevelInfo, q OptimalAreasQuery) []domain.AreaLevelInfo {
	state := strings.ToUpper(q.State)

	filtered := make([]domain.AreaLevelInfo, 0, len(rows))
	for _, row := range rows {
		if q.MinLevel > 0 && row.AchievedLevel < q.MinLevel {
			continue
		}
		if q.TierCeiling > 0 && row.CityTier > q.TierCeiling {
			continue
		}
		if state != "" && row.State != state {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// sortAreaLevels orders by achieved level descending; among areas at
// the same level, the one requiring the lowest salary for Level 1
// ranks first.
func sortAreaLevels(rows []domain.AreaLevelInfo) {
	slices.SortStableFunc(rows, func(a, b domain.AreaLevelInfo) int {
		if a.AchievedLevel != b.AchievedLevel {
			return cmp.Compare(b.AchievedLevel, a.AchievedLevel)
		}
		return cmp.Compare(a.Thresholds.L1, b.Thresholds.L1)
	})
}

func paginateAreaLevels(rows []domain.AreaLevelInfo, page int) domain.OptimalAreasPage {
	if page < 1 {
		page = 1
	}

	totalCount := len(rows)
	totalPages := (totalCount + domain.PageSize - 1) / domain.PageSize

	start := (page - 1) * domain.PageSize
	end := min(start+domain.PageSize, totalCount)

	results := []domain.AreaLevelInfo{}
	if start < totalCount {
		results = rows[start:end]
	}

	return domain.OptimalAreasPage{
		Results:     results,
		TotalCount:  totalCount,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasMore:     page < totalPages,
	}
}
