package domain

import (
	"encoding/json"
	"math"
)

// HoursPerYear is the standard full-time hours per year (40 x 52) used
// to convert hourly survey wages to annual figures.
const HoursPerYear = 2080

// PageSize is the fixed page size of paginated level-matching results.
const PageSize = 50

// WageRecord holds the hourly USD wages of one area for prevailing-wage
// levels 1-4. A level with insufficient survey data is recorded as 0;
// L1 <= L2 <= L3 <= L4 is expected but not enforced (see package doc).
type WageRecord struct {
	AreaID string  `json:"area_id"`
	L1     float64 `json:"l1"`
	L2     float64 `json:"l2"`
	L3     float64 `json:"l3"`
	L4     float64 `json:"l4"`
}

// WageTable is the full set of wage records for one occupation, one
// file per SOC code in the dataset.
type WageTable struct {
	SOCCode string       `json:"soc"`
	Records []WageRecord `json:"wages"`
}

// HourlyLevels carries the verbatim hourly wages of the four levels.
type HourlyLevels struct {
	L1 float64 `json:"l1"`
	L2 float64 `json:"l2"`
	L3 float64 `json:"l3"`
	L4 float64 `json:"l4"`
}

// AnnualLevels carries the annualized wages of the four levels.
type AnnualLevels struct {
	L1 int `json:"l1"`
	L2 int `json:"l2"`
	L3 int `json:"l3"`
	L4 int `json:"l4"`
}

// AnnualFromHourly converts an hourly wage to its annual equivalent.
func AnnualFromHourly(hourly float64) int {
	return int(math.Round(hourly * HoursPerYear))
}

// WageSnapshot is the presentation form of a WageRecord: hourly wages
// verbatim plus their annual conversions.
type WageSnapshot struct {
	Hourly HourlyLevels `json:"hourly"`
	Annual AnnualLevels `json:"annual"`
}

// Snapshot converts the record into its presentation form.
func (r WageRecord) Snapshot() WageSnapshot {
	return WageSnapshot{
		Hourly: HourlyLevels{L1: r.L1, L2: r.L2, L3: r.L3, L4: r.L4},
		Annual: r.AnnualThresholds(),
	}
}

// AnnualThresholds returns the annualized level thresholds of the record.
func (r WageRecord) AnnualThresholds() AnnualLevels {
	return AnnualLevels{
		L1: AnnualFromHourly(r.L1),
		L2: AnnualFromHourly(r.L2),
		L3: AnnualFromHourly(r.L3),
		L4: AnnualFromHourly(r.L4),
	}
}

// AchievedLevel returns the highest wage level (4 down to 1) whose
// annual threshold the salary meets, or 0 if the salary is below even
// Level 1. Thresholds are tested strictly from L4 downward so a
// degenerate 0-valued lower level (missing survey data) cannot shadow
// a higher level that already matched.
func (t AnnualLevels) AchievedLevel(annualSalary float64) int {
	switch {
	case annualSalary >= float64(t.L4):
		return 4
	case annualSalary >= float64(t.L3):
		return 3
	case annualSalary >= float64(t.L2):
		return 2
	case annualSalary >= float64(t.L1):
		return 1
	default:
		return 0
	}
}

// WageLookupResult is one item of a batched wage lookup: either a
// success carrying a snapshot or a per-item error, distinguished on
// the wire by the presence of the "error" field. The variant is
// explicit here so handling stays exhaustive at compile time.
type WageLookupResult struct {
	SOCCode  string
	AreaID   string
	State    string
	Snapshot *WageSnapshot
	Err      string
}

// IsError reports whether the item is the error variant.
func (r WageLookupResult) IsError() bool { return r.Err != "" }

// wageLookupEnvelope is the wire shape of both result variants.
type wageLookupEnvelope struct {
	SOCCode string        `json:"socCode"`
	AreaID  string        `json:"areaId,omitempty"`
	State   string        `json:"state,omitempty"`
	Hourly  *HourlyLevels `json:"hourly,omitempty"`
	Annual  *AnnualLevels `json:"annual,omitempty"`
	Err     string        `json:"error,omitempty"`
}

// MarshalJSON flattens the snapshot into the envelope so success items
// serialize as {socCode, areaId, hourly, annual} and error items as
// {socCode, areaId, error}.
func (r WageLookupResult) MarshalJSON() ([]byte, error) {
	env := wageLookupEnvelope{
		SOCCode: r.SOCCode,
		AreaID:  r.AreaID,
		State:   r.State,
		Err:     r.Err,
	}
	if r.Snapshot != nil {
		env.Hourly = &r.Snapshot.Hourly
		env.Annual = &r.Snapshot.Annual
	}
	return json.Marshal(env)
}

// UnmarshalJSON restores a result from its wire envelope.
func (r *WageLookupResult) UnmarshalJSON(data []byte) error {
	var env wageLookupEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*r = WageLookupResult{
		SOCCode: env.SOCCode,
		AreaID:  env.AreaID,
		State:   env.State,
		Err:     env.Err,
	}
	if env.Hourly != nil && env.Annual != nil {
		r.Snapshot = &WageSnapshot{Hourly: *env.Hourly, Annual: *env.Annual}
	}
	return nil
}

// AreaLevelInfo is the per-area outcome of matching a salary against
// an occupation's wage table.
type AreaLevelInfo struct {
	AreaID        string       `json:"areaId"`
	Name          string       `json:"name"`
	State         string       `json:"state"`
	CityTier      int          `json:"cityTier"`
	AchievedLevel int          `json:"achievedLevel"`
	Thresholds    AnnualLevels `json:"thresholds"`
}

// OptimalAreasPage is one page of filtered, sorted level-matching
// results. Pages past the end carry an empty Results slice.
type OptimalAreasPage struct {
	Results     []AreaLevelInfo `json:"results"`
	TotalCount  int             `json:"totalCount"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	HasMore     bool            `json:"hasMore"`
}
