package domain

// DefaultCityTier is assumed for areas with no tier assignment
// wherever tier filtering or enrichment applies.
const DefaultCityTier = 3

// Area is one entry of the area catalog. ID is an opaque numeric
// string code and the natural key. Tier, Lat and Lng are optional
// build-time enrichments.
type Area struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	State string  `json:"state"`
	Tier  int     `json:"tier,omitempty"`
	Lat   float64 `json:"lat,omitempty"`
	Lng   float64 `json:"lng,omitempty"`
}

// CityTier returns the area's tier, falling back to DefaultCityTier
// when the catalog carries none.
func (a Area) CityTier() int {
	if a.Tier == 0 {
		return DefaultCityTier
	}
	return a.Tier
}

// AreaMatch is a single area search hit, tagged with the query string
// that first produced it.
type AreaMatch struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	State        string `json:"state"`
	MatchedQuery string `json:"query"`
}
