package domain

// Occupation is one entry of the occupation catalog. Code is the
// natural key. ObservationCount reflects how many wage records
// reference the code; IsPopular is a static curation flag used only
// for catalog ordering at build time, never for filtering.
type Occupation struct {
	Code             string `json:"code"`
	Title            string `json:"title"`
	ObservationCount int    `json:"count"`
	IsPopular        bool   `json:"isPopular,omitempty"`
}

// OccupationMatch is a single occupation search hit, tagged with the
// query string that first produced it.
type OccupationMatch struct {
	Code             string `json:"code"`
	Title            string `json:"title"`
	ObservationCount int    `json:"count"`
	MatchedQuery     string `json:"query"`
}
