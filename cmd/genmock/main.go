// Command genmock generates a synthetic wage dataset for local
// development and integration testing: an occupation catalog, an area
// catalog, and one wage table per occupation, in the exact shapes the
// service reads. Output is deterministic for a given seed.
//
// Usage:
//
//	go run ./cmd/genmock -out data
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/couchcryptid/wage-query-service/internal/domain"
)

type areaDef struct {
	id        string
	name      string
	state     string
	tier      int
	costIndex float64 // wage multiplier relative to the national baseline
}

var areaDefs = []areaDef{
	{"41860", "San Francisco-Oakland-Fremont, CA", "CA", 1, 1.45},
	{"41940", "San Jose-Sunnyvale-Santa Clara, CA", "CA", 1, 1.50},
	{"35620", "New York-Newark-Jersey City, NY-NJ", "NY", 1, 1.35},
	{"42660", "Seattle-Tacoma-Bellevue, WA", "WA", 1, 1.30},
	{"14460", "Boston-Cambridge-Newton, MA-NH", "MA", 1, 1.28},
	{"19100", "Dallas-Fort Worth-Arlington, TX", "TX", 1, 1.10},
	{"26420", "Houston-Pasadena-The Woodlands, TX", "TX", 1, 1.08},
	{"16980", "Chicago-Naperville-Elgin, IL-IN", "IL", 1, 1.12},
	{"12420", "Austin-Round Rock-San Marcos, TX", "TX", 2, 1.15},
	{"19740", "Denver-Aurora-Centennial, CO", "CO", 2, 1.14},
	{"38060", "Phoenix-Mesa-Chandler, AZ", "AZ", 2, 1.02},
	{"40900", "Sacramento-Roseville-Folsom, CA", "CA", 2, 1.10},
	{"36740", "Orlando-Kissimmee-Sanford, FL", "FL", 2, 0.95},
	{"41700", "San Antonio-New Braunfels, TX", "TX", 3, 0.94},
	{"36420", "Oklahoma City, OK", "OK", 3, 0.88},
	{"15380", "Buffalo-Cheektowaga, NY", "NY", 3, 0.90},
	{"42140", "Santa Fe, NM", "NM", 4, 0.85},
	{"21340", "El Paso, TX", "TX", 4, 0.80},
	{"99948", "Balance of Texas", "TX", 0, 0.75},
}

type occupationDef struct {
	code      string
	title     string
	baseL1    float64 // national baseline hourly Level 1 wage
	isPopular bool
}

var occupationDefs = []occupationDef{
	{"15-1252", "Software Developers", 45.0, true},
	{"15-1253", "Software Quality Assurance Analysts and Testers", 35.0, true},
	{"15-2051", "Data Scientists", 42.0, true},
	{"15-1211", "Computer Systems Analysts", 38.0, true},
	{"15-1241", "Computer Network Architects", 44.0, false},
	{"13-2011", "Accountants and Auditors", 30.0, false},
	{"13-1111", "Management Analysts", 36.0, false},
	{"29-1141", "Registered Nurses", 32.0, false},
	{"17-2051", "Civil Engineers", 34.0, false},
	{"17-2071", "Electrical Engineers", 38.0, false},
	{"17-2141", "Mechanical Engineers", 36.0, false},
	{"11-2021", "Marketing Managers", 48.0, false},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data", "output directory for the dataset")
	seed := flag.Uint64("seed", 1, "rng seed for reproducible output")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, 0))

	occupations := buildOccupations(rng)
	areas := buildAreas()

	if err := writeJSON(filepath.Join(*out, "occupations.json"), occupations); err != nil {
		return fmt.Errorf("writing occupation catalog: %w", err)
	}
	if err := writeJSON(filepath.Join(*out, "areas.json"), areas); err != nil {
		return fmt.Errorf("writing area catalog: %w", err)
	}

	recordCount := 0
	for _, def := range occupationDefs {
		table := buildWageTable(rng, def)
		path := filepath.Join(*out, "wages", def.code+".json")
		if err := writeJSON(path, table); err != nil {
			return fmt.Errorf("writing wage table %s: %w", def.code, err)
		}
		recordCount += len(table.Records)
	}

	log.Printf("wrote %d occupations, %d areas, %d wage tables (%d records) to %s",
		len(occupations), len(areas), len(occupationDefs), recordCount, *out)
	return nil
}

func buildOccupations(rng *rand.Rand) []domain.Occupation {
	occupations := make([]domain.Occupation, 0, len(occupationDefs))
	for _, def := range occupationDefs {
		occupations = append(occupations, domain.Occupation{
			Code:             def.code,
			Title:            def.title,
			ObservationCount: 50 + rng.IntN(600),
			IsPopular:        def.isPopular,
		})
	}
	return occupations
}

func buildAreas() []domain.Area {
	areas := make([]domain.Area, 0, len(areaDefs))
	for _, def := range areaDefs {
		areas = append(areas, domain.Area{
			ID:    def.id,
			Name:  def.name,
			State: def.state,
			Tier:  def.tier,
		})
	}
	return areas
}

// buildWageTable derives four ascending hourly levels per area from the
// occupation's national baseline and the area's cost index, with a
// small random spread. Not every area reports every occupation, so a
// few areas are skipped at random.
func buildWageTable(rng *rand.Rand, def occupationDef) domain.WageTable {
	table := domain.WageTable{SOCCode: def.code}
	for _, area := range areaDefs {
		if rng.Float64() < 0.15 {
			continue
		}
		l1 := def.baseL1 * area.costIndex * (0.95 + rng.Float64()*0.1)
		step := l1 * (0.12 + rng.Float64()*0.08)
		table.Records = append(table.Records, domain.WageRecord{
			AreaID: area.id,
			L1:     round2(l1),
			L2:     round2(l1 + step),
			L3:     round2(l1 + 2*step),
			L4:     round2(l1 + 3*step),
		})
	}
	return table
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
