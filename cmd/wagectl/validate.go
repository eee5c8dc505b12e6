package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wage-query-service/internal/domain"
)

var socCodeFormat = regexp.MustCompile(`^[0-9]{2}-[0-9]{4}$`)

// phase tracks pass/fail for one validation phase. Warnings are
// reported but never fail the run.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check dataset integrity",
		Long: `Verify the dataset directory end to end: catalog shape and key
uniqueness, wage table naming and record shape, referential integrity
between wage records and the area catalog, and wage level ordering.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if code := runValidation(dataDir); code != 0 {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
}

func runValidation(dir string) int {
	fmt.Println("=== Wage Dataset Integrity Validation ===")
	fmt.Println()

	occupations, err := loadCatalog[domain.Occupation](filepath.Join(dir, "occupations.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load occupation catalog: %v\n", err)
		return 1
	}
	areas, err := loadCatalog[domain.Area](filepath.Join(dir, "areas.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load area catalog: %v\n", err)
		return 1
	}
	tables, err := loadWageTables(filepath.Join(dir, "wages"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load wage tables: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateOccupationCatalog(occupations),
		validateAreaCatalog(areas),
		validateWageTables(tables),
		validateReferentialIntegrity(tables, occupations, areas),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		if len(p.warnings) > 0 {
			status += fmt.Sprintf(" (%d warnings)", len(p.warnings))
		}
		fmt.Printf("  %-46s %s\n", p.name, status)
	}

	recordCount := 0
	for _, t := range tables {
		recordCount += len(t.Records)
	}
	fmt.Println()
	fmt.Printf("Records: %d occupations, %d areas, %d wage tables, %d wage records\n",
		len(occupations), len(areas), len(tables), recordCount)

	for _, p := range phases {
		if p.passed() && len(p.warnings) == 0 {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
		for _, w := range p.warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadCatalog[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// loadWageTables reads every wage table in the directory, keyed by the
// file's base name (the expected SOC code).
func loadWageTables(dir string) (map[string]domain.WageTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tables := make(map[string]domain.WageTable, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var table domain.WageTable
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		tables[strings.TrimSuffix(entry.Name(), ".json")] = table
	}
	return tables, nil
}

func validateOccupationCatalog(occupations []domain.Occupation) *phase {
	p := &phase{name: "Phase 1: Occupation Catalog"}

	if len(occupations) == 0 {
		p.errorf("catalog is empty")
		return p
	}

	seen := map[string]int{}
	for i, o := range occupations {
		if o.Code == "" {
			p.errorf("entry %d: missing code", i)
			continue
		}
		if !socCodeFormat.MatchString(o.Code) {
			p.errorf("entry %d: code %q is not NN-NNNN", i, o.Code)
		}
		if o.Title == "" {
			p.errorf("entry %d (%s): missing title", i, o.Code)
		}
		if prev, dup := seen[o.Code]; dup {
			p.errorf("entry %d: code %s already seen at entry %d", i, o.Code, prev)
		}
		seen[o.Code] = i
	}
	return p
}

func validateAreaCatalog(areas []domain.Area) *phase {
	p := &phase{name: "Phase 2: Area Catalog"}

	if len(areas) == 0 {
		p.errorf("catalog is empty")
		return p
	}

	seen := map[string]int{}
	for i, a := range areas {
		if a.ID == "" {
			p.errorf("entry %d: missing id", i)
			continue
		}
		if a.Name == "" {
			p.errorf("entry %d (%s): missing name", i, a.ID)
		}
		if a.State == "" {
			p.errorf("entry %d (%s): missing state", i, a.ID)
		} else if len(a.State) != 2 {
			p.errorf("entry %d (%s): state %q is not 2 characters", i, a.ID, a.State)
		}
		if a.Tier < 0 || a.Tier > 5 {
			p.errorf("entry %d (%s): tier %d out of range", i, a.ID, a.Tier)
		}
		if prev, dup := seen[a.ID]; dup {
			p.errorf("entry %d: id %s already seen at entry %d", i, a.ID, prev)
		}
		seen[a.ID] = i
	}
	return p
}

func validateWageTables(tables map[string]domain.WageTable) *phase {
	p := &phase{name: "Phase 3: Wage Tables"}

	for name, table := range tables {
		if !socCodeFormat.MatchString(name) {
			p.errorf("%s.json: file name is not a SOC code", name)
		}
		if table.SOCCode != name {
			p.errorf("%s.json: soc field is %q", name, table.SOCCode)
		}
		if len(table.Records) == 0 {
			p.warnf("%s: table has no records", name)
		}

		seen := map[string]bool{}
		for i, r := range table.Records {
			if r.AreaID == "" {
				p.errorf("%s record %d: missing area_id", name, i)
				continue
			}
			if seen[r.AreaID] {
				p.errorf("%s record %d: duplicate area_id %s", name, i, r.AreaID)
			}
			seen[r.AreaID] = true

			if r.L1 < 0 || r.L2 < 0 || r.L3 < 0 || r.L4 < 0 {
				p.errorf("%s area %s: negative wage level", name, r.AreaID)
			}
			// Non-monotonic levels occur in real survey data; flag
			// without failing.
			if r.L1 > r.L2 || r.L2 > r.L3 || r.L3 > r.L4 {
				p.warnf("%s area %s: levels not ascending (%.2f/%.2f/%.2f/%.2f)",
					name, r.AreaID, r.L1, r.L2, r.L3, r.L4)
			}
		}
	}
	return p
}

func validateReferentialIntegrity(tables map[string]domain.WageTable, occupations []domain.Occupation, areas []domain.Area) *phase {
	p := &phase{name: "Phase 4: Referential Integrity"}

	knownOccupations := make(map[string]bool, len(occupations))
	for _, o := range occupations {
		knownOccupations[o.Code] = true
	}
	knownAreas := make(map[string]bool, len(areas))
	for _, a := range areas {
		knownAreas[a.ID] = true
	}

	for name, table := range tables {
		if !knownOccupations[name] {
			p.warnf("%s: wage table has no occupation catalog entry", name)
		}
		for _, r := range table.Records {
			if r.AreaID != "" && !knownAreas[r.AreaID] {
				p.errorf("%s: area %s not in area catalog", name, r.AreaID)
			}
		}
	}

	for _, o := range occupations {
		if _, ok := tables[o.Code]; !ok {
			p.warnf("occupation %s (%s) has no wage table", o.Code, o.Title)
		}
	}
	return p
}
