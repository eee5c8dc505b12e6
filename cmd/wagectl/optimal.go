package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/query"
)

func optimalCmd() *cobra.Command {
	var (
		salary   float64
		minLevel int
		maxTier  int
		state    string
		page     int
	)

	cmd := &cobra.Command{
		Use:   "optimal <soc-code>",
		Short: "Rank areas by the wage level a salary achieves there",
		Long: `Compute the prevailing wage level a salary achieves in every area with
wage data for the occupation. Results are sorted by achieved level,
best first; areas at the same level are ordered by how low their
Level 1 threshold is. Fifty results per page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newEngine().FindOptimalAreas(cmd.Context(), query.OptimalAreasQuery{
				SOCCode:      args[0],
				AnnualSalary: salary,
				MinLevel:     minLevel,
				TierCeiling:  maxTier,
				State:        state,
				Page:         page,
			})
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("no wage data found for SOC code %s", args[0])
				}
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Float64Var(&salary, "salary", 0, "annual salary in dollars to evaluate (required)")
	cmd.Flags().IntVar(&minLevel, "min-level", 0, "keep only areas achieving at least this level (1-4, 0 disables)")
	cmd.Flags().IntVar(&maxTier, "max-tier", 2, "city tier ceiling; keep areas with tier at most this value (0 disables)")
	cmd.Flags().StringVar(&state, "state", "", "two-letter state code to restrict results to")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}
