package main

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/wage-query-service/internal/query"
)

func wagesCmd() *cobra.Command {
	var (
		areaIDs []string
		state   string
	)

	cmd := &cobra.Command{
		Use:   "wages <soc-code>...",
		Short: "Look up prevailing wage levels for occupations",
		Long: `Look up the four prevailing wage levels for one or more SOC codes.
With --area, every code is resolved in every given area. With --state,
the top five areas of that state are returned. With neither, the top
five areas nationally.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := newEngine().LookupWages(cmd.Context(), query.WageQuery{
				SOCCodes: args,
				AreaIDs:  areaIDs,
				State:    state,
			})
			return printJSON(results)
		},
	}

	cmd.Flags().StringSliceVar(&areaIDs, "area", nil, "area id(s) to resolve wages in")
	cmd.Flags().StringVar(&state, "state", "", "two-letter state code for top areas in that state")
	return cmd
}
