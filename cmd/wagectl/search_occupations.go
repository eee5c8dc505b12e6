package main

import (
	"github.com/spf13/cobra"
)

func searchOccupationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search-occupations <query>...",
		Short: "Find SOC occupation codes by title fragment",
		Long: `Search the occupation catalog by title substring. Each query returns
up to five matches; the merged result is capped at fifteen.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := newEngine().SearchOccupations(cmd.Context(), args)
			if err != nil {
				return err
			}
			return printJSON(matches)
		},
	}
}
