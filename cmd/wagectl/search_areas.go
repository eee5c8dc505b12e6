package main

import (
	"github.com/spf13/cobra"
)

func searchAreasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search-areas <query>...",
		Short: "Find metro area ids by place name",
		Long: `Search the area catalog by place name, e.g. "Austin, TX". All words of
a query must appear in the area's name or state; when nothing matches,
the first word alone is retried.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := newEngine().SearchAreas(cmd.Context(), args)
			if err != nil {
				return err
			}
			return printJSON(matches)
		},
	}
}
