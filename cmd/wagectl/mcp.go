package main

import (
	"github.com/spf13/cobra"

	mcpadapter "github.com/couchcryptid/wage-query-service/internal/adapter/mcp"
)

func mcpCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the query tools over the Model Context Protocol",
		Long: `Expose searchOccupations, searchAreas, getWageData, and
findOptimalAreas as MCP tools. By default the server speaks stdio for
direct use by an agent runtime; --addr switches to streamable HTTP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcpadapter.NewServer(newEngine(), newLogger())
			if addr != "" {
				return server.RunHTTP(cmd.Context(), addr)
			}
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address for HTTP transport (empty = stdio)")
	return cmd
}
