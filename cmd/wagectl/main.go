// Command wagectl queries and validates a wage dataset from the
// command line: occupation and area search, wage lookups, optimal area
// ranking, dataset integrity checks, and an MCP server for LLM agents.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wage-query-service/internal/adapter/datastore"
	"github.com/couchcryptid/wage-query-service/internal/observability"
	"github.com/couchcryptid/wage-query-service/internal/query"
)

var (
	dataDir   string
	cacheSize int
	logLevel  string

	rootCmd = &cobra.Command{
		Use:   "wagectl",
		Short: "Query and validate prevailing wage datasets",
		Long: `wagectl explores a wage dataset directly: find SOC occupation codes,
resolve metro areas, look up prevailing wage levels, and rank every
area of an occupation by the wage level a salary achieves there.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "./data", "directory holding occupations.json, areas.json, and wages/")
	rootCmd.PersistentFlags().IntVar(&cacheSize, "cache-size", 64, "max wage tables held in memory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(searchOccupationsCmd())
	rootCmd.AddCommand(searchAreasCmd())
	rootCmd.AddCommand(wagesCmd())
	rootCmd.AddCommand(optimalCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(mcpCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newEngine wires a query engine over the configured dataset directory.
func newEngine() *query.Engine {
	logger := newLogger()
	metrics := observability.NewMetrics()
	store := datastore.NewCachedStore(
		datastore.NewFileStore(dataDir, logger, metrics),
		cacheSize,
		metrics,
	)
	return query.New(store, logger, metrics)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
