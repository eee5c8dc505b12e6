// Package mcp exposes the four query tools over the Model Context
// Protocol so LLM agents can call them directly.
package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/query"
)

// Version is the MCP server version.
const Version = "0.1.0"

// QueryEngine is the slice of the engine the MCP layer needs.
type QueryEngine interface {
	SearchOccupations(ctx context.Context, queries []string) ([]domain.OccupationMatch, error)
	SearchAreas(ctx context.Context, queries []string) ([]domain.AreaMatch, error)
	LookupWages(ctx context.Context, q query.WageQuery) []domain.WageLookupResult
	FindOptimalAreas(ctx context.Context, q query.OptimalAreasQuery) (domain.OptimalAreasPage, error)
}

// Server bridges the query engine to MCP clients.
type Server struct {
	engine QueryEngine
	logger *slog.Logger
	server *mcp.Server
}

// NewServer creates an MCP server exposing the query tools.
func NewServer(engine QueryEngine, logger *slog.Logger) *Server {
	impl := &mcp.Implementation{
		Name:    "wage-query",
		Version: Version,
	}

	s := &Server{
		engine: engine,
		logger: logger,
		server: mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on the given
// address. It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	s.logger.Info("mcp server starting", "transport", "http", "addr", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
