// Package http exposes the query engine over a small JSON API: the
// four tool endpoints plus health, readiness, and metrics routes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/query"
)

// QueryEngine is the slice of the engine the HTTP layer needs.
type QueryEngine interface {
	SearchOccupations(ctx context.Context, queries []string) ([]domain.OccupationMatch, error)
	SearchAreas(ctx context.Context, queries []string) ([]domain.AreaMatch, error)
	LookupWages(ctx context.Context, q query.WageQuery) []domain.WageLookupResult
	FindOptimalAreas(ctx context.Context, q query.OptimalAreasQuery) (domain.OptimalAreasPage, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the tool endpoints plus /healthz, /readyz, and /metrics.
type Server struct {
	httpServer *http.Server
	engine     QueryEngine
	logger     *slog.Logger
	clock      clockwork.Clock
}

// NewServer creates an HTTP server for the given engine.
func NewServer(addr string, engine QueryEngine, logger *slog.Logger) *Server {
	s := &Server{
		engine: engine,
		logger: logger,
		clock:  clockwork.NewRealClock(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/tools/search-occupations", s.handleSearchOccupations)
	mux.HandleFunc("POST /v1/tools/search-areas", s.handleSearchAreas)
	mux.HandleFunc("POST /v1/tools/wages", s.handleWages)
	mux.HandleFunc("POST /v1/tools/optimal-areas", s.handleOptimalAreas)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withRequestLog(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.engine.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type searchRequest struct {
	Queries []string `json:"queries"`
}

func (s *Server) handleSearchOccupations(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	matches, err := s.engine.SearchOccupations(r.Context(), req.Queries)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": matches})
}

func (s *Server) handleSearchAreas(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	matches, err := s.engine.SearchAreas(r.Context(), req.Queries)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": matches})
}

type wagesRequest struct {
	SOCCodes []string `json:"socCodes"`
	AreaIDs  []string `json:"areaIds,omitempty"`
	State    string   `json:"state,omitempty"`
}

func (s *Server) handleWages(w http.ResponseWriter, r *http.Request) {
	var req wagesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	results := s.engine.LookupWages(r.Context(), query.WageQuery{
		SOCCodes: req.SOCCodes,
		AreaIDs:  req.AreaIDs,
		State:    req.State,
	})
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// optimalAreasRequest uses pointers for the optional fields so an
// absent value and an explicit zero stay distinguishable: omitting
// minCityTier applies the default ceiling of 2, while sending 0
// disables the tier filter entirely.
type optimalAreasRequest struct {
	SOCCode      string  `json:"socCode"`
	AnnualSalary float64 `json:"annualSalary"`
	MinLevel     *int    `json:"minLevel,omitempty"`
	MinCityTier  *int    `json:"minCityTier,omitempty"`
	State        string  `json:"state,omitempty"`
	Page         *int    `json:"page,omitempty"`
}

func (r optimalAreasRequest) toQuery() query.OptimalAreasQuery {
	q := query.OptimalAreasQuery{
		SOCCode:      r.SOCCode,
		AnnualSalary: r.AnnualSalary,
		TierCeiling:  2,
		State:        r.State,
		Page:         1,
	}
	if r.MinLevel != nil {
		q.MinLevel = *r.MinLevel
	}
	if r.MinCityTier != nil {
		q.TierCeiling = *r.MinCityTier
	}
	if r.Page != nil {
		q.Page = *r.Page
	}
	return q
}

func (s *Server) handleOptimalAreas(w http.ResponseWriter, r *http.Request) {
	var req optimalAreasRequest
	if !decodeBody(w, r, &req) {
		return
	}
	page, err := s.engine.FindOptimalAreas(r.Context(), req.toQuery())
	if err != nil {
		// An unknown occupation is an answer, not a failure: the agent
		// relays the message rather than retrying.
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
			return
		}
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrDataUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("unhandled engine error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.clock.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", s.clock.Since(start).Milliseconds(),
		)
	})
}
