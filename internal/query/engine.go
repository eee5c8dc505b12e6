// Package query implements the tool-mediated wage query engine: the
// four deterministic, side-effect-free operations an LLM agent calls
// to ground its answers in the wage dataset. Every operation is a pure
// function of its inputs and the immutable data snapshot; there is no
// shared mutable state between calls.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/observability"
)

// Result caps shared by the two resolvers.
const (
	maxMatchesPerQuery = 5
	maxFallbackMatches = 3
	maxMergedMatches   = 15
	maxRankedWages     = 5
)

// Store provides the three dataset artifacts. Satisfied by
// datastore.FileStore and datastore.CachedStore.
type Store interface {
	Occupations(ctx context.Context) ([]domain.Occupation, error)
	Areas(ctx context.Context) ([]domain.Area, error)
	WageTable(ctx context.Context, socCode string) (domain.WageTable, error)
}

// Engine owns the four tool operations over a data store.
type Engine struct {
	store   Store
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// New creates an Engine with the given store and observability.
func New(store Store, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		store:   store,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source used for operation timing. Pass nil
// to reset to real time. Tests inject a fake for deterministic output.
func (e *Engine) SetClock(c clockwork.Clock) {
	if c == nil {
		e.clock = clockwork.NewRealClock()
		return
	}
	e.clock = c
}

// CheckReadiness returns nil if both catalogs are readable, or an
// error describing which dataset artifact is unavailable.
func (e *Engine) CheckReadiness(ctx context.Context) error {
	if _, err := e.store.Occupations(ctx); err != nil {
		return fmt.Errorf("occupation catalog: %w", err)
	}
	if _, err := e.store.Areas(ctx); err != nil {
		return fmt.Errorf("area catalog: %w", err)
	}
	return nil
}

// observe records the outcome and duration of one tool operation.
func (e *Engine) observe(tool string, start time.Time, outcome string) {
	e.metrics.ToolCalls.WithLabelValues(tool, outcome).Inc()
	e.metrics.ToolCallDuration.WithLabelValues(tool).Observe(e.clock.Since(start).Seconds())
}
