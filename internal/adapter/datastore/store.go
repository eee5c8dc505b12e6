// Package datastore provides read-only access to the on-disk wage
// dataset: the occupation catalog, the area catalog, and one wage
// table per SOC code. The dataset is immutable per release, so the
// CachedStore decorator caches catalogs for the process lifetime and
// wage tables in a bounded LRU.
package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/couchcryptid/wage-query-service/internal/domain"
	"github.com/couchcryptid/wage-query-service/internal/observability"
)

const (
	occupationsFile = "occupations.json"
	areasFile       = "areas.json"
	wagesDir        = "wages"
)

// socCodePattern validates SOC codes before they become file names.
// Anything else is treated as an unknown occupation, which also keeps
// caller input out of path construction.
var socCodePattern = regexp.MustCompile(`^[0-9]{2}-[0-9]{4}$`)

// Store reads the three dataset artifacts. Implementations return
// errors wrapping domain.ErrNotFound for absent wage tables and
// domain.ErrDataUnavailable for unreadable or corrupt files.
type Store interface {
	Occupations(ctx context.Context) ([]domain.Occupation, error)
	Areas(ctx context.Context) ([]domain.Area, error)
	WageTable(ctx context.Context, socCode string) (domain.WageTable, error)
}

// FileStore reads dataset files from a local directory on every call.
// Wrap it in a CachedStore for anything beyond one-shot use.
type FileStore struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFileStore creates a store rooted at the given dataset directory.
func NewFileStore(dir string, logger *slog.Logger, metrics *observability.Metrics) *FileStore {
	return &FileStore{dir: dir, logger: logger, metrics: metrics}
}

// Occupations loads the occupation catalog. A missing catalog file is
// an infrastructure failure, not a lookup miss.
func (s *FileStore) Occupations(_ context.Context) ([]domain.Occupation, error) {
	var occupations []domain.Occupation
	if err := s.readJSON(occupationsFile, "occupations", false, &occupations); err != nil {
		return nil, err
	}
	return occupations, nil
}

// Areas loads the area catalog.
func (s *FileStore) Areas(_ context.Context) ([]domain.Area, error) {
	var areas []domain.Area
	if err := s.readJSON(areasFile, "areas", false, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

// WageTable loads the wage table of one occupation. Absent tables are
// a normal outcome (not every SOC code has survey data) and surface as
// domain.ErrNotFound.
func (s *FileStore) WageTable(_ context.Context, socCode string) (domain.WageTable, error) {
	if !socCodePattern.MatchString(socCode) {
		s.metrics.StoreReads.WithLabelValues("wage_table", "not_found").Inc()
		return domain.WageTable{}, fmt.Errorf("wage table %q: %w", socCode, domain.ErrNotFound)
	}

	var table domain.WageTable
	if err := s.readJSON(filepath.Join(wagesDir, socCode+".json"), "wage_table", true, &table); err != nil {
		return domain.WageTable{}, err
	}
	return table, nil
}

// readJSON reads and decodes one dataset file. missingIsNotFound
// controls whether an absent file maps to ErrNotFound (wage tables) or
// ErrDataUnavailable (catalogs, which must always exist).
func (s *FileStore) readJSON(rel, kind string, missingIsNotFound bool, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, rel))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if missingIsNotFound {
			s.metrics.StoreReads.WithLabelValues(kind, "not_found").Inc()
			return fmt.Errorf("%s: %w", rel, domain.ErrNotFound)
		}
		s.logger.Error("dataset file missing", "file", rel)
		s.metrics.StoreReads.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("%s: %w", rel, domain.ErrDataUnavailable)
	case err != nil:
		s.logger.Error("dataset file unreadable", "file", rel, "error", err)
		s.metrics.StoreReads.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("%s: %w", rel, domain.ErrDataUnavailable)
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Error("dataset file corrupt", "file", rel, "error", err)
		s.metrics.StoreReads.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("%s: %w", rel, domain.ErrDataUnavailable)
	}

	s.metrics.StoreReads.WithLabelValues(kind, "success").Inc()
	return nil
}
