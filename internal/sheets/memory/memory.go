// Package memory is an in-memory RangeReader backed by fixture matrices,
// used in tests and offline runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"reminder/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	ranges map[string][][]string
}

var _ sheets.RangeReader = (*Store)(nil)

// New creates a store serving the given range fixtures. Keys are A1-notation
// ranges exactly as the caller will request them.
func New(ranges map[string][][]string) *Store {
	copied := make(map[string][][]string, len(ranges))
	for k, v := range ranges {
		copied[k] = v
	}
	return &Store{ranges: copied}
}

// Set adds or replaces a fixture for a range.
func (s *Store) Set(rng string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges[rng] = rows
}

// ReadRange implements sheets.RangeReader. Missing fixtures fail the same
// way a permission problem would on the real service.
func (s *Store) ReadRange(_ context.Context, rng string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.ranges[rng]
	if !ok {
		return nil, fmt.Errorf("%w: no data for range %q", sheets.ErrFetch, rng)
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}
