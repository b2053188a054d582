package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/arvidhagen/replaykit/internal/archive"
	"github.com/arvidhagen/replaykit/internal/model"
)

// Store is an in-memory archive.Store, used when no database is
// configured and by tests.
type Store struct {
	mu   sync.RWMutex
	recs map[string]archive.Record
}

func New() *Store {
	return &Store{recs: make(map[string]archive.Record)}
}

func (s *Store) Save(_ context.Context, rec archive.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = rec
	return nil
}

func (s *Store) Get(_ context.Context, id string) (archive.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return archive.Record{}, archive.ErrNotFound
	}
	return rec, nil
}

func (s *Store) List(_ context.Context, limit int) ([]archive.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]archive.Record, 0, len(s.recs))
	for _, rec := range s.recs {
		rec.Snapshot = model.Snapshot{}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FetchedAt.After(out[j].FetchedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
