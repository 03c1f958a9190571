package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryIndex is a SingleIndex kept in process memory.
type MemoryIndex struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{records: make(map[string]Record)}
}

func (m *MemoryIndex) Put(_ context.Context, records ...Record) error {
	for _, r := range records {
		if r.ID == "" {
			return ErrInvalidRecord
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.records[r.ID] = r
	}
	return nil
}

// List orders ties on the sort key by id so results are stable.
func (m *MemoryIndex) List(_ context.Context, query ListQuery) ([]Record, error) {
	m.mu.RLock()
	out := make([]Record, 0)
	for _, r := range m.records {
		if query.matches(r) {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if query.Order == Descending {
			a, b = b, a
		}
		if a.Sort != b.Sort {
			return a.Sort < b.Sort
		}
		return a.ID < b.ID
	})
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (m *MemoryIndex) Delete(_ context.Context, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.records, id)
	}
	return nil
}
