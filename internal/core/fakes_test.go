package core_test

import (
	"context"
	"sync"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
)

// memStore is an in-memory core.Store for service tests.
type memStore struct {
	mu      sync.Mutex
	recs    map[string]*core.Record
	order   []string
	probes  []string
	failErr error // returned by every call when set
	// conflictOnce makes the next Insert report a conflict, as if a
	// concurrent creator won the race after the probe.
	conflictOnce bool
	incrErr      error
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[string]*core.Record)}
}

func (m *memStore) Insert(_ context.Context, r *core.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if m.conflictOnce {
		m.conflictOnce = false
		return core.ErrConflict
	}
	if _, ok := m.recs[r.ID]; ok {
		return core.ErrConflict
	}
	cp := *r
	m.recs[r.ID] = &cp
	m.order = append(m.order, r.ID)
	return nil
}

func (m *memStore) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return false, m.failErr
	}
	m.probes = append(m.probes, id)
	_, ok := m.recs[id]
	return ok, nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*core.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	r, ok := m.recs[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) IncrementRedirects(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.incrErr != nil {
		return m.incrErr
	}
	r, ok := m.recs[id]
	if !ok {
		return core.ErrNotFound
	}
	r.Redirects++
	return nil
}

func (m *memStore) List(_ context.Context) ([]core.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	out := make([]core.Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.recs[id])
	}
	return out, nil
}

func (m *memStore) Ping(context.Context) error { return m.failErr }
func (m *memStore) Close() error               { return nil }

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}

// seqGen hands out a fixed sequence of ids, then repeats the last one.
type seqGen struct {
	mu  sync.Mutex
	ids []string
	n   int
}

func (g *seqGen) NewID(context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.n
	if i >= len(g.ids) {
		i = len(g.ids) - 1
	}
	g.n++
	return g.ids[i], nil
}

var _ core.Store = (*memStore)(nil)
