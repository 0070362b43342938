package highscore

import "sync"

// Merging wraps a Store shared by several concurrent sessions. Save merges
// the given table into the stored one, keeping the best score per tier, so
// one session never overwrites a better score recorded by another.
type Merging struct {
	mu    sync.Mutex
	inner Store
}

// NewMerging wraps inner.
func NewMerging(inner Store) *Merging {
	return &Merging{inner: inner}
}

// Load returns the stored table.
func (m *Merging) Load() (Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Load()
}

// Save stores the per-tier maximum of t and the current record.
func (m *Merging) Save(t Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A malformed record still yields a complete zero table, which is a safe merge base.
	current, _ := m.inner.Load()
	for tier, score := range t {
		current.Record(tier, score)
	}
	return m.inner.Save(current)
}
