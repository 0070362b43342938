// Package highscore persists the best score per difficulty tier.
package highscore

import (
	"maps"

	"github.com/feifei876/alien-invasion/internal/difficulty"
)

// Table maps each tier to its best score.
type Table map[difficulty.Tier]int

// NewTable returns a table with every tier at zero.
func NewTable() Table {
	t := make(Table, len(difficulty.All()))
	for _, tier := range difficulty.All() {
		t[tier] = 0
	}
	return t
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	return maps.Clone(t)
}

// Get returns the best score for the tier (zero when absent).
func (t Table) Get(tier difficulty.Tier) int {
	return t[tier]
}

// Record stores score for tier if it beats the current best.
// Returns true when the table changed.
func (t Table) Record(tier difficulty.Tier, score int) bool {
	if score <= t[tier] {
		return false
	}
	t[tier] = score
	return true
}

// normalize fills in every missing tier with zero and clamps negative values.
func (t Table) normalize() Table {
	out := NewTable()
	for _, tier := range difficulty.All() {
		if v := t[tier]; v > 0 {
			out[tier] = v
		}
	}
	return out
}

// Store loads and saves the high-score table.
//
// Load always returns a complete table: on a missing record it returns zeros
// and a nil error; on a malformed record it returns zeros together with an
// error describing the fault so the caller can log it.
type Store interface {
	Load() (Table, error)
	Save(Table) error
}
