package store

import (
	"sync"

	"github.com/adboard/adboard-go/internal/config"
	"github.com/adboard/adboard-go/internal/engine"
	"github.com/adboard/adboard-go/internal/models"
)

// Store holds the latest snapshot and the tunable settings. The snapshot is
// replaced wholesale by each refresh cycle; settings are the only state
// mutated in place, and a thresholds change re-evaluates success criteria
// over the existing records without a re-join.
type Store struct {
	mu       sync.RWMutex
	snap     models.Snapshot
	settings config.Settings
}

func NewStore(settings config.Settings) *Store {
	return &Store{settings: settings}
}

// Swap installs the result of a refresh cycle.
func (s *Store) Swap(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Snapshot returns the current snapshot. Records are shared, not copied;
// callers treat them as immutable.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) Settings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateThresholds swaps in new thresholds and re-evaluates the current
// record set against them. Raw counts and ratios are untouched.
func (s *Store) UpdateThresholds(th models.KpiThresholds) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Thresholds = th
	s.snap.Records = engine.Reevaluate(s.snap.Records, th, s.settings.SuccessMinCriteria)
	return s.snap
}

// UpdateRules swaps in new optimization rules.
func (s *Store) UpdateRules(rules models.OptimizationRules) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Rules = rules
}
