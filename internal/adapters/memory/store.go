// Package memory holds in-process implementations of the record and
// assignment ports, used for file-driven runs and tests.
package memory

import (
	"context"
	"kill-chain-service/internal/domain"
	"maps"
	"slices"
	"sync"
)

type Store struct {
	mu          sync.RWMutex
	missions    []domain.Mission
	recon       []domain.ReconAsset
	strike      []domain.StrikeAsset
	assignments []domain.Assignment
	distances   map[string]map[string]float64
}

func NewStore(missions []domain.Mission, recon []domain.ReconAsset, strike []domain.StrikeAsset) *Store {
	return &Store{
		missions:  slices.Clone(missions),
		recon:     slices.Clone(recon),
		strike:    slices.Clone(strike),
		distances: map[string]map[string]float64{},
	}
}

func (s *Store) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.missions), nil
}

func (s *Store) ListReconAssets(ctx context.Context) ([]domain.ReconAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recon), nil
}

func (s *Store) ListStrikeAssets(ctx context.Context) ([]domain.StrikeAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.strike), nil
}

func (s *Store) SaveAssignments(ctx context.Context, rows []domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = slices.Clone(rows)
	return nil
}

func (s *Store) SaveDistances(ctx context.Context, entries []domain.DistanceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		byPlatform, ok := s.distances[e.Target]
		if !ok {
			byPlatform = map[string]float64{}
			s.distances[e.Target] = byPlatform
		}
		byPlatform[e.Platform] = e.NauticalMiles
	}
	return nil
}

func (s *Store) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	return s.Assignments(), nil
}

// Assignments returns the rows of the last SaveAssignments call.
func (s *Store) Assignments() []domain.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.assignments)
}

func (s *Store) DistancesTo(ctx context.Context, target string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.distances[target]), nil
}
