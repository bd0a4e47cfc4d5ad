package cache

import (
	"context"
	"sync"

	"github.com/railtrack/railtrack/pkg/ctdf"
)

type MemoryViewStore struct {
	mu        sync.RWMutex
	tripViews map[string]ctdf.EnrichedTripView
	pnrs      map[string]ctdf.PNRStatus
}

func NewMemoryViewStore() *MemoryViewStore {
	return &MemoryViewStore{
		tripViews: map[string]ctdf.EnrichedTripView{},
		pnrs:      map[string]ctdf.PNRStatus{},
	}
}

func (s *MemoryViewStore) GetTripView(_ context.Context, tripID string) (*ctdf.EnrichedTripView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, ok := s.tripViews[tripID]
	if !ok {
		return nil, nil
	}

	return &view, nil
}

func (s *MemoryViewStore) SetTripView(_ context.Context, view ctdf.EnrichedTripView) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tripViews[view.ID] = view
	return nil
}

func (s *MemoryViewStore) GetPNRStatus(_ context.Context, pnr string) (*ctdf.PNRStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.pnrs[pnr]
	if !ok {
		return nil, nil
	}

	return &status, nil
}

func (s *MemoryViewStore) SetPNRStatus(_ context.Context, pnr string, status ctdf.PNRStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pnrs[pnr] = status
	return nil
}
