package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/railtrack/railtrack/pkg/ctdf"
)

var errBackendDown = errors.New("backend down")

type fakeLiveSource struct {
	mu       sync.Mutex
	statuses map[string]*ctdf.LiveTrainStatus
	failures map[string]bool
	calls    map[string]int
}

func newFakeLiveSource() *fakeLiveSource {
	return &fakeLiveSource{
		statuses: map[string]*ctdf.LiveTrainStatus{},
		failures: map[string]bool{},
		calls:    map[string]int{},
	}
}

func (s *fakeLiveSource) set(trainNumber string, status *ctdf.LiveTrainStatus, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statuses[trainNumber] = status
	s.failures[trainNumber] = fail
}

func (s *fakeLiveSource) LiveStatus(_ context.Context, trainNumber string, _ string) (*ctdf.LiveTrainStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[trainNumber]++
	if s.failures[trainNumber] {
		return nil, errBackendDown
	}

	status := s.statuses[trainNumber]
	if status == nil {
		return nil, nil
	}
	copied := *status
	return &copied, nil
}

func (s *fakeLiveSource) callCount(trainNumber string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[trainNumber]
}

type fakePNRSource struct {
	mu       sync.Mutex
	statuses map[string]*ctdf.PNRStatus
	failures map[string]bool
}

func newFakePNRSource() *fakePNRSource {
	return &fakePNRSource{
		statuses: map[string]*ctdf.PNRStatus{},
		failures: map[string]bool{},
	}
}

func (s *fakePNRSource) set(status ctdf.PNRStatus, fail bool) {
	s.setFor(status.PNR, status, fail)
}

// setFor answers requests for pnr with status, whatever PNR status carries.
func (s *fakePNRSource) setFor(pnr string, status ctdf.PNRStatus, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statuses[pnr] = &status
	s.failures[pnr] = fail
}

func (s *fakePNRSource) Status(_ context.Context, pnr string) (*ctdf.PNRStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failures[pnr] {
		return nil, errBackendDown
	}

	status, ok := s.statuses[pnr]
	if !ok {
		return nil, nil
	}
	copied := *status
	copied.Passengers = append([]ctdf.Passenger(nil), status.Passengers...)
	return &copied, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ctdf.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event ctdf.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) ofType(eventType ctdf.EventType) []ctdf.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var matched []ctdf.Event
	for _, event := range p.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

type recordingArchive struct {
	mu    sync.Mutex
	views []ctdf.EnrichedTripView
}

func (a *recordingArchive) ArchiveTripView(_ context.Context, view ctdf.EnrichedTripView, _ time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.views = append(a.views, view)
	return nil
}
