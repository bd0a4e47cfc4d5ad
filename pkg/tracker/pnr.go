package tracker

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/railtrack/railtrack/pkg/bookingstatus"
	"github.com/railtrack/railtrack/pkg/cache"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

const DefaultPNRRefreshRate = time.Minute

type PNRStatusSource interface {
	Status(ctx context.Context, pnr string) (*ctdf.PNRStatus, error)
}

type WatchedPNR struct {
	PNR    string `yaml:"pnr"`
	UserID string `yaml:"userId"`
}

// PNRWatcher polls PNR statuses and publishes an event whenever a
// passenger's parsed current status changes. The first status seen for a
// PNR is only recorded.
type PNRWatcher struct {
	Source    PNRStatusSource
	Store     cache.ViewStore
	Publisher EventPublisher
	Metrics   *Collector

	RefreshRate        time.Duration
	MaxConcurrentPolls int

	Now func() time.Time

	mu   sync.Mutex
	pnrs map[string]WatchedPNR
}

func (w *PNRWatcher) Watch(pnr WatchedPNR) error {
	if !ctdf.IsValidPNR(pnr.PNR) {
		return &InvalidPNRError{PNR: pnr.PNR}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pnrs == nil {
		w.pnrs = map[string]WatchedPNR{}
	}
	w.pnrs[pnr.PNR] = pnr
	w.Metrics.setTracked(-1, len(w.pnrs))

	return nil
}

func (w *PNRWatcher) Unwatch(pnr string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.pnrs, pnr)
	w.Metrics.setTracked(-1, len(w.pnrs))
}

func (w *PNRWatcher) Watched() []WatchedPNR {
	w.mu.Lock()
	defer w.mu.Unlock()

	watched := make([]WatchedPNR, 0, len(w.pnrs))
	for _, pnr := range w.pnrs {
		watched = append(watched, pnr)
	}
	sort.Slice(watched, func(i, j int) bool { return watched[i].PNR < watched[j].PNR })

	return watched
}

func (w *PNRWatcher) Run(ctx context.Context) error {
	refreshRate := w.RefreshRate
	if refreshRate <= 0 {
		refreshRate = DefaultPNRRefreshRate
	}

	log.Info().Dur("refresh", refreshRate).Int("pnrs", len(w.Watched())).Msg("Starting PNR watcher")

	return runEvery(ctx, refreshRate, func() {
		w.Refresh(ctx)
	})
}

// Refresh polls every watched PNR once and returns the events it published.
func (w *PNRWatcher) Refresh(ctx context.Context) []ctdf.Event {
	startTime := time.Now()
	watched := w.Watched()

	maxConcurrency := w.MaxConcurrentPolls
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}

	p := pool.NewWithResults[*ctdf.Event]().WithMaxGoroutines(maxConcurrency)
	for _, pnr := range watched {
		pnr := pnr

		p.Go(func() *ctdf.Event {
			return w.refreshPNR(ctx, pnr)
		})
	}

	var published []ctdf.Event
	for _, event := range p.Wait() {
		if event == nil {
			continue
		}

		if w.Publisher != nil {
			if err := w.Publisher.Publish(ctx, *event); err != nil {
				log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to publish event")
				continue
			}
		}
		w.Metrics.event(string(event.Type))
		published = append(published, *event)
	}

	w.Metrics.tick("pnr", time.Since(startTime))

	log.Info().
		Int("pnrs", len(watched)).
		Int("changed", len(published)).
		Str("duration", time.Since(startTime).String()).
		Msg("Refreshed PNR statuses")

	return published
}

func (w *PNRWatcher) refreshPNR(ctx context.Context, watched WatchedPNR) *ctdf.Event {
	status, err := w.Source.Status(ctx, watched.PNR)
	w.Metrics.poll("pnr", err != nil)
	if err != nil {
		log.Error().Err(err).Str("pnr", watched.PNR).Msg("Failed to poll PNR status")
		return nil
	}
	if status == nil {
		log.Debug().Str("pnr", watched.PNR).Msg("No PNR status returned")
		return nil
	}

	previous, err := w.Store.GetPNRStatus(ctx, watched.PNR)
	if err != nil {
		log.Error().Err(err).Str("pnr", watched.PNR).Msg("Failed to read previous PNR status")
		return nil
	}

	if err := w.Store.SetPNRStatus(ctx, watched.PNR, *status); err != nil {
		log.Error().Err(err).Str("pnr", watched.PNR).Msg("Failed to store PNR status")
	}

	if previous == nil {
		return nil
	}

	changes := PassengerChanges(previous, status)
	if len(changes) == 0 {
		return nil
	}

	event, err := ctdf.NewEvent(ctdf.EventTypePNRStatusChanged, watched.UserID, w.now(), ctdf.PNREventBody{
		PNR:         watched.PNR,
		TrainNumber: status.TrainNumber,
		TrainName:   status.TrainName,
		Changes:     changes,
	})
	if err != nil {
		log.Error().Err(err).Str("pnr", watched.PNR).Msg("Failed to create event")
		return nil
	}

	return &event
}

// PassengerChanges lists the passengers whose parsed current status differs.
// Passengers are matched by number; a passenger absent from previous is new.
func PassengerChanges(previous *ctdf.PNRStatus, current *ctdf.PNRStatus) []ctdf.PNRPassengerChange {
	previousStatuses := map[int]string{}
	for _, passenger := range previous.Passengers {
		previousStatuses[passenger.Number] = passenger.CurrentStatus
	}

	var changes []ctdf.PNRPassengerChange
	for _, passenger := range current.Passengers {
		previousStatus, existed := previousStatuses[passenger.Number]

		if existed && bookingstatus.Parse(previousStatus).String() == bookingstatus.Parse(passenger.CurrentStatus).String() {
			continue
		}

		changes = append(changes, ctdf.PNRPassengerChange{
			Number:   passenger.Number,
			Previous: previousStatus,
			Current:  passenger.CurrentStatus,
		})
	}

	return changes
}

func (w *PNRWatcher) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}
