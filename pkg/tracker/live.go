package tracker

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/railtrack/railtrack/pkg/cache"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/liveprogress"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/slices"
)

const (
	DefaultLiveRefreshRate   = 2 * time.Minute
	DefaultDelayAlertMinutes = 15
	defaultMaxConcurrency    = 8
)

type LiveStatusSource interface {
	LiveStatus(ctx context.Context, trainNumber string, date string) (*ctdf.LiveTrainStatus, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event ctdf.Event) error
}

type ViewArchiver interface {
	ArchiveTripView(ctx context.Context, view ctdf.EnrichedTripView, at time.Time) error
}

// TrackedTrip is a trip card with the user's alert rules for it.
type TrackedTrip struct {
	Trip  ctdf.TripSummary `yaml:",inline"`
	Rules []RuleDefinition `yaml:"rules,omitempty"`
}

type trackedTrip struct {
	trip  ctdf.TripSummary
	rules []*AlertRule

	// Rules that matched on the previous refresh, so each fires once per
	// false to true transition.
	matchedRules map[string]bool
}

// LiveTripTracker keeps an enriched view of every tracked trip up to date.
// Only live trips are polled; every other trip gets its card passed through
// unchanged.
type LiveTripTracker struct {
	Source    LiveStatusSource
	Store     cache.ViewStore
	Publisher EventPublisher
	Metrics   *Collector

	// Archive, when set, gets a copy of every live view after a refresh.
	Archive ViewArchiver

	RefreshRate        time.Duration
	DelayAlertMinutes  int
	MaxConcurrentPolls int

	Now func() time.Time

	mu    sync.Mutex
	trips map[string]*trackedTrip
}

// Track adds or replaces a trip. Replacing a trip keeps the matched state of
// rules that keep their name.
func (t *LiveTripTracker) Track(trip TrackedTrip) error {
	var rules []*AlertRule
	for _, definition := range trip.Rules {
		rule, err := CompileRule(definition)
		if err != nil {
			return err
		}
		rules = append(rules, rule)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.trips == nil {
		t.trips = map[string]*trackedTrip{}
	}

	matchedRules := map[string]bool{}
	if existing, ok := t.trips[trip.Trip.ID]; ok {
		for _, rule := range rules {
			if existing.matchedRules[rule.Name] {
				matchedRules[rule.Name] = true
			}
		}
	}

	t.trips[trip.Trip.ID] = &trackedTrip{
		trip:         trip.Trip,
		rules:        rules,
		matchedRules: matchedRules,
	}
	t.Metrics.setTracked(len(t.trips), -1)

	return nil
}

func (t *LiveTripTracker) Untrack(tripID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.trips, tripID)
	t.Metrics.setTracked(len(t.trips), -1)
}

// Sync makes the tracked set exactly trips.
func (t *LiveTripTracker) Sync(trips []TrackedTrip) error {
	wanted := map[string]bool{}
	for _, trip := range trips {
		if err := t.Track(trip); err != nil {
			return err
		}
		wanted[trip.Trip.ID] = true
	}

	for _, id := range t.TrackedIDs() {
		if !wanted[id] {
			t.Untrack(id)
		}
	}

	return nil
}

func (t *LiveTripTracker) TrackedIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.trips))
	for id := range t.trips {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// Run refreshes immediately and then every RefreshRate until ctx is done.
func (t *LiveTripTracker) Run(ctx context.Context) error {
	refreshRate := t.RefreshRate
	if refreshRate <= 0 {
		refreshRate = DefaultLiveRefreshRate
	}

	log.Info().Dur("refresh", refreshRate).Int("trips", len(t.TrackedIDs())).Msg("Starting live trip tracker")

	return runEvery(ctx, refreshRate, func() {
		t.Refresh(ctx)
	})
}

type pollResult struct {
	tripID string
	view   ctdf.EnrichedTripView
	events []ctdf.Event
	// skipped is set when the poll failed and the previous view was kept.
	skipped bool
}

// Refresh polls every live trip once and returns the views it stored.
func (t *LiveTripTracker) Refresh(ctx context.Context) []ctdf.EnrichedTripView {
	startTime := time.Now()

	t.mu.Lock()
	trips := make([]*trackedTrip, 0, len(t.trips))
	for _, trip := range t.trips {
		trips = append(trips, trip)
	}
	t.mu.Unlock()

	maxConcurrency := t.MaxConcurrentPolls
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}

	p := pool.NewWithResults[pollResult]().WithMaxGoroutines(maxConcurrency)
	for _, trip := range trips {
		trip := trip

		p.Go(func() pollResult {
			return t.refreshTrip(ctx, trip)
		})
	}
	results := p.Wait()

	var views []ctdf.EnrichedTripView
	skipped := 0
	for _, result := range results {
		if result.skipped {
			skipped++
			continue
		}
		views = append(views, result.view)
		t.archive(ctx, result.view)

		for _, event := range result.events {
			t.publish(ctx, event)
		}
	}

	slices.SortFunc(views, func(a, b ctdf.EnrichedTripView) int { return strings.Compare(a.ID, b.ID) })

	t.Metrics.tick("live", time.Since(startTime))

	log.Info().
		Int("trips", len(trips)).
		Int("skipped", skipped).
		Str("duration", time.Since(startTime).String()).
		Msg("Refreshed live trips")

	return views
}

func (t *LiveTripTracker) refreshTrip(ctx context.Context, tracked *trackedTrip) pollResult {
	trip := tracked.trip
	result := pollResult{tripID: trip.ID}

	previous, err := t.Store.GetTripView(ctx, trip.ID)
	if err != nil {
		log.Error().Err(err).Str("trip", trip.ID).Msg("Failed to read previous trip view")
		previous = nil
	}

	var live *ctdf.LiveTrainStatus
	if trip.IsLive {
		live, err = t.Source.LiveStatus(ctx, trip.TrainNumber, trip.JourneyDate)
		t.Metrics.poll("live", err != nil)

		if err != nil {
			log.Error().Err(err).
				Str("trip", trip.ID).
				Str("train", trip.TrainNumber).
				Msg("Failed to poll live status")

			if previous != nil {
				result.skipped = true
				return result
			}

			live = nil
		}
	}

	view := liveprogress.Enrich(trip, live)

	if err := t.Store.SetTripView(ctx, view); err != nil {
		log.Error().Err(err).Str("trip", trip.ID).Msg("Failed to store trip view")
	}

	result.view = view
	result.events = t.detectChanges(tracked, previous, view)

	return result
}

func (t *LiveTripTracker) detectChanges(tracked *trackedTrip, previous *ctdf.EnrichedTripView, view ctdf.EnrichedTripView) []ctdf.Event {
	var events []ctdf.Event

	previousDelay := 0
	var previousState ctdf.RunningState
	var previousStatus ctdf.TripStatus
	if previous != nil {
		previousDelay = previous.DelayMinutes
		previousState = previous.RunningState
		previousStatus = previous.Status
	}

	threshold := t.DelayAlertMinutes
	if threshold <= 0 {
		threshold = DefaultDelayAlertMinutes
	}

	body := ctdf.TripEventBody{View: view, PreviousDelayMinutes: previousDelay}

	if view.DelayMinutes >= threshold && previousDelay < threshold {
		events = t.appendEvent(events, ctdf.EventTypeTripDelayed, view, body)
	}

	if view.RunningState == ctdf.RunningStateTerminated && previousState != ctdf.RunningStateTerminated {
		events = t.appendEvent(events, ctdf.EventTypeTripArrived, view, body)
	}

	if view.Status == ctdf.TripStatusCancelled && previous != nil && previousStatus != ctdf.TripStatusCancelled {
		events = t.appendEvent(events, ctdf.EventTypeTripCancelled, view, body)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, rule := range tracked.rules {
		matched, err := rule.Matches(view)
		if err != nil {
			log.Error().Err(err).Str("trip", view.ID).Str("rule", rule.Name).Msg("Failed to evaluate alert rule")
			continue
		}

		if matched && !tracked.matchedRules[rule.Name] {
			ruleBody := body
			ruleBody.RuleName = rule.Name
			events = t.appendEvent(events, ctdf.EventTypeTripRuleTriggered, view, ruleBody)
		}
		tracked.matchedRules[rule.Name] = matched
	}

	return events
}

func (t *LiveTripTracker) appendEvent(events []ctdf.Event, eventType ctdf.EventType, view ctdf.EnrichedTripView, body ctdf.TripEventBody) []ctdf.Event {
	event, err := ctdf.NewEvent(eventType, view.UserID, t.now(), body)
	if err != nil {
		log.Error().Err(err).Str("trip", view.ID).Str("type", string(eventType)).Msg("Failed to create event")
		return events
	}

	return append(events, event)
}

func (t *LiveTripTracker) publish(ctx context.Context, event ctdf.Event) {
	if t.Publisher == nil {
		return
	}

	if err := t.Publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to publish event")
		return
	}

	t.Metrics.event(string(event.Type))
}

func (t *LiveTripTracker) archive(ctx context.Context, view ctdf.EnrichedTripView) {
	if t.Archive == nil || !view.IsLive {
		return
	}

	if err := t.Archive.ArchiveTripView(ctx, view, t.now()); err != nil {
		log.Error().Err(err).Str("trip", view.ID).Msg("Failed to archive trip view")
	}
}

func (t *LiveTripTracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}
