package tracker

import (
	"context"
	"fmt"

	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/railapi"
	"github.com/railtrack/railtrack/pkg/util"
	"github.com/rs/zerolog/log"
)

const (
	apiSyncPageSize = 50
	apiSyncMaxPages = 20
)

type TripLister interface {
	List(ctx context.Context, status string, page int, limit int) (*railapi.Page[ctdf.Trip], error)
}

// TrackingFromAPI builds the tracked set from the signed in user's trips.
// Completed trips are left out. Cancelled trips stay so a cancellation seen
// on an earlier sync is not reported twice. Rules are carried over from
// rules by trip ID.
func TrackingFromAPI(ctx context.Context, lister TripLister, rules map[string][]RuleDefinition) (*TrackingFile, error) {
	tracking := &TrackingFile{}

	for page := 1; page <= apiSyncMaxPages; page++ {
		trips, err := lister.List(ctx, "all", page, apiSyncPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list trips: %w", err)
		}

		util.InPlaceFilter(&trips.Items, func(trip ctdf.Trip) bool {
			return trip.Status != ctdf.TripStatusCompleted
		})

		for i := range trips.Items {
			trip := &trips.Items[i]

			summary, err := ctdf.NewTripSummary(trip)
			if err != nil {
				log.Error().Err(err).Str("trip", trip.ID).Msg("Failed to summarise trip")
				continue
			}
			tracking.Trips = append(tracking.Trips, TrackedTrip{Trip: summary, Rules: rules[trip.ID]})

			if summary.PNR != "" && ctdf.IsValidPNR(summary.PNR) && trip.Status != ctdf.TripStatusCancelled {
				tracking.PNRs = append(tracking.PNRs, WatchedPNR{PNR: summary.PNR, UserID: summary.UserID})
			}
		}

		if !trips.Pagination.HasMore {
			break
		}
	}

	return tracking, nil
}

// Apply makes the tracker and watcher follow exactly what tracking names.
func (tracking *TrackingFile) Apply(live *LiveTripTracker, watcher *PNRWatcher) error {
	if err := live.Sync(tracking.Trips); err != nil {
		return err
	}

	wanted := map[string]bool{}
	for _, pnr := range tracking.PNRs {
		if err := watcher.Watch(pnr); err != nil {
			return err
		}
		wanted[pnr.PNR] = true
	}
	for _, watched := range watcher.Watched() {
		if !wanted[watched.PNR] {
			watcher.Unwatch(watched.PNR)
		}
	}

	return nil
}

// RulesByTrip indexes the alert rules of a tracking file by trip ID.
func (tracking *TrackingFile) RulesByTrip() map[string][]RuleDefinition {
	rules := map[string][]RuleDefinition{}
	for _, trip := range tracking.Trips {
		if len(trip.Rules) > 0 {
			rules[trip.Trip.ID] = trip.Rules
		}
	}

	return rules
}
