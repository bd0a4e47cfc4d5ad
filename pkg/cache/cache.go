package cache

import (
	"context"

	"github.com/railtrack/railtrack/pkg/ctdf"
)

// ViewStore holds the latest enriched trip views and PNR statuses. A missing
// entry is reported as a nil value with a nil error. PNR statuses are keyed by
// the PNR that was asked for, not the one in the response.
type ViewStore interface {
	GetTripView(ctx context.Context, tripID string) (*ctdf.EnrichedTripView, error)
	SetTripView(ctx context.Context, view ctdf.EnrichedTripView) error

	GetPNRStatus(ctx context.Context, pnr string) (*ctdf.PNRStatus, error)
	SetPNRStatus(ctx context.Context, pnr string, status ctdf.PNRStatus) error
}

func tripViewKey(tripID string) string {
	return "trip_view:" + tripID
}

func pnrStatusKey(pnr string) string {
	return "pnr_status:" + pnr
}
