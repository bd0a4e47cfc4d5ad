// Package liveprogress lays a live running snapshot over a saved trip.
package liveprogress

import (
	"fmt"

	"github.com/railtrack/railtrack/pkg/ctdf"
)

const (
	ProgressNotStarted = 0
	ProgressRunning    = 65
	ProgressFinished   = 100
)

// Enrich returns the trip unchanged when there is no live status or the trip
// is not live. Progress is a coarse bucket of the running state, not an
// interpolation of distance or time.
func Enrich(trip ctdf.TripSummary, live *ctdf.LiveTrainStatus) ctdf.EnrichedTripView {
	if live == nil || !trip.IsLive {
		return ctdf.EnrichedTripView{TripSummary: trip}
	}

	view := ctdf.EnrichedTripView{
		TripSummary:  trip,
		RunningState: live.Status,
		LastUpdated:  live.LastUpdated,
	}

	view.DelayMinutes = live.DelayMinutes
	view.CurrentStation = live.CurrentStation
	view.NextStation = live.NextStation
	if live.TrainName != "" {
		view.TrainName = live.TrainName
	}
	view.ProgressPercent = Progress(live.Status)

	return view
}

func Progress(state ctdf.RunningState) int {
	switch state {
	case ctdf.RunningStateRunning:
		return ProgressRunning
	case ctdf.RunningStateTerminated:
		return ProgressFinished
	default:
		return ProgressNotStarted
	}
}

// FormatDelay renders a delay badge: "" when on time, "+25m", "+1h 5m".
func FormatDelay(minutes int) string {
	if minutes <= 0 {
		return ""
	}

	if minutes >= 60 {
		return fmt.Sprintf("+%dh %dm", minutes/60, minutes%60)
	}

	return fmt.Sprintf("+%dm", minutes)
}

type Indicator string

const (
	IndicatorOnTime    Indicator = "on_time"
	IndicatorDelayed   Indicator = "delayed"
	IndicatorCancelled Indicator = "cancelled"
	IndicatorArrived   Indicator = "arrived"
	IndicatorDeparted  Indicator = "departed"
)

func IndicatorOf(view ctdf.EnrichedTripView) Indicator {
	switch {
	case view.Status == ctdf.TripStatusCancelled:
		return IndicatorCancelled
	case view.RunningState == ctdf.RunningStateTerminated:
		return IndicatorArrived
	case view.DelayMinutes > 0:
		return IndicatorDelayed
	case view.RunningState == ctdf.RunningStateDeparted:
		return IndicatorDeparted
	default:
		return IndicatorOnTime
	}
}

// IndicatorLabel is the text shown next to the indicator dot.
func IndicatorLabel(view ctdf.EnrichedTripView) string {
	indicator := IndicatorOf(view)

	switch indicator {
	case IndicatorDelayed:
		return FormatDelay(view.DelayMinutes)
	case IndicatorCancelled:
		return "Cancelled"
	case IndicatorArrived:
		return "Arrived"
	case IndicatorDeparted:
		return "Departed"
	default:
		return "On Time"
	}
}
