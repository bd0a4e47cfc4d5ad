package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/railtrack/railtrack/pkg/bookingstatus"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/liveprogress"
	"github.com/railtrack/railtrack/pkg/util"
)

const maxMessageLength = 240

func GetNotification(e *ctdf.Event) (*ctdf.Notification, error) {
	notification := &ctdf.Notification{
		TargetUser: e.TargetUser,
	}

	switch e.Type {
	case ctdf.EventTypeTripDelayed, ctdf.EventTypeTripRuleTriggered, ctdf.EventTypeTripArrived, ctdf.EventTypeTripCancelled:
		var body ctdf.TripEventBody
		if err := json.Unmarshal(e.Body, &body); err != nil {
			return nil, fmt.Errorf("failed to decode %s body: %w", e.Type, err)
		}
		view := body.View

		switch e.Type {
		case ctdf.EventTypeTripDelayed:
			notification.Type = ctdf.NotificationTypeDelayAlert
			notification.Title = fmt.Sprintf("%s is running late", trainLabel(view))
			notification.Message = fmt.Sprintf("Delayed by %s%s.", strings.TrimPrefix(liveprogress.FormatDelay(view.DelayMinutes), "+"), nextStop(view))
		case ctdf.EventTypeTripRuleTriggered:
			notification.Type = ctdf.NotificationTypeDelayAlert
			notification.Title = fmt.Sprintf("Alert %s: %s", body.RuleName, trainLabel(view))
			notification.Message = fmt.Sprintf("%s%s.", liveprogress.IndicatorLabel(view), nextStop(view))
		case ctdf.EventTypeTripArrived:
			notification.Type = ctdf.NotificationTypeArrivalReminder
			notification.Title = fmt.Sprintf("%s has arrived", trainLabel(view))
			notification.Message = fmt.Sprintf("Reached %s", view.DestinationStation)
			if view.DelayMinutes > 0 {
				notification.Message += fmt.Sprintf(" %s late", strings.TrimPrefix(liveprogress.FormatDelay(view.DelayMinutes), "+"))
			}
			notification.Message += "."
		case ctdf.EventTypeTripCancelled:
			notification.Type = ctdf.NotificationTypeTrainCancelled
			notification.Title = "Train cancelled"
			notification.Message = fmt.Sprintf("The %s %s from %s to %s has been cancelled.", view.JourneyDate, trainLabel(view), view.SourceStation, view.DestinationStation)
		}
	case ctdf.EventTypePNRStatusChanged:
		var body ctdf.PNREventBody
		if err := json.Unmarshal(e.Body, &body); err != nil {
			return nil, fmt.Errorf("failed to decode %s body: %w", e.Type, err)
		}

		notification.Type = ctdf.NotificationTypePNRUpdate
		notification.Title = fmt.Sprintf("PNR %s updated", body.PNR)

		var changes []string
		for _, change := range body.Changes {
			current := bookingstatus.Parse(change.Current)
			changes = append(changes, fmt.Sprintf("Passenger %d now %s (%s)", change.Number, current.String(), bookingstatus.Label(current.Kind())))
		}
		notification.Message = strings.Join(changes, ", ")
	default:
		return nil, fmt.Errorf("no notification for event type %s", e.Type)
	}

	notification.Message = util.TrimString(notification.Message, maxMessageLength)

	return notification, nil
}

func trainLabel(view ctdf.EnrichedTripView) string {
	if view.TrainName == "" {
		return view.TrainNumber
	}

	return fmt.Sprintf("%s (%s)", view.TrainName, view.TrainNumber)
}

func nextStop(view ctdf.EnrichedTripView) string {
	if view.NextStation == "" {
		return ""
	}

	return fmt.Sprintf(", next stop %s", view.NextStation)
}
