package ctdf

import (
	"encoding/json"
	"time"
)

type Event struct {
	Type       EventType
	Timestamp  time.Time
	TargetUser string
	Body       json.RawMessage
}

type EventType string

const (
	EventTypeTripDelayed       EventType = "TripDelayed"
	EventTypeTripArrived       EventType = "TripArrived"
	EventTypeTripRuleTriggered EventType = "TripRuleTriggered"
	EventTypeTripCancelled     EventType = "TripCancelled"
	EventTypePNRStatusChanged  EventType = "PNRStatusChanged"
)

// TripEventBody is carried by every Trip* event.
type TripEventBody struct {
	View EnrichedTripView

	PreviousDelayMinutes int
	RuleName             string `json:",omitempty"`
}

type PNRPassengerChange struct {
	Number   int
	Previous string
	Current  string
}

type PNREventBody struct {
	PNR         string
	TrainNumber string
	TrainName   string

	Changes []PNRPassengerChange
}

func NewEvent(eventType EventType, targetUser string, timestamp time.Time, body interface{}) (Event, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return Event{}, err
	}

	return Event{
		Type:       eventType,
		Timestamp:  timestamp,
		TargetUser: targetUser,
		Body:       bodyBytes,
	}, nil
}
