package ctdf

import (
	"time"

	"github.com/jinzhu/copier"
)

type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "upcoming"
	TripStatusLive      TripStatus = "live"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip is a journey saved by a user, as returned by the trips API.
type Trip struct {
	ID                 string     `json:"id" bson:"id"`
	UserID             string     `json:"userId" bson:"userid"`
	TrainNumber        string     `json:"trainNumber" bson:"trainnumber"`
	TrainName          *string    `json:"trainName" bson:"trainname"`
	PNR                *string    `json:"pnr" bson:"pnr"`
	JourneyDate        string     `json:"journeyDate" bson:"journeydate"`
	SourceStation      string     `json:"sourceStation" bson:"sourcestation"`
	DestinationStation string     `json:"destinationStation" bson:"destinationstation"`
	DepartureTime      *string    `json:"departureTime" bson:"departuretime"`
	ArrivalTime        *string    `json:"arrivalTime" bson:"arrivaltime"`
	Status             TripStatus `json:"status" bson:"status"`
	IsLive             bool       `json:"isLive" bson:"islive"`
	Coach              *string    `json:"coach" bson:"coach"`
	SeatBerth          *string    `json:"seatBerth" bson:"seatberth"`
	DelayAlertSent     bool       `json:"delayAlertSent" bson:"delayalertsent"`
	CreatedAt          time.Time  `json:"createdAt" bson:"createdat"`
	UpdatedAt          time.Time  `json:"updatedAt" bson:"updatedat"`
}

type CreateTripInput struct {
	TrainNumber        string `json:"trainNumber"`
	TrainName          string `json:"trainName,omitempty"`
	PNR                string `json:"pnr,omitempty"`
	JourneyDate        string `json:"journeyDate"`
	SourceStation      string `json:"sourceStation"`
	DestinationStation string `json:"destinationStation"`
	DepartureTime      string `json:"departureTime,omitempty"`
	ArrivalTime        string `json:"arrivalTime,omitempty"`
	Coach              string `json:"coach,omitempty"`
	SeatBerth          string `json:"seatBerth,omitempty"`
}

// UpdateTripInput only sends the fields that are set.
type UpdateTripInput struct {
	TrainNumber        *string `json:"trainNumber,omitempty"`
	TrainName          *string `json:"trainName,omitempty"`
	PNR                *string `json:"pnr,omitempty"`
	JourneyDate        *string `json:"journeyDate,omitempty"`
	SourceStation      *string `json:"sourceStation,omitempty"`
	DestinationStation *string `json:"destinationStation,omitempty"`
	DepartureTime      *string `json:"departureTime,omitempty"`
	ArrivalTime        *string `json:"arrivalTime,omitempty"`
	Coach              *string `json:"coach,omitempty"`
	SeatBerth          *string `json:"seatBerth,omitempty"`
}

type TripWithLiveStatus struct {
	Trip       Trip             `json:"trip"`
	LiveStatus *LiveTrainStatus `json:"liveStatus"`
}

// TripSummary is the flattened trip shown on a journey card.
type TripSummary struct {
	ID                     string     `json:"id" yaml:"id" csv:"id"`
	UserID                 string     `json:"userId,omitempty" yaml:"userId,omitempty" csv:"user_id"`
	TrainNumber            string     `json:"trainNumber" yaml:"trainNumber" csv:"train_number"`
	TrainName              string     `json:"trainName" yaml:"trainName" csv:"train_name"`
	SourceStation          string     `json:"sourceStation" yaml:"sourceStation" csv:"source_station"`
	SourceStationName      string     `json:"sourceStationName,omitempty" yaml:"sourceStationName,omitempty" csv:"source_station_name"`
	DestinationStation     string     `json:"destinationStation" yaml:"destinationStation" csv:"destination_station"`
	DestinationStationName string     `json:"destinationStationName,omitempty" yaml:"destinationStationName,omitempty" csv:"destination_station_name"`
	DepartureTime          string     `json:"departureTime" yaml:"departureTime" csv:"departure_time"`
	ArrivalTime            string     `json:"arrivalTime" yaml:"arrivalTime" csv:"arrival_time"`
	JourneyDate            string     `json:"journeyDate" yaml:"journeyDate" csv:"journey_date"`
	Status                 TripStatus `json:"status" yaml:"status" csv:"status"`
	PNR                    string     `json:"pnr,omitempty" yaml:"pnr,omitempty" csv:"pnr"`
	Coach                  string     `json:"coach,omitempty" yaml:"coach,omitempty" csv:"coach"`
	SeatBerth              string     `json:"seatBerth,omitempty" yaml:"seatBerth,omitempty" csv:"seat_berth"`
	IsLive                 bool       `json:"isLive" yaml:"isLive" csv:"is_live"`

	ProgressPercent int    `json:"progressPercent" yaml:"progressPercent,omitempty" csv:"progress_percent"`
	DelayMinutes    int    `json:"delayMinutes" yaml:"delayMinutes,omitempty" csv:"delay_minutes"`
	CurrentStation  string `json:"currentStation,omitempty" yaml:"currentStation,omitempty" csv:"current_station"`
	NextStation     string `json:"nextStation,omitempty" yaml:"nextStation,omitempty" csv:"next_station"`
}

// EnrichedTripView is a TripSummary with the latest live status laid over it.
// It is recomputed on every refresh and never persisted as a source of truth.
type EnrichedTripView struct {
	TripSummary `yaml:",inline"`

	RunningState RunningState `json:"runningState,omitempty" yaml:"runningState,omitempty"`
	LastUpdated  string       `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

var nullableStringConverter = copier.TypeConverter{
	SrcType: (*string)(nil),
	DstType: "",
	Fn: func(src interface{}) (interface{}, error) {
		s, _ := src.(*string)
		if s == nil {
			return "", nil
		}
		return *s, nil
	},
}

// NewTripSummary projects an API trip onto the journey card shape.
func NewTripSummary(trip *Trip) (TripSummary, error) {
	summary := TripSummary{}

	err := copier.CopyWithOption(&summary, trip, copier.Option{
		Converters: []copier.TypeConverter{nullableStringConverter},
	})
	if err != nil {
		return TripSummary{}, err
	}

	if trip.Status == TripStatusLive {
		summary.IsLive = true
	}

	return summary, nil
}
