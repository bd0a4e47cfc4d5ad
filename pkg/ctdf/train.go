package ctdf

type RunningState string

const (
	RunningStateNotStarted RunningState = "not_started"
	RunningStateRunning    RunningState = "running"
	RunningStateArrived    RunningState = "arrived"
	RunningStateDeparted   RunningState = "departed"
	RunningStateTerminated RunningState = "terminated"
)

type Train struct {
	TrainNumber        string   `json:"trainNumber"`
	TrainName          string   `json:"trainName"`
	TrainType          string   `json:"trainType"`
	SourceStation      string   `json:"sourceStation"`
	DestinationStation string   `json:"destinationStation"`
	DepartureTime      string   `json:"departureTime"`
	ArrivalTime        string   `json:"arrivalTime"`
	Duration           string   `json:"duration,omitempty"`
	Distance           float64  `json:"distance,omitempty"`
	RunningDays        []int    `json:"runningDays"`
	Coaches            []string `json:"coaches,omitempty"`
}

type TrainSchedule struct {
	Train
	Route []TrainStop `json:"route"`
}

type TrainStop struct {
	StationCode   string  `json:"stationCode"`
	StationName   string  `json:"stationName"`
	ArrivalTime   *string `json:"arrivalTime"`
	DepartureTime *string `json:"departureTime"`
	HaltMinutes   int     `json:"haltMinutes"`
	StopNumber    int     `json:"stopNumber"`
	Platform      string  `json:"platform,omitempty"`
	DistanceKm    float64 `json:"distanceKm"`
	DayOffset     int     `json:"dayOffset"`
}

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LiveTrainStatus is a live running snapshot keyed by train number and date.
type LiveTrainStatus struct {
	TrainNumber        string       `json:"trainNumber"`
	TrainName          string       `json:"trainName"`
	CurrentStation     string       `json:"currentStation"`
	CurrentStationName string       `json:"currentStationName,omitempty"`
	LastStation        string       `json:"lastStation"`
	LastStationName    string       `json:"lastStationName,omitempty"`
	NextStation        string       `json:"nextStation"`
	NextStationName    string       `json:"nextStationName,omitempty"`
	DelayMinutes       int          `json:"delayMinutes"`
	ETANextStation     string       `json:"etaNextStation,omitempty"`
	LastUpdated        string       `json:"lastUpdated,omitempty"`
	Position           *Position    `json:"position,omitempty"`
	Status             RunningState `json:"status"`
}

type RunningStatusSummary struct {
	TrainNumber        string `json:"trainNumber"`
	TrainName          string `json:"trainName"`
	Status             string `json:"status"`
	DelayMinutes       int    `json:"delayMinutes"`
	CurrentStation     string `json:"currentStation"`
	CurrentStationName string `json:"currentStationName"`
	LastUpdated        string `json:"lastUpdated"`
}

type TrainSearchResult struct {
	TrainNumber        string   `json:"trainNumber"`
	TrainName          string   `json:"trainName"`
	TrainType          string   `json:"trainType"`
	DepartureTime      string   `json:"departureTime"`
	ArrivalTime        string   `json:"arrivalTime"`
	Duration           string   `json:"duration"`
	SourceStation      string   `json:"sourceStation"`
	DestinationStation string   `json:"destinationStation"`
	RunningDays        []int    `json:"runningDays"`
	Classes            []string `json:"classes"`
}

type SeatAvailability struct {
	ClassType      string `json:"classType"`
	Status         string `json:"status"`
	AvailableSeats *int   `json:"availableSeats,omitempty"`
	WaitlistNumber *int   `json:"waitlistNumber,omitempty"`
}
